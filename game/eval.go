package game

// DefaultReward is the terminal utility of a seat that won exactly its bid.
const DefaultReward = 10.0

// Utility scores a seat's round outcome for search: reward when the tricks
// won match the bid, otherwise the negative distance from the bid.
func Utility(bid, tricksWon int, reward float64) float64 {
	if tricksWon == bid {
		return reward
	}
	return -float64(abs(tricksWon - bid))
}

// Score is the table score of a round: bid plus 10 for a made bid, minus the
// bid for a bust.
func Score(bid, tricksWon int) int {
	if tricksWon == bid {
		return bid + 10
	}
	return -bid
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
