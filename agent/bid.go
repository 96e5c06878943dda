package agent

import (
	"math"

	"spades/game"
)

// Heuristic weights per card class
const (
	strongTrumpWeight = 1.0
	weakTrumpWeight   = 0.6
	faceWeight        = 0.4
	fillerWeight      = 0.5
)

// Bidding is what a seat knows about the bids placed before its own.
type Bidding struct {
	RoundSize int
	Seats     int
	Placed    int // Bids already placed this round
	Total     int // Sum of the bids already placed
}

// Last reports whether the seat closes the bidding.
func (b Bidding) Last() bool {
	return b.Placed == b.Seats-1
}

// Legal reports whether bid is allowed. The last bidder may not make the
// total equal the round size.
func (b Bidding) Legal(bid int) bool {
	if bid < 0 || bid > b.RoundSize {
		return false
	}
	return !b.Last() || b.Total+bid != b.RoundSize
}

// closest returns the legal bid nearest to estimate, the lowest one on ties.
func (b Bidding) closest(estimate int) int {
	best, bestDistance := estimate, math.MaxInt
	for bid := 0; bid <= b.RoundSize; bid++ {
		if !b.Legal(bid) {
			continue
		}
		distance := bid - estimate
		if distance < 0 {
			distance = -distance
		}
		if distance < bestDistance {
			best, bestDistance = bid, distance
		}
	}
	return best
}

// HandStrength scores how many tricks a hand should win.
func HandStrength(hand []game.Card) float64 {
	var suits [len(game.Suits)]int
	for _, card := range hand {
		suits[card.Suit]++
	}

	score := 0.0
	for _, card := range hand {
		switch {
		case card.IsTrump() && card.Rank.IsFace():
			score += strongTrumpWeight
		case card.IsTrump():
			score += weakTrumpWeight
		case card.Rank.IsFace():
			score += faceWeight
		case suits[card.Suit]*len(game.Suits) < len(hand): // Short suit, likely to ruff later
			score += fillerWeight
		}
	}
	return score
}

// DecideBid rounds the hand strength to a bid within the round and moves it
// to the closest legal bid when it would close the bidding on an exact total.
func DecideBid(hand []game.Card, bidding Bidding) int {
	bid := int(math.Round(HandStrength(hand)))
	bid = max(0, min(bid, bidding.RoundSize))
	if !bidding.Legal(bid) {
		bid = bidding.closest(bid)
	}
	return bid
}

// EvenSplitBid shares the tricks nobody has bid on evenly among the seats
// still to bid.
func EvenSplitBid(bidding Bidding) int {
	remaining := bidding.Seats - bidding.Placed
	if remaining <= 0 {
		return 0
	}
	bid := max(0, (bidding.RoundSize-bidding.Total)/remaining)
	if !bidding.Legal(bid) {
		bid = bidding.closest(bid)
	}
	return bid
}
