package searcher

import (
	"golang.org/x/exp/rand"

	"spades/experiments/metrics"
	"spades/game"
)

// rollout plays uniformly random legal moves until no move is left.
func rollout(state game.State, rng *rand.Rand, metrics metrics.Collector) game.State {
	moves := state.LegalMoves()
	for len(moves) > 0 {
		move := moves[rng.Intn(len(moves))] // Random rollout policy
		state = state.Play(move)
		moves = state.LegalMoves()
	}

	if state.IsTerminal() {
		metrics.AddFullPlayout()
	}
	return state
}

func reward(made bool) float64 {
	if made {
		return Win
	}
	return Loss
}
