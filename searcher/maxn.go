package searcher

import (
	"github.com/rs/zerolog/log"

	"spades/game"
)

const MaxNStrategy = "maxn"

// MaxN searches the full tree of the round. Every seat maximizes its own
// coordinate of the utility vector.
type MaxN struct {
	settings
}

func NewMaxN(options ...Option) *MaxN {
	return &MaxN{settings: newSettings(options)}
}

func (m *MaxN) Search(state game.State) (game.Card, bool) {
	m.metrics.Start(MaxNStrategy)
	move, utility, ok := m.maxn(state)
	m.metric = m.metrics.Complete()

	if ok {
		log.Debug().
			Int("seat", state.Player()).
			Str("move", move.String()).
			Floats64("utility", utility).
			Msg("maxn search complete")
	}
	return move, ok
}

// maxn returns the move chosen at state and the utility vector it leads to.
// Ties keep the first move found.
func (m *MaxN) maxn(state game.State) (game.Card, []float64, bool) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.Card{}, state.Utility(m.reward), false
	}

	seat := state.Player()
	var best game.Card
	var bestUtility []float64
	for _, move := range moves {
		child := state.Play(move)
		m.metrics.AddNode()

		_, utility, _ := m.maxn(child)
		if bestUtility == nil || utility[seat] > bestUtility[seat] {
			best, bestUtility = move, utility
		}
	}
	return best, bestUtility, true
}
