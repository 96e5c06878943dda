package searcher

import (
	"github.com/rs/zerolog/log"

	"spades/game"
	"spades/utils"
)

const ExpectimaxStrategy = "expectimax"

// Expectimax scores each legal move by the average utility of random playouts
// from the state it leads to.
type Expectimax struct {
	settings
}

func NewExpectimax(options ...Option) *Expectimax {
	return &Expectimax{settings: newSettings(options)}
}

func (e *Expectimax) Search(state game.State) (game.Card, bool) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.Card{}, false
	}

	e.metrics.Start(ExpectimaxStrategy)
	values := e.evaluate(state, moves)
	e.metric = e.metrics.Complete()

	seat := state.Player()
	i := utils.ArgMax(len(moves), func(i int) float64 {
		return values[i][seat]
	})
	log.Debug().
		Int("seat", seat).
		Str("move", moves[i].String()).
		Float64("value", values[i][seat]).
		Msg("expectimax search complete")
	return moves[i], true
}

// evaluate returns, per move, the component-wise mean utility over the sampled playouts.
func (e *Expectimax) evaluate(state game.State, moves []game.Card) [][]float64 {
	values := make([][]float64, len(moves))
	for i, move := range moves {
		child := state.Play(move)
		e.metrics.AddNode()

		var sum []float64
		for range e.samples {
			utility := rollout(child, e.rng, e.metrics).Utility(e.reward)
			e.metrics.AddEpisode()
			if sum == nil {
				sum = make([]float64, len(utility))
			}
			for seat, u := range utility {
				sum[seat] += u
			}
		}
		for seat := range sum {
			sum[seat] /= float64(e.samples)
		}
		values[i] = sum
	}
	return values
}
