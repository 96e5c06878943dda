package searcher

import (
	"time"

	"github.com/rs/zerolog/log"

	"spades/game"
)

const MCTSStrategy = "mcts"

type MCTS struct {
	settings
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{settings: newSettings(options)}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Search runs UCB1 tree search until the budget is spent and returns the most visited root move.
func (m *MCTS) Search(state game.State) (game.Card, bool) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.Card{}, false
	}

	m.metrics.Start(MCTSStrategy)
	root := m.grow(state)
	m.metric = m.metrics.Complete()

	best := root.mostVisited()
	if best == nil { // Budget ran out before the first expansion
		log.Warn().Msg("mcts expanded no root move, playing the first legal move")
		return moves[0], true
	}
	log.Debug().
		Int("seat", state.Player()).
		Str("move", best.move.String()).
		Int("visits", best.visits).
		Int("episodes", root.visits).
		Msg("mcts search complete")
	return best.move, true
}

func (m *MCTS) grow(state game.State) *node {
	root := newNode(nil, game.Card{}, -1, state)
	start := m.clock.Now()
	for episode := 0; !m.exhausted(start, episode); episode++ {
		m.simulate(root, state.Player())
		m.metrics.AddEpisode()
	}
	return root
}

func (m *MCTS) exhausted(start time.Time, episodes int) bool {
	if m.episodes > 0 && episodes >= m.episodes {
		return true
	}
	return m.duration > 0 && m.clock.Since(start) >= m.duration
}

func (m *MCTS) simulate(root *node, rootSeat int) {
	// Selection
	n := root
	for !n.isTerminal() && n.fullyExpanded() {
		n = n.bestChild(m.exploration)
	}

	// Expansion
	if !n.isTerminal() {
		n = n.expand()
		m.metrics.AddNode()
	}

	// Simulation
	final := rollout(n.state, m.rng, m.metrics)

	// Backpropagation
	for n != nil {
		seat := rootSeat
		if m.seatRewards && n.mover >= 0 {
			seat = n.mover
		}
		n = n.backup(reward(final.Made(seat)))
	}
}
