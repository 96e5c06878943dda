package agent

import (
	"fmt"

	"golang.org/x/exp/rand"

	"spades/experiments/metrics"
	"spades/game"
	"spades/searcher"
)

// Strategies a seat can be assigned
const (
	Random     = "random"
	MaxN       = "maxn"
	Expectimax = "expectimax"
	MCTS       = "mcts"
)

var Strategies = []string{Random, MaxN, Expectimax, MCTS}

type Agent interface {
	// Bid returns a legal bid for hand
	Bid(hand []game.Card, bidding Bidding) int
	// Play returns a legal card for the seat to act and the metrics of the
	// search behind it, false when the seat has no legal card
	Play(state game.State) (game.Card, metrics.SearchMetric, bool)
	Strategy() string
}

// New builds the agent for strategy. Search options only apply to searching agents.
func New(strategy string, seed uint64, options ...searcher.Option) (Agent, error) {
	options = append(options, searcher.WithSeed(seed))
	switch strategy {
	case Random:
		return NewRandomAgent(seed), nil
	case MaxN:
		return NewSearchAgent(MaxN, searcher.NewMaxN(options...)), nil
	case Expectimax:
		return NewSearchAgent(Expectimax, searcher.NewExpectimax(options...)), nil
	case MCTS:
		return NewSearchAgent(MCTS, searcher.NewMCTS(options...)), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q, expected one of %v", strategy, Strategies)
	}
}

type searchAgent struct {
	strategy string
	searcher searcher.Searcher
}

// NewSearchAgent bids with the hand strength heuristic and plays the searcher's choice.
func NewSearchAgent(strategy string, searcher searcher.Searcher) Agent {
	return searchAgent{strategy: strategy, searcher: searcher}
}

func (a searchAgent) Bid(hand []game.Card, bidding Bidding) int {
	return DecideBid(hand, bidding)
}

func (a searchAgent) Play(state game.State) (game.Card, metrics.SearchMetric, bool) {
	card, ok := a.searcher.Search(state)
	metric := a.searcher.Metric()
	metric.Strategy = a.strategy // Unset when metrics are not collected
	return card, metric, ok
}

func (a searchAgent) Strategy() string {
	return a.strategy
}

type randomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(seed uint64) Agent {
	return randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a randomAgent) Bid(hand []game.Card, bidding Bidding) int {
	return EvenSplitBid(bidding)
}

func (a randomAgent) Play(state game.State) (game.Card, metrics.SearchMetric, bool) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.Card{}, metrics.SearchMetric{}, false
	}
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{Strategy: Random}, true
}

func (a randomAgent) Strategy() string {
	return Random
}
