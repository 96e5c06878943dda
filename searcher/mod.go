package searcher

import (
	"time"

	"github.com/coder/quartz"
	"golang.org/x/exp/rand"

	"spades/experiments/metrics"
	"spades/game"
)

// Hyperparameters

const DefaultExploration = 1.4 // UCB1 exploration constant
const DefaultSamples = 200     // Playouts per action for Expectimax
const DefaultDuration = time.Second // Wall-clock budget of one MCTS decision

// Rewards for a rollout outcome, from the rewarded seat's perspective
const Win = 1.0
const Loss = 0.0

// Searcher picks a card for the seat to act.
type Searcher interface {
	// Search returns false when the seat to act has no legal move
	Search(state game.State) (game.Card, bool)
	// Metric describes the last search
	Metric() metrics.SearchMetric
}

type Option func(s *settings)

type settings struct {
	duration    time.Duration
	episodes    int
	exploration float64
	samples     int
	reward      float64
	seatRewards bool
	seed        *uint64
	clock       quartz.Clock
	collect     bool

	rng     *rand.Rand
	metrics metrics.Collector
	metric  metrics.SearchMetric
}

// WithDuration bounds MCTS by wall-clock time.
func WithDuration(duration time.Duration) Option {
	return func(s *settings) {
		if duration > 0 {
			s.duration = duration
		}
	}
}

// WithEpisodes caps the number of MCTS iterations.
func WithEpisodes(episodes int) Option {
	return func(s *settings) {
		if episodes > 0 {
			s.episodes = episodes
		}
	}
}

func WithExploration(c float64) Option {
	return func(s *settings) {
		if c >= 0 {
			s.exploration = c
		}
	}
}

// WithSamples sets the playouts per action for Expectimax.
func WithSamples(samples int) Option {
	return func(s *settings) {
		if samples > 0 {
			s.samples = samples
		}
	}
}

// WithReward sets the terminal utility of a met bid.
func WithReward(reward float64) Option {
	return func(s *settings) {
		if reward > 0 {
			s.reward = reward
		}
	}
}

// WithSeatRewards rewards each MCTS node by the outcome of the seat that moved
// into it, instead of always by the root seat's outcome.
func WithSeatRewards() Option {
	return func(s *settings) {
		s.seatRewards = true
	}
}

func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.seed = &seed
	}
}

func WithClock(clock quartz.Clock) Option {
	return func(s *settings) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func WithMetrics() Option {
	return func(s *settings) {
		s.collect = true
	}
}

func newSettings(options []Option) settings {
	s := settings{ // Default values
		exploration: DefaultExploration,
		samples:     DefaultSamples,
		reward:      game.DefaultReward,
		clock:       quartz.NewReal(),
	}
	for _, option := range options {
		option(&s)
	}

	seed := uint64(s.clock.Now().UnixNano())
	if s.seed != nil {
		seed = *s.seed
	}
	s.rng = rand.New(rand.NewSource(seed))

	s.metrics = metrics.NewDummyCollector()
	if s.collect {
		s.metrics = metrics.NewCollector(s.clock)
	}
	return s
}

func (s *settings) Metric() metrics.SearchMetric {
	return s.metric
}
