package experiments

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"spades/agent"
	"spades/engine"
	"spades/experiments/metrics"
	"spades/meta"
	"spades/searcher"
)

const (
	NumGames   = 30 // Per match up
	TimeBudget = 10 * time.Millisecond
)

// MatchUp seats one agent config per seat
type MatchUp struct {
	Name  string
	Seats []metrics.AgentConfig
}

type Experiment struct {
	Name     string
	Configs  []metrics.AgentConfig
	MatchUps []MatchUp
	Games    int // Per match up
	Rounds   int
	Parallel int
	Seed     uint64
	Hidden   bool // Hide opponents' hands from every seat
}

var strengthConfigs = []metrics.AgentConfig{
	{ID: 0, Strategy: agent.Random},
	{ID: 1, Strategy: agent.MCTS, Duration: TimeBudget, Exploration: meta.EXPLORATION},
	{ID: 2, Strategy: agent.MCTS, Duration: TimeBudget, Exploration: meta.EXPLORATION, SeatRewards: true},
	{ID: 3, Strategy: agent.Expectimax, Samples: 20},
	{ID: 4, Strategy: agent.MaxN},
}

// Strength pits each searching strategy against random seats. MaxN only
// plays short rounds with every hand visible.
func Strength(rounds int, seed uint64, hidden bool) Experiment {
	baseline := strengthConfigs[0]
	matchUps := []MatchUp{}
	for _, config := range strengthConfigs[1:] {
		if config.Strategy == agent.MaxN && (rounds > 3 || hidden) { // Full tree search is only tractable for short observed rounds
			continue
		}
		name := fmt.Sprintf("%s%d-vs-random", config.Strategy, config.ID)
		matchUps = append(matchUps, MatchUp{Name: name, Seats: []metrics.AgentConfig{config, baseline, baseline, baseline}})
	}

	return Experiment{
		Name:     "strength",
		Configs:  strengthConfigs,
		MatchUps: matchUps,
		Games:    NumGames,
		Rounds:   rounds,
		Parallel: meta.PARALLEL_GAMES,
		Seed:     seed,
		Hidden:   hidden,
	}
}

// RewardAttribution compares root-seat rewards with per-seat rewards head to head.
func RewardAttribution(rounds int, seed uint64) Experiment {
	root, seat := strengthConfigs[1], strengthConfigs[2]
	return Experiment{
		Name:    "reward_attribution",
		Configs: []metrics.AgentConfig{root, seat},
		MatchUps: []MatchUp{
			{Name: "root-first", Seats: []metrics.AgentConfig{root, seat, root, seat}},
			{Name: "seat-first", Seats: []metrics.AgentConfig{seat, root, seat, root}},
		},
		Games:    NumGames,
		Rounds:   rounds,
		Parallel: meta.PARALLEL_GAMES,
		Seed:     seed,
	}
}

// Run plays every game of the experiment, a bounded number at a time.
func Run(ctx context.Context, experiment Experiment) ([]metrics.GameRecord, []metrics.MoveRecord, error) {
	log.Info().Msgf("starting %s experiment...", experiment.Name)

	var mu sync.Mutex
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, experiment.Parallel))
	count := 0
	for mi, matchUp := range experiment.MatchUps {
		for i := 0; i < experiment.Games; i++ {
			count++
			id := count
			seed := experiment.Seed + uint64(id)*uint64(len(matchUp.Seats))

			g.Go(func() error {
				log.Info().Msgf("starting matchup %d of %d game %d of %d...", mi+1, len(experiment.MatchUps), i+1, experiment.Games)
				gameMetric, moveMetrics, err := runGame(ctx, matchUp, experiment.Rounds, seed, experiment.Hidden)
				if err != nil {
					return fmt.Errorf("match up %s game %d: %w", matchUp.Name, i+1, err)
				}

				ids := make([]int, len(matchUp.Seats))
				for s, config := range matchUp.Seats {
					ids[s] = config.ID
				}

				mu.Lock()
				defer mu.Unlock()
				gameRecords = append(gameRecords, metrics.GameRecord{
					ID:         id,
					MatchUp:    matchUp.Name,
					Agents:     ids,
					GameMetric: gameMetric,
				})
				for _, mm := range moveMetrics {
					moveRecords = append(moveRecords, metrics.MoveRecord{
						Game:       id,
						MoveMetric: mm,
					})
				}

				log.Info().Msgf("completed matchup %d of %d game %d with winner: seat %d", mi+1, len(experiment.MatchUps), i+1, gameMetric.Winner)
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	// Games finish out of order
	slices.SortFunc(gameRecords, func(a, b metrics.GameRecord) int {
		return a.ID - b.ID
	})
	slices.SortStableFunc(moveRecords, func(a, b metrics.MoveRecord) int {
		return a.Game - b.Game
	})
	log.Info().Msgf("completed %s experiment", experiment.Name)
	return gameRecords, moveRecords, nil
}

// Store writes the experiment's configs and records under root.
func Store(root string, experiment Experiment, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(root, experiment.Name, time.Now())
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(experiment.Configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}

// runGame executes a single game between the match up's agents
func runGame(ctx context.Context, matchUp MatchUp, rounds int, seed uint64, hidden bool) (metrics.GameMetric, []metrics.MoveMetric, error) {
	agents := make([]agent.Agent, len(matchUp.Seats))
	for s, config := range matchUp.Seats {
		a, err := agent.New(config.Strategy, seed+uint64(s), searchOptions(config)...)
		if err != nil {
			return metrics.GameMetric{}, nil, err
		}
		agents[s] = a
	}

	options := []engine.Option{}
	if hidden {
		options = append(options, engine.WithHiddenOpponents())
	}
	e := engine.NewLocalEngine(agents, rounds, seed, options...)
	return e.Run(ctx)
}

func searchOptions(config metrics.AgentConfig) []searcher.Option {
	options := []searcher.Option{}

	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Samples > 0 {
		options = append(options, searcher.WithSamples(config.Samples))
	}
	if config.Exploration > 0 {
		options = append(options, searcher.WithExploration(config.Exploration))
	}
	if config.SeatRewards {
		options = append(options, searcher.WithSeatRewards())
	}

	options = append(options, searcher.WithMetrics())
	return options
}
