package experiments

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"spades/agent"
	"spades/experiments/metrics"
)

func smallExperiment() Experiment {
	random := metrics.AgentConfig{ID: 0, Strategy: agent.Random}
	mcts := metrics.AgentConfig{ID: 1, Strategy: agent.MCTS, Episodes: 20}
	expectimax := metrics.AgentConfig{ID: 2, Strategy: agent.Expectimax, Samples: 5}
	return Experiment{
		Name:    "small",
		Configs: []metrics.AgentConfig{random, mcts, expectimax},
		MatchUps: []MatchUp{
			{Name: "mcts-vs-random", Seats: []metrics.AgentConfig{mcts, random, random}},
			{Name: "expectimax-vs-random", Seats: []metrics.AgentConfig{expectimax, random, random}},
		},
		Games:    3,
		Rounds:   2,
		Parallel: 2,
		Seed:     11,
		Hidden:   true,
	}
}

func TestRun(t *testing.T) {
	t.Run("plays every game of every match up", func(t *testing.T) {
		gameRecords, moveRecords, err := Run(context.Background(), smallExperiment())
		require.NoError(t, err)

		require.Len(t, gameRecords, 6)
		for i, record := range gameRecords {
			require.Equal(t, i+1, record.ID, "Records are ordered by game")
			require.Equal(t, 3*(2+1), record.TotalMoves)
		}
		require.Equal(t, "mcts-vs-random", gameRecords[0].MatchUp)
		require.Equal(t, []int{2, 0, 0}, gameRecords[5].Agents)
		require.Len(t, moveRecords, 6*3*(2+1))
	})

	t.Run("search metrics reach the move records", func(t *testing.T) {
		_, moveRecords, err := Run(context.Background(), smallExperiment())
		require.NoError(t, err)

		for _, record := range moveRecords {
			if record.Game <= 3 && record.Seat == 0 {
				require.Equal(t, agent.MCTS, record.Strategy)
				require.Equal(t, 20, record.Episodes)
			}
		}
	})

	t.Run("stops on cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := Run(ctx, smallExperiment())
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestStore(t *testing.T) {
	experiment := smallExperiment()
	experiment.Games = 1
	gameRecords, moveRecords, err := Run(context.Background(), experiment)
	require.NoError(t, err)

	dir, err := Store(t.TempDir(), experiment, gameRecords, moveRecords)
	require.NoError(t, err)

	for _, name := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		require.Positive(t, info.Size())
	}
}

func TestStrength(t *testing.T) {
	t.Run("skips full tree search on long rounds", func(t *testing.T) {
		for _, matchUp := range Strength(5, 1, false).MatchUps {
			require.NotEqual(t, agent.MaxN, matchUp.Seats[0].Strategy)
		}
		require.Len(t, Strength(2, 1, false).MatchUps, 4)
	})

	t.Run("skips full tree search behind hidden hands", func(t *testing.T) {
		experiment := Strength(2, 1, true)
		require.True(t, experiment.Hidden)
		require.Len(t, experiment.MatchUps, 3)
		for _, matchUp := range experiment.MatchUps {
			require.NotEqual(t, agent.MaxN, matchUp.Seats[0].Strategy)
		}
	})
}
