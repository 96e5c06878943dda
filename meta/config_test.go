package meta

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"spades/agent"
	"spades/searcher"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "table.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.hcl"))
		require.NoError(t, err)

		require.Equal(t, SEATS, config.Table.Seats)
		require.Equal(t, ROUNDS, config.Table.Rounds)
		require.Len(t, config.Seats, SEATS)
		require.Equal(t, STRATEGY, config.Seats[0].Strategy)
		require.Equal(t, searcher.DefaultDuration.String(), config.Search.MCTSBudget)
		require.Equal(t, EXPLORATION, config.Search.Exploration)
		require.Equal(t, SAMPLES, config.Search.Samples)
		require.Nil(t, config.Table.Seed)
		require.NoError(t, config.Validate())
	})

	t.Run("reads every block", func(t *testing.T) {
		path := writeConfig(t, `
table {
  rounds         = 3
  seed           = 42
  hide_opponents = true
}

search {
  mcts_budget  = "50ms"
  exploration  = 2.0
  samples      = 30
  bid_reward   = 5
  seat_rewards = true
}

seat "north" {
  strategy = "expectimax"
}

seat "east" {
  strategy = "random"
}

seat "south" {}
`)
		config, err := LoadConfig(path)
		require.NoError(t, err)

		require.Equal(t, 3, config.Table.Seats, "Seat blocks decide the seat count")
		require.Equal(t, 3, config.Table.Rounds)
		require.Equal(t, uint64(42), config.Table.SeedOrNow())
		require.True(t, config.Table.HideOpponents)
		require.Equal(t, "50ms", config.Search.MCTSBudget)
		require.Equal(t, 2.0, config.Search.Exploration)
		require.Equal(t, 30, config.Search.Samples)
		require.Equal(t, 5.0, config.Search.BidReward)
		require.True(t, config.Search.SeatRewards)
		require.Equal(t, []SeatConfig{
			{Name: "north", Strategy: agent.Expectimax},
			{Name: "east", Strategy: agent.Random},
			{Name: "south", Strategy: STRATEGY},
		}, config.Seats)
	})

	t.Run("episodes replace the default budget", func(t *testing.T) {
		config, err := LoadConfig(writeConfig(t, `search { episodes = 100 }`))
		require.NoError(t, err)

		require.Empty(t, config.Search.MCTSBudget)
		require.Equal(t, 100, config.Search.Episodes)
	})

	t.Run("rejects an unknown strategy", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `seat "north" { strategy = "oracle" }
seat "south" {}`))

		require.ErrorContains(t, err, "invalid strategy oracle")
	})

	t.Run("rejects an invalid budget", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `search { mcts_budget = "soon" }`))

		require.ErrorContains(t, err, "mcts_budget")
	})

	t.Run("rejects more cards than the deck holds", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `table {
  seats  = 6
  rounds = 9
}`))

		require.Error(t, err)
	})

	t.Run("rejects maxn behind hidden hands", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `table { hide_opponents = true }
seat "north" { strategy = "maxn" }
seat "south" {}`))

		require.ErrorContains(t, err, "maxn needs every hand visible")
	})

	t.Run("explicit seats must match the seat blocks", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `table { seats = 4 }
seat "north" {}
seat "south" {}`))

		require.ErrorContains(t, err, "table seats is 4 but 2 seat blocks are given")
	})

	t.Run("explicit seats without seat blocks fill default seats", func(t *testing.T) {
		config, err := LoadConfig(writeConfig(t, `table { seats = 3 }`))
		require.NoError(t, err)

		require.Len(t, config.Seats, 3)
		require.Equal(t, "seat2", config.Seats[2].Name)
	})

	t.Run("rejects malformed HCL", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `table {`))

		require.ErrorContains(t, err, "failed to parse HCL file")
	})
}

func TestAgents(t *testing.T) {
	t.Run("one agent per seat", func(t *testing.T) {
		config := DefaultConfig()
		config.Seats[1].Strategy = agent.Random

		agents, err := config.Agents(1)
		require.NoError(t, err)
		require.Len(t, agents, SEATS)
		require.Equal(t, agent.MCTS, agents[0].Strategy())
		require.Equal(t, agent.Random, agents[1].Strategy())
	})
}
