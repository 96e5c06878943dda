package meta

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"golang.org/x/exp/slices"

	"spades/agent"
	"spades/game"
	"spades/searcher"
)

// Config represents a complete table configuration
type Config struct {
	Table  *TableSettings  `hcl:"table,block"`
	Search *SearchSettings `hcl:"search,block"`
	Seats  []SeatConfig    `hcl:"seat,block"`
}

// TableSettings describes the game the table plays
type TableSettings struct {
	Seats         int    `hcl:"seats,optional"`
	Rounds        int    `hcl:"rounds,optional"`
	Seed          *int64 `hcl:"seed,optional"`
	HideOpponents bool   `hcl:"hide_opponents,optional"`
}

// SearchSettings are shared by every searching seat
type SearchSettings struct {
	MCTSBudget  string  `hcl:"mcts_budget,optional"`
	Episodes    int     `hcl:"episodes,optional"`
	Exploration float64 `hcl:"exploration,optional"`
	Samples     int     `hcl:"samples,optional"`
	BidReward   float64 `hcl:"bid_reward,optional"`
	SeatRewards bool    `hcl:"seat_rewards,optional"`
}

// SeatConfig assigns a strategy to a seat, in block order
type SeatConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy,optional"`
}

// DefaultConfig returns default table configuration
func DefaultConfig() *Config {
	config := &Config{}
	config.applyDefaults()
	return config
}

// LoadConfig loads table configuration from an HCL file, defaults when it does not exist
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Table == nil {
		c.Table = &TableSettings{}
	}
	if c.Search == nil {
		c.Search = &SearchSettings{}
	}

	// Seat blocks decide the seat count when table.seats is unset
	if c.Table.Seats == 0 {
		c.Table.Seats = len(c.Seats)
	}
	if c.Table.Seats == 0 {
		c.Table.Seats = SEATS
	}
	if c.Table.Rounds == 0 {
		c.Table.Rounds = ROUNDS
	}
	if len(c.Seats) == 0 {
		for len(c.Seats) < c.Table.Seats {
			c.Seats = append(c.Seats, SeatConfig{Name: fmt.Sprintf("seat%d", len(c.Seats))})
		}
	}
	for i := range c.Seats {
		if c.Seats[i].Strategy == "" {
			c.Seats[i].Strategy = STRATEGY
		}
	}

	if c.Search.MCTSBudget == "" && c.Search.Episodes == 0 {
		c.Search.MCTSBudget = MCTS_BUDGET.String()
	}
	if c.Search.Exploration == 0 {
		c.Search.Exploration = EXPLORATION
	}
	if c.Search.Samples == 0 {
		c.Search.Samples = SAMPLES
	}
	if c.Search.BidReward == 0 {
		c.Search.BidReward = BID_REWARD
	}
}

// Validate validates the table configuration
func (c *Config) Validate() error {
	if c.Table.Seats < 2 {
		return fmt.Errorf("table needs at least 2 seats, got %d", c.Table.Seats)
	}
	if c.Table.Rounds < 1 {
		return fmt.Errorf("table needs at least 1 round, got %d", c.Table.Rounds)
	}
	if len(c.Seats) != c.Table.Seats {
		return fmt.Errorf("table seats is %d but %d seat blocks are given", c.Table.Seats, len(c.Seats))
	}
	if c.Table.Seats*c.Table.Rounds > game.DeckSize {
		return fmt.Errorf("cannot deal %d cards to %d seats from a %d card deck", c.Table.Rounds, c.Table.Seats, game.DeckSize)
	}

	budget, err := c.Search.budget()
	if err != nil {
		return err
	}
	if c.Search.Exploration < 0 {
		return fmt.Errorf("exploration must not be negative, got %v", c.Search.Exploration)
	}
	if c.Search.Samples < 0 || c.Search.Episodes < 0 {
		return fmt.Errorf("samples and episodes must not be negative")
	}
	if c.Search.BidReward < 0 {
		return fmt.Errorf("bid reward must not be negative, got %v", c.Search.BidReward)
	}

	for _, seat := range c.Seats {
		if !slices.Contains(agent.Strategies, seat.Strategy) {
			return fmt.Errorf("seat %s: invalid strategy %s", seat.Name, seat.Strategy)
		}
		if seat.Strategy == agent.MCTS && budget == 0 && c.Search.Episodes == 0 {
			return fmt.Errorf("seat %s: mcts needs mcts_budget or episodes", seat.Name)
		}
		if seat.Strategy == agent.MaxN && c.Table.HideOpponents {
			return fmt.Errorf("seat %s: maxn needs every hand visible, unset hide_opponents", seat.Name)
		}
	}
	return nil
}

func (s *SearchSettings) budget() (time.Duration, error) {
	if s.MCTSBudget == "" {
		return 0, nil
	}
	budget, err := time.ParseDuration(s.MCTSBudget)
	if err != nil {
		return 0, fmt.Errorf("invalid mcts_budget: %w", err)
	}
	if budget < 0 {
		return 0, fmt.Errorf("mcts_budget must not be negative, got %s", budget)
	}
	return budget, nil
}

// Options returns the search options every searching seat shares
func (s *SearchSettings) Options() ([]searcher.Option, error) {
	budget, err := s.budget()
	if err != nil {
		return nil, err
	}
	options := []searcher.Option{
		searcher.WithDuration(budget),
		searcher.WithEpisodes(s.Episodes),
		searcher.WithExploration(s.Exploration),
		searcher.WithSamples(s.Samples),
		searcher.WithReward(s.BidReward),
	}
	if s.SeatRewards {
		options = append(options, searcher.WithSeatRewards())
	}
	return options, nil
}

// SeedOrNow returns the configured seed, or one taken from the current time
func (t *TableSettings) SeedOrNow() uint64 {
	if t.Seed != nil {
		return uint64(*t.Seed)
	}
	return uint64(time.Now().UnixNano())
}

// Agents builds one agent per seat. Seat i searches with seed+i.
func (c *Config) Agents(seed uint64, extra ...searcher.Option) ([]agent.Agent, error) {
	options, err := c.Search.Options()
	if err != nil {
		return nil, err
	}
	options = append(options, extra...)

	agents := make([]agent.Agent, len(c.Seats))
	for i, seat := range c.Seats {
		agents[i], err = agent.New(seat.Strategy, seed+uint64(i), options...)
		if err != nil {
			return nil, fmt.Errorf("seat %s: %w", seat.Name, err)
		}
	}
	return agents, nil
}
