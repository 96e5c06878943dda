package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"spades/agent"
	"spades/engine"
	"spades/experiments"
	"spades/game"
	"spades/meta"
)

var cli struct {
	Debug bool `help:"enable debug logging"`

	Play       PlayCmd       `cmd:"" help:"play one game at a configured table"`
	Experiment ExperimentCmd `cmd:"" help:"run strategy match-ups and store the records as CSV"`
	Bid        BidCmd        `cmd:"" help:"print the heuristic bid for a hand"`
}

type PlayCmd struct {
	Config string `help:"path to the HCL table config (defaults when missing)" default:"table.hcl"`
	Seed   int64  `help:"random seed; 0 uses the config seed or the time" default:"0"`
}

type ExperimentCmd struct {
	Name     string `help:"experiment to run" enum:"strength,reward_attribution" default:"strength"`
	Rounds   int    `help:"size of the first round" default:"3"`
	Games    int    `help:"games per match-up" default:"30"`
	Parallel int    `help:"games played at once" default:"8"`
	Seed     int64  `help:"random seed" default:"1"`
	Hidden   bool   `help:"hide opponents' hands from every seat"`
	Out      string `help:"directory the experiments folder is created in" default:"."`
}

type BidCmd struct {
	Hand   string `arg:"" help:"cards of the hand, e.g. \"AS 10H 2C\""`
	Total  int    `help:"sum of the bids placed before this seat" default:"0"`
	Placed int    `help:"number of bids placed before this seat" default:"0"`
	Seats  int    `help:"number of seats at the table" default:"4"`
	Round  int    `help:"round size; 0 uses the hand size" default:"0"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("spades"),
		kong.Description("Spades decision engine: bidding heuristic, MaxN, Expectimax and MCTS players"),
		kong.UsageOnError(),
	)

	setupLogger(cli.Debug)

	switch ctx.Command() {
	case "play":
		if err := cli.Play.Run(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("game failed")
		}
	case "experiment":
		if err := cli.Experiment.Run(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("experiment failed")
		}
	case "bid <hand>":
		if err := cli.Bid.Run(); err != nil {
			log.Fatal().Err(err).Msg("bid failed")
		}
	default:
		log.Fatal().Msgf("unknown command: %s", ctx.Command())
	}
}

func setupLogger(debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
}

func (cmd *PlayCmd) Run(ctx context.Context) error {
	config, err := meta.LoadConfig(cmd.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	seed := config.Table.SeedOrNow()
	if cmd.Seed != 0 {
		seed = uint64(cmd.Seed)
	}
	agents, err := config.Agents(seed)
	if err != nil {
		return err
	}

	options := []engine.Option{}
	if config.Table.HideOpponents {
		options = append(options, engine.WithHiddenOpponents())
	}
	strategies := make([]string, len(agents))
	for i, a := range agents {
		strategies[i] = a.Strategy()
	}
	log.Info().Msgf("starting %d rounds with seats %s, seed %d", config.Table.Rounds, strings.Join(strategies, ", "), seed)

	_, _, err = engine.NewLocalEngine(agents, config.Table.Rounds, seed, options...).Run(ctx)
	return err
}

func (cmd *ExperimentCmd) Run(ctx context.Context) error {
	if cmd.Rounds < 1 || cmd.Rounds*4 > game.DeckSize {
		return fmt.Errorf("rounds must be between 1 and %d, got %d", game.DeckSize/4, cmd.Rounds)
	}

	var experiment experiments.Experiment
	switch cmd.Name {
	case "strength":
		experiment = experiments.Strength(cmd.Rounds, uint64(cmd.Seed), cmd.Hidden)
	case "reward_attribution":
		experiment = experiments.RewardAttribution(cmd.Rounds, uint64(cmd.Seed))
	}
	experiment.Games = cmd.Games
	experiment.Parallel = cmd.Parallel
	experiment.Hidden = cmd.Hidden

	gameRecords, moveRecords, err := experiments.Run(ctx, experiment)
	if err != nil {
		return err
	}
	dir, err := experiments.Store(cmd.Out, experiment, gameRecords, moveRecords)
	if err != nil {
		return err
	}
	log.Info().Msgf("stored %d games in %s", len(gameRecords), dir)
	return nil
}

func (cmd *BidCmd) Run() error {
	hand, err := game.ParseCards(cmd.Hand)
	if err != nil {
		return err
	}
	round := cmd.Round
	if round == 0 {
		round = len(hand)
	}

	bid := agent.DecideBid(hand, agent.Bidding{RoundSize: round, Seats: cmd.Seats, Placed: cmd.Placed, Total: cmd.Total})
	fmt.Printf("strength %.1f, bid %d\n", agent.HandStrength(hand), bid)
	return nil
}
