package engine

import (
	"context"
	"fmt"

	"github.com/coder/quartz"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"

	"spades/agent"
	"spades/experiments/metrics"
	"spades/game"
	"spades/utils"
)

type Option func(e *LocalEngine)

// WithHiddenOpponents only reveals each seat its own hand.
func WithHiddenOpponents() Option {
	return func(e *LocalEngine) {
		e.hideOpponents = true
	}
}

func WithClock(clock quartz.Clock) Option {
	return func(e *LocalEngine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithDealer picks the dealer of the first round.
func WithDealer(seat int) Option {
	return func(e *LocalEngine) {
		e.dealer = seat
	}
}

// WithDeal replaces the shuffled deal, for scripted games.
func WithDeal(deal func(seats, n int) ([][]game.Card, error)) Option {
	return func(e *LocalEngine) {
		if deal != nil {
			e.deal = deal
		}
	}
}

// LocalEngine is the authoritative table. It owns the real hands and
// scores, and asks agents for decisions on snapshots of the round.
type LocalEngine struct {
	agents        []agent.Agent
	rounds        int
	hideOpponents bool
	clock         quartz.Clock
	deal          func(seats, n int) ([][]game.Card, error)

	dealer int
	scores []int
	step   int
	moves  []metrics.MoveMetric
}

// round is the table's bookkeeping for the round in play.
type round struct {
	size        int
	hands       [][]game.Card
	bids        []int
	tricksWon   []int
	played      game.CardSet
	trick       game.Trick
	trumpBroken bool
}

func NewLocalEngine(agents []agent.Agent, rounds int, seed uint64, options ...Option) *LocalEngine {
	if len(agents) < 2 {
		panic("need at least two players")
	}
	if rounds < 1 {
		panic("need at least one round")
	}

	rng := rand.New(rand.NewSource(seed))
	e := &LocalEngine{ // Default values
		agents: agents,
		rounds: rounds,
		clock:  quartz.NewReal(),
		deal: func(seats, n int) ([][]game.Card, error) {
			return game.Deal(seats, n, rng)
		},
		scores: make([]int, len(agents)),
	}
	for _, option := range options {
		option(e)
	}
	e.dealer = ((e.dealer % len(agents)) + len(agents)) % len(agents)
	return e
}

func (e *LocalEngine) seats() int {
	return len(e.agents)
}

// Run plays rounds of decreasing size, from the configured number of rounds down to one card each.
func (e *LocalEngine) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error) {
	start := e.clock.Now()
	for size := e.rounds; size >= 1; size-- {
		if err := ctx.Err(); err != nil {
			return metrics.GameMetric{}, nil, err
		}
		if err := e.playRound(ctx, size); err != nil {
			return metrics.GameMetric{}, nil, fmt.Errorf("round of %d: %w", size, err)
		}
		e.dealer = (e.dealer + 1) % e.seats()
	}

	winner := utils.ArgMax(e.seats(), func(i int) int { return e.scores[i] })
	end := e.clock.Now()
	log.Info().Msgf("seat %d wins with %d points, scores %v", winner, e.scores[winner], e.scores)

	return metrics.GameMetric{
		Seats:      e.seats(),
		Rounds:     e.rounds,
		Winner:     winner,
		Scores:     slices.Clone(e.scores),
		StartTime:  start,
		EndTime:    end,
		Duration:   end.Sub(start),
		TotalMoves: e.step,
	}, e.moves, nil
}

func (e *LocalEngine) playRound(ctx context.Context, size int) error {
	hands, err := e.deal(e.seats(), size)
	if err != nil {
		return err
	}
	r := &round{
		size:      size,
		hands:     hands,
		bids:      make([]int, e.seats()),
		tricksWon: make([]int, e.seats()),
		trick:     game.NewTrick(e.seats()),
	}
	log.Info().Msgf("starting round of %d with seat %d dealing", size, e.dealer)

	if err := e.bid(r); err != nil {
		return err
	}

	leader := (e.dealer + 1) % e.seats()
	for trick := 0; trick < size; trick++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		winner, err := e.playTrick(r, leader)
		if err != nil {
			return err
		}
		leader = winner // Trick winner leads the next trick
	}

	for seat := range r.bids {
		score := game.Score(r.bids[seat], r.tricksWon[seat])
		e.scores[seat] += score
		log.Info().Msgf("seat %d bid %d, won %d, scored %d", seat, r.bids[seat], r.tricksWon[seat], score)
	}
	return nil
}

// bid asks every seat for its bid, starting left of the dealer. The dealer bids last.
func (e *LocalEngine) bid(r *round) error {
	bidding := agent.Bidding{RoundSize: r.size, Seats: e.seats()}
	for i := 1; i <= e.seats(); i++ {
		seat := (e.dealer + i) % e.seats()
		bid := e.agents[seat].Bid(slices.Clone(r.hands[seat]), bidding)
		if !bidding.Legal(bid) {
			return fmt.Errorf("seat %d bid %d with %d of %d bid: %w", seat, bid, bidding.Total, r.size, ErrIllegalAction)
		}

		r.bids[seat] = bid
		bidding.Total += bid
		bidding.Placed++
		log.Info().Msgf("seat %d bids %d", seat, bid)
	}
	return nil
}

// playTrick asks every seat for a card, starting with leader, and returns the trick winner.
func (e *LocalEngine) playTrick(r *round, leader int) (int, error) {
	for i := 0; i < e.seats(); i++ {
		seat := (leader + i) % e.seats()
		snapshot, err := e.snapshot(r, seat)
		if err != nil {
			return 0, fmt.Errorf("snapshot for seat %d: %w", seat, err)
		}

		card, metric, ok := e.agents[seat].Play(snapshot)
		if !ok {
			return 0, fmt.Errorf("seat %d has no card to play: %w", seat, ErrIllegalAction)
		}
		legal := game.LegalCards(r.hands[seat], r.trick, seat, r.trumpBroken)
		if !slices.Contains(legal, card) {
			return 0, fmt.Errorf("seat %d played %s, legal %v: %w", seat, card, legal, ErrIllegalAction)
		}

		e.apply(r, seat, card)
		e.step++
		e.moves = append(e.moves, metrics.MoveMetric{
			Step:         e.step,
			Round:        r.size,
			Seat:         seat,
			Action:       card.String(),
			SearchMetric: metric,
		})
		log.Debug().Int("seat", seat).Str("card", card.String()).Uint64("state", uint64(snapshot.Hash())).Msg("card played")
	}

	winner := game.TrickWinner(r.trick, leader)
	r.tricksWon[winner]++
	log.Info().Msgf("seat %d wins the trick %v", winner, r.trick.Cards().Cards())
	r.trick = game.NewTrick(e.seats())
	return winner, nil
}

func (e *LocalEngine) apply(r *round, seat int, card game.Card) {
	i := utils.FindIndex(r.hands[seat], card)
	r.hands[seat] = slices.Delete(slices.Clone(r.hands[seat]), i, i+1)
	r.trick[seat] = game.Slot{Card: card, Filled: true}
	r.played = r.played.Add(card)
	if card.IsTrump() {
		r.trumpBroken = true
	}
}

// snapshot builds the state seat decides on. Opponents' hands are hidden
// when the table is configured to hide them.
func (e *LocalEngine) snapshot(r *round, seat int) (*game.GameState, error) {
	hands := make([]game.Hand, e.seats())
	for s, cards := range r.hands {
		if e.hideOpponents && s != seat {
			hands[s] = game.HiddenHand(len(cards))
		} else {
			hands[s] = game.KnownHand(slices.Clone(cards)...)
		}
	}

	state := &game.GameState{
		RoundSize:   r.size,
		Hands:       hands,
		CurrentSeat: seat,
		PlayedRound: r.played,
		Trick:       slices.Clone(r.trick),
		TrumpBroken: r.trumpBroken,
		Bids:        slices.Clone(r.bids),
		TricksWon:   slices.Clone(r.tricksWon),
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}
	return state, nil
}
