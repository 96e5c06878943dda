package game

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"

	"golang.org/x/exp/slices"

	"spades/utils"
)

// ErrMalformedState is returned for snapshots that break the construction contract.
var ErrMalformedState = errors.New("malformed state")

// Hand is a seat's cards. A hidden hand only tracks how many cards remain,
// its legal moves come from the pool of cards not yet seen.
type Hand struct {
	Cards  []Card
	Hidden bool
	Size   int // Remaining cards of a hidden hand
}

func KnownHand(cards ...Card) Hand {
	return Hand{Cards: cards}
}

func HiddenHand(size int) Hand {
	return Hand{Hidden: true, Size: size}
}

func (h Hand) Len() int {
	if h.Hidden {
		return h.Size
	}
	return len(h.Cards)
}

func (h Hand) clone() Hand {
	return Hand{Cards: slices.Clone(h.Cards), Hidden: h.Hidden, Size: h.Size}
}

// GameState is one decision point of a round. It is never mutated once built:
// Play returns a deep copy that shares no storage with its parent.
type GameState struct {
	RoundSize   int     // Tricks in the current round
	Hands       []Hand  // Indexed by seat
	CurrentSeat int     // Seat to act
	PlayedRound CardSet // Cards played this round, including the current trick
	Trick       Trick   // Trick in progress
	TrumpBroken bool
	Bids        []int
	TricksWon   []int
}

// NewRoundState builds the state at the first lead of a round, after bidding.
func NewRoundState(roundSize int, hands []Hand, leader int, bids []int) (*GameState, error) {
	gs := &GameState{
		RoundSize:   roundSize,
		Hands:       hands,
		CurrentSeat: leader,
		Trick:       NewTrick(len(hands)),
		Bids:        bids,
		TricksWon:   make([]int, len(hands)),
	}
	if err := gs.Validate(); err != nil {
		return nil, err
	}
	return gs, nil
}

func (gs *GameState) Seats() int {
	return len(gs.Hands)
}

// Copy returns a deep copy of the state.
func (gs *GameState) Copy() *GameState {
	hands := make([]Hand, len(gs.Hands))
	for i, hand := range gs.Hands {
		hands[i] = hand.clone()
	}

	return &GameState{
		RoundSize:   gs.RoundSize,
		Hands:       hands,
		CurrentSeat: gs.CurrentSeat,
		PlayedRound: gs.PlayedRound,
		Trick:       slices.Clone(gs.Trick),
		TrumpBroken: gs.TrumpBroken,
		Bids:        slices.Clone(gs.Bids),
		TricksWon:   slices.Clone(gs.TricksWon),
	}
}

// Player returns the seat to act.
func (gs *GameState) Player() int {
	return gs.CurrentSeat
}

// LegalMoves returns the cards the current seat may play, in hand order
// (deck order for a hidden hand).
func (gs *GameState) LegalMoves() []Card {
	return LegalCards(gs.pool(gs.CurrentSeat), gs.Trick, gs.CurrentSeat, gs.TrumpBroken)
}

// pool returns the cards a seat could hold: its own hand, or for a hidden hand
// every card not played this round, not in the trick and not in a known hand.
func (gs *GameState) pool(seat int) []Card {
	hand := gs.Hands[seat]
	if !hand.Hidden {
		return hand.Cards
	}
	if hand.Size == 0 {
		return nil
	}

	seen := gs.PlayedRound.Union(gs.Trick.Cards())
	for _, h := range gs.Hands {
		if !h.Hidden {
			seen = seen.Union(NewCardSet(h.Cards...))
		}
	}

	var pool []Card
	for _, c := range NewDeck() {
		if !seen.Contains(c) {
			pool = append(pool, c)
		}
	}
	return pool
}

func (gs *GameState) Play(card Card) State {
	return gs.Successor(card)
}

// Successor returns the state after the current seat plays card. Playing a
// card outside LegalMoves is a programming error and panics.
func (gs *GameState) Successor(card Card) *GameState {
	if !slices.Contains(gs.LegalMoves(), card) {
		panic(fmt.Sprintf("illegal move %s for seat %d", card, gs.CurrentSeat))
	}

	seat := gs.CurrentSeat
	leader := gs.Trick.Leader(seat)
	next := gs.Copy()

	hand := &next.Hands[seat]
	if hand.Hidden {
		hand.Size--
	} else {
		i := utils.FindIndex(hand.Cards, card)
		hand.Cards = slices.Delete(hand.Cards, i, i+1)
	}

	next.Trick[seat] = Slot{Card: card, Filled: true}
	next.PlayedRound = next.PlayedRound.Add(card)
	if card.IsTrump() {
		next.TrumpBroken = true
	}

	if next.Trick.Complete() {
		winner := TrickWinner(next.Trick, leader)
		next.TricksWon[winner]++
		next.Trick = NewTrick(next.Seats())
	}

	next.CurrentSeat = (seat + 1) % next.Seats()
	return next
}

// IsTerminal reports whether every hand has been played out.
func (gs *GameState) IsTerminal() bool {
	for _, hand := range gs.Hands {
		if hand.Len() > 0 {
			return false
		}
	}
	return true
}

func (gs *GameState) Made(seat int) bool {
	return gs.TricksWon[seat] == gs.Bids[seat]
}

func (gs *GameState) Utility(reward float64) []float64 {
	utility := make([]float64, gs.Seats())
	for seat := range utility {
		utility[seat] = Utility(gs.Bids[seat], gs.TricksWon[seat], reward)
	}
	return utility
}

func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(gs.RoundSize))
	binary.Write(hasher, binary.LittleEndian, int64(gs.CurrentSeat))
	binary.Write(hasher, binary.LittleEndian, uint64(gs.PlayedRound))
	binary.Write(hasher, binary.LittleEndian, gs.TrumpBroken)

	for _, hand := range gs.Hands {
		binary.Write(hasher, binary.LittleEndian, hand.Hidden)
		binary.Write(hasher, binary.LittleEndian, int64(hand.Len()))
		for _, c := range hand.Cards {
			binary.Write(hasher, binary.LittleEndian, int64(c.index()))
		}
	}

	for _, slot := range gs.Trick {
		idx := int64(-1)
		if slot.Filled {
			idx = int64(slot.Card.index())
		}
		binary.Write(hasher, binary.LittleEndian, idx)
	}

	for seat := range gs.Bids {
		binary.Write(hasher, binary.LittleEndian, int64(gs.Bids[seat]))
		binary.Write(hasher, binary.LittleEndian, int64(gs.TricksWon[seat]))
	}

	return StateHash(hasher.Sum64())
}

// Validate checks the snapshot construction contract. Violations are wrapped
// ErrMalformedState errors and are never patched up.
func (gs *GameState) Validate() error {
	seats := gs.Seats()
	if seats == 0 {
		return fmt.Errorf("%w: no seats", ErrMalformedState)
	}
	if gs.RoundSize < 0 {
		return fmt.Errorf("%w: negative round size %d", ErrMalformedState, gs.RoundSize)
	}
	if len(gs.Bids) != seats || len(gs.TricksWon) != seats || len(gs.Trick) != seats {
		return fmt.Errorf("%w: %d hands but %d bids, %d trick tallies and %d trick slots",
			ErrMalformedState, seats, len(gs.Bids), len(gs.TricksWon), len(gs.Trick))
	}
	if gs.CurrentSeat < 0 || gs.CurrentSeat >= seats {
		return fmt.Errorf("%w: current seat %d out of range", ErrMalformedState, gs.CurrentSeat)
	}

	tricks := 0
	for seat := 0; seat < seats; seat++ {
		if gs.Bids[seat] < 0 || gs.TricksWon[seat] < 0 {
			return fmt.Errorf("%w: seat %d has negative bid or tricks", ErrMalformedState, seat)
		}
		tricks += gs.TricksWon[seat]
	}
	if tricks > gs.RoundSize {
		return fmt.Errorf("%w: %d tricks won in a round of %d", ErrMalformedState, tricks, gs.RoundSize)
	}

	if gs.Trick.Complete() {
		return fmt.Errorf("%w: trick in progress is already complete", ErrMalformedState)
	}

	for seat, slot := range gs.Trick {
		if slot.Filled && !slot.Card.valid() {
			return fmt.Errorf("%w: seat %d trick slot holds invalid card %+v", ErrMalformedState, seat, slot.Card)
		}
	}

	seen := gs.PlayedRound.Union(gs.Trick.Cards())
	for seat, hand := range gs.Hands {
		want := gs.RoundSize - tricks
		if gs.Trick[seat].Filled {
			want--
		}
		if hand.Hidden && len(hand.Cards) > 0 {
			return fmt.Errorf("%w: seat %d hand is hidden but lists cards", ErrMalformedState, seat)
		}
		if hand.Len() != want {
			return fmt.Errorf("%w: seat %d holds %d cards, expected %d", ErrMalformedState, seat, hand.Len(), want)
		}
		for _, c := range hand.Cards {
			if !c.valid() {
				return fmt.Errorf("%w: seat %d holds invalid card %+v", ErrMalformedState, seat, c)
			}
			if seen.Contains(c) {
				return fmt.Errorf("%w: duplicate card %s", ErrMalformedState, c)
			}
			seen = seen.Add(c)
		}
	}

	for seat, slot := range gs.Trick {
		if slot.Filled && !gs.PlayedRound.Contains(slot.Card) {
			return fmt.Errorf("%w: seat %d trick card %s missing from played cards", ErrMalformedState, seat, slot.Card)
		}
	}

	// Cards in the trick must have been played by the seats right before the current one
	for i := 1; i <= gs.Trick.Played(); i++ {
		seat := ((gs.CurrentSeat-i)%seats + seats) % seats
		if !gs.Trick[seat].Filled {
			return fmt.Errorf("%w: seat %d has not played to the trick ahead of seat %d", ErrMalformedState, seat, gs.CurrentSeat)
		}
	}

	return nil
}
