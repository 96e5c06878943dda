package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Suit of a card
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// Trump is fixed for the whole game
const Trump = Spades

// Suits in deck order
var Suits = [...]Suit{Spades, Hearts, Diamonds, Clubs}

func (s Suit) String() string {
	switch s {
	case Spades:
		return "S"
	case Hearts:
		return "H"
	case Diamonds:
		return "D"
	case Clubs:
		return "C"
	default:
		return "?"
	}
}

// Rank is an ordinal from 2 to 14 (Ace high)
type Rank int

const (
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14

	MinRank Rank = 2
	MaxRank Rank = Ace
)

func (r Rank) String() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return strconv.Itoa(int(r))
	}
}

// IsFace reports whether the rank is a Jack or higher.
func (r Rank) IsFace() bool {
	return r >= Jack
}

type Card struct {
	Rank Rank
	Suit Suit
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

func (c Card) IsTrump() bool {
	return c.Suit == Trump
}

// index maps a card to 0..51, suits in deck order and ranks ascending
func (c Card) index() int {
	return int(c.Suit)*13 + int(c.Rank-MinRank)
}

func (c Card) valid() bool {
	return c.Rank >= MinRank && c.Rank <= MaxRank && c.Suit >= Spades && c.Suit <= Clubs
}

// ParseCard parses the text form used throughout the game, e.g. "10S" or "AH".
func ParseCard(s string) (Card, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}

	var suit Suit
	switch s[len(s)-1] {
	case 'S':
		suit = Spades
	case 'H':
		suit = Hearts
	case 'D':
		suit = Diamonds
	case 'C':
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid suit in card %q", s)
	}

	var rank Rank
	switch r := s[:len(s)-1]; r {
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	case "A":
		rank = Ace
	default:
		n, err := strconv.Atoi(r)
		if err != nil || n < int(MinRank) || n > 10 {
			return Card{}, fmt.Errorf("invalid rank in card %q", s)
		}
		rank = Rank(n)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// ParseCards parses a whitespace separated list of cards.
func ParseCards(s string) ([]Card, error) {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards for literals known to be valid.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// CardSet is a set of cards backed by a bitset, one bit per card of the deck.
type CardSet uint64

func NewCardSet(cards ...Card) CardSet {
	var set CardSet
	for _, c := range cards {
		set = set.Add(c)
	}
	return set
}

func (s CardSet) Add(c Card) CardSet {
	return s | 1<<c.index()
}

func (s CardSet) Contains(c Card) bool {
	return s&(1<<c.index()) != 0
}

func (s CardSet) Union(other CardSet) CardSet {
	return s | other
}

func (s CardSet) Len() int {
	n := 0
	for v := uint64(s); v != 0; v &= v - 1 {
		n++
	}
	return n
}

// Cards lists the members in deck order.
func (s CardSet) Cards() []Card {
	cards := make([]Card, 0, s.Len())
	for _, c := range NewDeck() {
		if s.Contains(c) {
			cards = append(cards, c)
		}
	}
	return cards
}
