package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

const DeckSize = 52

// NewDeck returns the 52 cards in deck order.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for r := MinRank; r <= MaxRank; r++ {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// Shuffle returns a shuffled copy of the deck.
func Shuffle(deck []Card, rng *rand.Rand) []Card {
	shuffled := make([]Card, len(deck))
	copy(shuffled, deck)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// Deal hands out n cards to each of seats hands from a freshly shuffled deck.
func Deal(seats, n int, rng *rand.Rand) ([][]Card, error) {
	if seats <= 0 || n < 0 {
		return nil, fmt.Errorf("cannot deal %d cards to %d seats", n, seats)
	}
	if seats*n > DeckSize {
		return nil, fmt.Errorf("cannot deal %d cards to %d seats from a %d card deck", n, seats, DeckSize)
	}

	deck := Shuffle(NewDeck(), rng)
	hands := make([][]Card, seats)
	for s := range hands {
		hands[s] = append([]Card(nil), deck[s*n:(s+1)*n]...)
	}
	return hands, nil
}
