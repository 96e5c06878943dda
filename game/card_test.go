package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestParseCard(t *testing.T) {
	t.Run("parsing number and face ranks", func(t *testing.T) {
		c, err := ParseCard("10S")
		require.NoError(t, err)
		require.Equal(t, Card{Rank: 10, Suit: Spades}, c)

		c, err = ParseCard("ah")
		require.NoError(t, err)
		require.Equal(t, Card{Rank: Ace, Suit: Hearts}, c)
	})

	t.Run("rejecting malformed cards", func(t *testing.T) {
		for _, s := range []string{"", "S", "1S", "11H", "ZD", "10X"} {
			_, err := ParseCard(s)
			require.Error(t, err, "Should reject %q", s)
		}
	})

	t.Run("formatting round trips through the text form", func(t *testing.T) {
		for _, c := range NewDeck() {
			got, err := ParseCard(c.String())
			require.NoError(t, err)
			require.Equal(t, c, got)
		}
	})
}

func TestCardSet(t *testing.T) {
	cards := MustParseCards("2S AS 10H")
	set := NewCardSet(cards...)

	require.Equal(t, 3, set.Len())
	require.True(t, set.Contains(cards[1]))
	require.False(t, set.Contains(Card{Rank: Ace, Suit: Clubs}))
	require.Equal(t, cards, set.Cards(), "Should list members in deck order")
}

func TestDeal(t *testing.T) {
	t.Run("dealing unique cards to every seat", func(t *testing.T) {
		hands, err := Deal(4, 13, rand.New(rand.NewSource(7)))
		require.NoError(t, err)
		require.Len(t, hands, 4)

		var seen CardSet
		for _, hand := range hands {
			require.Len(t, hand, 13)
			for _, c := range hand {
				require.False(t, seen.Contains(c), "Card %s dealt twice", c)
				seen = seen.Add(c)
			}
		}
		require.Equal(t, DeckSize, seen.Len())
	})

	t.Run("dealing the same hands for the same seed", func(t *testing.T) {
		a, err := Deal(3, 5, rand.New(rand.NewSource(42)))
		require.NoError(t, err)
		b, err := Deal(3, 5, rand.New(rand.NewSource(42)))
		require.NoError(t, err)
		require.Equal(t, a, b)
	})

	t.Run("refusing to deal more cards than the deck holds", func(t *testing.T) {
		_, err := Deal(5, 11, rand.New(rand.NewSource(1)))
		require.Error(t, err)
	})
}
