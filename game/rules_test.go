package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func trickOf(cards ...string) Trick {
	trick := NewTrick(len(cards))
	for seat, s := range cards {
		if s == "" {
			continue
		}
		c, err := ParseCard(s)
		if err != nil {
			panic(err)
		}
		trick[seat] = Slot{Card: c, Filled: true}
	}
	return trick
}

func TestTrickWinner(t *testing.T) {
	t.Run("higher trump beats the trump lead", func(t *testing.T) {
		trick := trickOf("10S", "AH", "2C", "KS")
		require.Equal(t, 3, TrickWinner(trick, 0))
	})

	t.Run("any trump beats a non-trump ace", func(t *testing.T) {
		trick := trickOf("AH", "2S", "KH", "QH")
		require.Equal(t, 1, TrickWinner(trick, 0))
	})

	t.Run("off-suit cards never win", func(t *testing.T) {
		trick := trickOf("5H", "AC", "6H", "KD")
		require.Equal(t, 2, TrickWinner(trick, 0))
	})

	t.Run("resolving relative to the leader's seat", func(t *testing.T) {
		// Seat 2 leads 3H, seat 3 plays AH, seat 0 KH, seat 1 discards 9C
		trick := trickOf("KH", "9C", "3H", "AH")
		require.Equal(t, 3, TrickWinner(trick, 2))

		// Same cards led by seat 1: clubs lead, no club beats 9C
		require.Equal(t, 1, TrickWinner(trick, 1))
	})

	t.Run("panicking on an incomplete trick", func(t *testing.T) {
		require.Panics(t, func() {
			TrickWinner(trickOf("5H", "", "6H"), 0)
		})
	})
}

func TestLegalCards(t *testing.T) {
	t.Run("leading before trump is broken excludes trump", func(t *testing.T) {
		hand := MustParseCards("2S AS 3H 9D")
		got := LegalCards(hand, NewTrick(4), 0, false)
		require.Equal(t, MustParseCards("3H 9D"), got)
	})

	t.Run("leading with only trump allows trump", func(t *testing.T) {
		hand := MustParseCards("2S AS")
		got := LegalCards(hand, NewTrick(4), 0, false)
		require.Equal(t, hand, got)
	})

	t.Run("leading after trump is broken allows trump", func(t *testing.T) {
		hand := MustParseCards("2S AS 3H")
		got := LegalCards(hand, NewTrick(4), 0, true)
		require.Equal(t, hand, got)
	})

	t.Run("following must match the lead suit", func(t *testing.T) {
		hand := MustParseCards("2H 3S KH 4C")
		trick := trickOf("", "", "5H", "")
		got := LegalCards(hand, trick, 3, false)
		require.Equal(t, MustParseCards("2H KH"), got)
	})

	t.Run("finding the lead suit by walking back from the current seat", func(t *testing.T) {
		// Seat 3 led 5D, seat 0 followed with 9H, seat 1 is to act
		hand := MustParseCards("2H 3D 4C")
		trick := trickOf("9H", "", "", "5D")
		got := LegalCards(hand, trick, 1, false)
		require.Equal(t, MustParseCards("3D"), got)
	})

	t.Run("following when void allows any card including trump", func(t *testing.T) {
		hand := MustParseCards("3S 4C")
		trick := trickOf("5H", "", "", "")
		got := LegalCards(hand, trick, 1, false)
		require.Equal(t, hand, got)
	})

	t.Run("returning nothing for an empty pool", func(t *testing.T) {
		require.Empty(t, LegalCards(nil, NewTrick(4), 0, false))
	})

	t.Run("never aliasing the pool", func(t *testing.T) {
		hand := MustParseCards("3S 4C")
		got := LegalCards(hand, NewTrick(2), 0, true)
		got[0] = Card{Rank: Ace, Suit: Hearts}
		require.Equal(t, MustParseCards("3S 4C"), hand)
	})
}
