package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIndex(t *testing.T) {
	require.Equal(t, 1, FindIndex([]string{"a", "b", "c"}, "b"))
	require.Equal(t, -1, FindIndex([]string{"a"}, "z"), "Missing items should return -1")
}

func TestArgMax(t *testing.T) {
	t.Run("keeping the first of equal maxima", func(t *testing.T) {
		scores := []float64{1, 3, 3, 2}
		got := ArgMax(len(scores), func(i int) float64 { return scores[i] })
		require.Equal(t, 1, got)
	})

	t.Run("handling negative scores", func(t *testing.T) {
		scores := []int{-5, -2, -9}
		got := ArgMax(len(scores), func(i int) int { return scores[i] })
		require.Equal(t, 1, got)
	})

	t.Run("returning -1 for no candidates", func(t *testing.T) {
		require.Equal(t, -1, ArgMax(0, func(i int) int { return i }))
	})
}
