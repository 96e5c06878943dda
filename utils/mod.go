package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// ArgMax returns the first index in [0, n) with the highest score, or -1 when n is 0.
func ArgMax[S int | float64](n int, score func(i int) S) int {
	best := -1
	var bestScore S
	for i := 0; i < n; i++ {
		if s := score(i); best < 0 || s > bestScore {
			best, bestScore = i, s
		}
	}
	return best
}
