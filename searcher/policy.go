package searcher

import "math"

type ucb1 struct {
	c    float64
	logN float64
}

// newUCB1 prepares the policy for the children of a node visited parentVisits times.
func newUCB1(c float64, parentVisits int) ucb1 {
	return ucb1{c: c, logN: math.Log(float64(parentVisits) + 1)}
}

func (u ucb1) evaluate(wins float64, visits int) float64 {
	// Prioritize unexplored nodes
	if visits == 0 {
		return math.Inf(1)
	}

	// UCB1 = w/n + c*sqrt(ln(N+1)/n)
	n := float64(visits)
	return wins/n + u.c*math.Sqrt(u.logN/n)
}
