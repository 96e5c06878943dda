package engine

import (
	"context"
	"errors"

	"spades/experiments/metrics"
)

// ErrIllegalAction is returned when an agent answers with a bid or card the rules forbid.
var ErrIllegalAction = errors.New("illegal action")

type Engine interface {
	// Run plays every round of a game and returns its metrics
	Run(ctx context.Context) (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
