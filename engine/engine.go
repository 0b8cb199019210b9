package engine

import (
	"context"

	"isolation/experiments/metrics"
)

// MaxMoves bounds a game. Knight's isolation cannot run past the number of
// cells, so hitting it means a harness bug.
const MaxMoves = 200

type Engine interface {
	// Run plays a game till a player cannot move or a max number of moves is reached
	Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error)
}
