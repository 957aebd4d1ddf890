package engine

import (
	"github.com/kozlovskia/Draft-Simulator/experiments/metrics"
	"github.com/kozlovskia/Draft-Simulator/game"
)

type Engine interface {
	// Run plays the draft to completion and scores it for the tracked side
	Run(tracked game.Side) (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
