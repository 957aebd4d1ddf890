package agent

import (
	"github.com/kozlovskia/Draft-Simulator/experiments/metrics"
	"github.com/kozlovskia/Draft-Simulator/game"
)

type Agent interface {
	// FindPick returns the pick for side at the current draft and search metrics (if collected)
	FindPick(draft game.Draft, side game.Side) (game.Champion, metrics.SearchMetric, error)
}
