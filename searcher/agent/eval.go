package agent

import (
	"github.com/kozlovskia/Draft-Simulator/experiments/metrics"
	"github.com/kozlovskia/Draft-Simulator/game"
	"github.com/kozlovskia/Draft-Simulator/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns an agent that always plays the search's recommended pick.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindPick(draft game.Draft, side game.Side) (game.Champion, metrics.SearchMetric, error) {
	choice, metric, err := a.mcts.Simulate(draft, side)
	if err != nil {
		return "", metric, err
	}
	return choice.Champion, metric, nil
}
