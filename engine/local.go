package engine

import (
	"fmt"
	"time"

	"github.com/kozlovskia/Draft-Simulator/experiments/metrics"
	"github.com/kozlovskia/Draft-Simulator/game"
	"github.com/kozlovskia/Draft-Simulator/searcher/agent"

	"github.com/rs/zerolog/log"
)

// Local runs a draft between two in-process agents.
type Local struct {
	rules  *game.Rules
	oracle *game.Oracle
	agents map[game.Side]agent.Agent
	draft  game.Draft
}

func NewLocalEngine(rules *game.Rules, oracle *game.Oracle, blue, red agent.Agent, initial game.Draft) (*Local, error) {
	if blue == nil || red == nil {
		panic("both sides need an agent")
	}
	if err := rules.Validate(initial); err != nil {
		return nil, err
	}
	return &Local{
		rules:  rules,
		oracle: oracle,
		agents: map[game.Side]agent.Agent{game.Blue: blue, game.Red: red},
		draft:  initial.Clone(),
	}, nil
}

// Draft returns the picks made so far.
func (e *Local) Draft() game.Draft {
	return e.draft.Clone()
}

// Run asks the picking side's agent for a pick until the draft is complete.
// Every pick is checked against the legality model before it is played.
func (e *Local) Run(tracked game.Side) (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingLength: len(e.draft),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	available, err := e.rules.Replay(e.draft)
	if err != nil {
		return gameMetric, nil, err
	}

	for !e.draft.Terminal() {
		step := len(e.draft)
		side := e.draft.Next()

		pick, searchMetric, err := e.agents[side].FindPick(e.draft.Clone(), side)
		if err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("%s side at pick %d: %w", side, step, err)
		}
		next, err := e.rules.Apply(available, e.draft, pick)
		if err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("%s side at pick %d: %w", side, step, err)
		}
		log.Debug().Msgf("pick %d: %s side chose %s", step, side, pick)

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Side:         side.String(),
			Champion:     string(pick),
			SearchMetric: searchMetric,
		})
		available = next
		e.draft = append(e.draft, pick)
	}

	allies, opponents := e.draft.Sides(tracked)
	score, err := e.oracle.CompositeScore(allies, opponents)
	if err != nil {
		return gameMetric, moveMetrics, err
	}
	advantage, err := e.oracle.Advantage(allies, opponents)
	if err != nil {
		return gameMetric, moveMetrics, err
	}

	gameMetric.Draft = make([]string, len(e.draft))
	for i, c := range e.draft {
		gameMetric.Draft[i] = string(c)
	}
	gameMetric.Score = score
	gameMetric.Advantage = advantage
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	return gameMetric, moveMetrics, nil
}
