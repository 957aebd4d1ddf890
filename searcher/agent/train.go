package agent

import (
	"math"

	"github.com/kozlovskia/Draft-Simulator/experiments/metrics"
	"github.com/kozlovskia/Draft-Simulator/game"
	"github.com/kozlovskia/Draft-Simulator/searcher"
)

// Float64er draws uniform samples in [0, 1).
type Float64er interface {
	Float64() float64
}

type samplingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         Float64er
}

// NewSamplingAgent returns an agent that samples its pick from the root visit
// counts, sharpened or flattened by temperature. Used to diversify sparring drafts.
func NewSamplingAgent(mcts *searcher.MCTS, temperature float64, rng Float64er) Agent {
	if temperature <= 0 {
		panic("temperature must be positive")
	}
	return samplingAgent{mcts: mcts, temperature: temperature, rng: rng}
}

func (a samplingAgent) FindPick(draft game.Draft, side game.Side) (game.Champion, metrics.SearchMetric, error) {
	tree, metric, err := a.mcts.Search(draft, side)
	if err != nil {
		return "", metric, err
	}
	pick, err := SampleChoice(tree, a.temperature, a.rng)
	return pick, metric, err
}

// SampleChoice draws a root child with probability proportional to visits^(1/temperature).
func SampleChoice(tree *searcher.Tree, temperature float64, rng Float64er) (game.Champion, error) {
	if temperature <= 0 {
		panic("temperature must be positive")
	}
	children := tree.Children()
	if len(children) == 0 {
		return "", searcher.ErrNoChildren
	}
	champions := make([]game.Champion, len(children))
	for i, child := range children {
		champions[i] = child.Champion
	}
	probs := adjustTemperature(champions, tree.Policy(), temperature)
	return champions[sample(probs, rng.Float64())], nil
}

// adjustTemperature turns the visit policy into probabilities over champions, in their order.
func adjustTemperature(champions []game.Champion, policy map[game.Champion]float64, temperature float64) []float64 {
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make([]float64, len(champions))
	for i, champion := range champions {
		prob := math.Pow(policy[champion], exponent)
		sum += prob
		adjusted[i] = prob
	}
	// Normalize
	for i := range adjusted {
		adjusted[i] /= sum
	}
	return adjusted
}

func sample(probs []float64, sampled float64) int {
	cumulative := 0.0
	for i, prob := range probs {
		cumulative += prob
		if sampled < cumulative {
			return i
		}
	}
	return len(probs) - 1 // Fallback in case of rounding errors
}
