package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUCT(t *testing.T) {
	t.Run("panics with zero tree simulations", func(t *testing.T) {
		require.Panics(t, func() {
			newUCT(DefaultExploration, 0)
		}, "Should panic when N is 0")
	})
}

func TestUCTEvaluate(t *testing.T) {
	t.Run("computing UCB1 value", func(t *testing.T) {
		policy := newUCT(math.Sqrt2, 100)
		got := policy.evaluate(5, 10, 12)

		expected := 5.0/10 + math.Sqrt2*math.Sqrt(math.Log(100)/12.0)
		require.InDelta(t, expected, got, 1e-12,
			"Should compute wins/visits + c*sqrt(ln(N)/simulations)")
	})

	t.Run("panics with zero child visits", func(t *testing.T) {
		policy := newUCT(DefaultExploration, 100)

		require.Panics(t, func() {
			policy.evaluate(0, 0, 1)
		}, "Should panic when visits is 0")
	})

	t.Run("panics with zero child simulations", func(t *testing.T) {
		policy := newUCT(DefaultExploration, 100)

		require.Panics(t, func() {
			policy.evaluate(0, 1, 0)
		}, "Should panic when simulations is 0")
	})

	t.Run("exploration term increases with tree simulations", func(t *testing.T) {
		score1 := newUCT(DefaultExploration, 100).evaluate(5, 10, 10)
		score2 := newUCT(DefaultExploration, 1000).evaluate(5, 10, 10)

		require.Greater(t, score2, score1,
			"More tree simulations should increase exploration term")
	})

	t.Run("exploration term decreases with child simulations", func(t *testing.T) {
		policy := newUCT(DefaultExploration, 100)

		require.Greater(t, policy.evaluate(5, 10, 10), policy.evaluate(5, 10, 20),
			"More child simulations should decrease exploration term")
	})

	t.Run("pure exploitation without exploration constant", func(t *testing.T) {
		policy := newUCT(0, 100)

		require.Equal(t, 0.25, policy.evaluate(1, 4, 9))
	})
}
