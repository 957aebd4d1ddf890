package searcher

import (
	"math"

	"github.com/kozlovskia/Draft-Simulator/game"
)

type uct struct {
	c   float64
	lnN float64
}

// newUCT prepares the UCB1 formula for a tree whose root has been simulated n times.
func newUCT(c float64, n int) *uct {
	if n <= 0 {
		game.Invariant("cannot compute UCT: %d tree simulations", n)
	}
	return &uct{c: c, lnN: math.Log(float64(n))}
}

func (u uct) evaluate(wins, visits, simulations int) float64 {
	if visits == 0 {
		game.Invariant("cannot compute UCT: 0 visits")
	}
	if simulations == 0 {
		game.Invariant("cannot compute UCT: 0 simulations")
	}
	// UCT = wins/visits + c*sqrt(ln(N)/simulations)
	return float64(wins)/float64(visits) + u.c*math.Sqrt(u.lnN/float64(simulations))
}
