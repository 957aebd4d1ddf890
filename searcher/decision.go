package searcher

import (
	"errors"

	"github.com/kozlovskia/Draft-Simulator/game"
)

var ErrNoChildren = errors.New("root has no children to choose from")

// Choice is the recommended next pick.
type Choice struct {
	Champion game.Champion
	WinRatio float64
	Visits   int
}

// MakeChoice picks the most visited root child, breaking ties by win ratio and
// then by creation order (which is roster order, so the lowest champion id).
func MakeChoice(tree *Tree) (Choice, error) {
	root := tree.nodes[0]
	if root.count == 0 {
		return Choice{}, ErrNoChildren
	}

	best := -1
	var bestRatio float64
	for id := root.first; id < root.first+root.count; id++ {
		n := tree.nodes[id]
		if n.visits == 0 {
			game.Invariant("root child %s has 0 visits", n.pick)
		}
		ratio := float64(n.results[game.Win]) / float64(n.visits)
		if best == -1 || n.visits > tree.nodes[best].visits ||
			(n.visits == tree.nodes[best].visits && ratio > bestRatio) {
			best = id
			bestRatio = ratio
		}
	}

	return Choice{
		Champion: tree.nodes[best].pick,
		WinRatio: bestRatio,
		Visits:   tree.nodes[best].visits,
	}, nil
}

// Policy maps every root child's pick to its visit count.
func (t *Tree) Policy() map[game.Champion]float64 {
	root := t.nodes[0]
	policy := make(map[game.Champion]float64, root.count)
	for id := root.first; id < root.first+root.count; id++ {
		policy[t.nodes[id].pick] = float64(t.nodes[id].visits)
	}
	return policy
}
