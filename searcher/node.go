package searcher

import (
	"fmt"

	"github.com/kozlovskia/Draft-Simulator/game"
)

const noParent = -1

// node is one partial draft in the arena. It stores only its own pick; the
// full draft is the root draft followed by the picks along the parent chain.
type node struct {
	parent      int
	pick        game.Champion
	length      int // Draft length this node corresponds to
	available   game.Availability
	results     [2]int // Indexed by game.Outcome
	visits      int
	simulations int // Visits including in-flight rollouts
	first       int // Children are contiguous in the arena: [first, first+count)
	count       int
	expanded    bool
}

// Tree is the search tree of one decision. It owns every node; discard the
// whole tree once a choice has been extracted.
type Tree struct {
	side  game.Side
	draft game.Draft
	nodes []node
}

// NewTree validates the current draft and builds the root for the side the
// search optimizes for.
func NewTree(rules *game.Rules, draft game.Draft, side game.Side) (*Tree, error) {
	if !side.Valid() {
		return nil, fmt.Errorf("invalid perspective side %d", int(side))
	}
	available, err := rules.Replay(draft)
	if err != nil {
		return nil, err
	}
	t := &Tree{
		side:  side,
		draft: draft.Clone(),
		nodes: make([]node, 0, 64),
	}
	t.nodes = append(t.nodes, node{
		parent:    noParent,
		length:    len(draft),
		available: available,
	})
	return t, nil
}

func (t *Tree) Side() game.Side {
	return t.side
}

// Draft returns the draft the root was built from.
func (t *Tree) Draft() game.Draft {
	return t.draft.Clone()
}

func (t *Tree) Size() int {
	return len(t.nodes)
}

// draftOf rebuilds a node's draft from the root draft and the parent chain.
func (t *Tree) draftOf(id int) game.Draft {
	n := t.nodes[id]
	draft := make(game.Draft, n.length, game.DraftSize)
	copy(draft, t.draft)
	for i := n.length - 1; id != 0; i-- {
		draft[i] = t.nodes[id].pick
		id = t.nodes[id].parent
	}
	return draft
}

func (t *Tree) children(id int) []int {
	n := t.nodes[id]
	out := make([]int, n.count)
	for k := range out {
		out[k] = n.first + k
	}
	return out
}

// expand adds one child per champion the node's picking side may take, in
// roster order, and returns their ids.
func (t *Tree) expand(id int, rules *game.Rules) []int {
	parent := t.nodes[id]
	if parent.expanded {
		game.Invariant("node %d expanded twice", id)
	}
	draft := t.draftOf(id)
	side := draft.Next()

	first := len(t.nodes)
	for _, champion := range parent.available.Champions(side) {
		available, err := rules.Apply(parent.available, draft, champion)
		if err != nil {
			game.Invariant("expanding %v with %s: %v", draft, champion, err)
		}
		t.nodes = append(t.nodes, node{
			parent:    id,
			pick:      champion,
			length:    parent.length + 1,
			available: available,
		})
	}

	n := &t.nodes[id]
	n.first = first
	n.count = len(t.nodes) - first
	n.expanded = true
	if n.count == 0 {
		game.Invariant("%s side has no legal pick in %v", side, draft)
	}
	return t.children(id)
}

// preferredChild picks the child with the highest UCB1 score. Exact ties are
// broken uniformly at random.
func (t *Tree) preferredChild(id int, c float64, rng Rand) int {
	policy := newUCT(c, t.nodes[0].simulations)
	n := t.nodes[id]

	best := -1.0
	var tied []int
	for child := n.first; child < n.first+n.count; child++ {
		cn := &t.nodes[child]
		score := policy.evaluate(cn.results[game.Win], cn.visits, cn.simulations)
		if len(tied) == 0 || score > best {
			best = score
			tied = append(tied[:0], child)
		} else if score == best {
			tied = append(tied, child)
		}
	}
	if len(tied) == 1 {
		return tied[0]
	}
	return tied[rng.Intn(len(tied))]
}

// backup records one rollout outcome and returns the parent id.
func (t *Tree) backup(id int, outcome game.Outcome) int {
	n := &t.nodes[id]
	n.results[outcome]++
	n.visits++
	return n.parent
}

// NodeStats is a read-only view of one node's counters.
type NodeStats struct {
	Champion    game.Champion // Pick that led to the node, empty for the root
	Wins        int
	Losses      int
	Visits      int
	Simulations int
	Expanded    bool
}

func (s NodeStats) WinRatio() float64 {
	if s.Visits == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Visits)
}

func (t *Tree) stats(id int) NodeStats {
	n := t.nodes[id]
	return NodeStats{
		Champion:    n.pick,
		Wins:        n.results[game.Win],
		Losses:      n.results[game.Loss],
		Visits:      n.visits,
		Simulations: n.simulations,
		Expanded:    n.expanded,
	}
}

func (t *Tree) Root() NodeStats {
	return t.stats(0)
}

// Children returns the root's children in creation order.
func (t *Tree) Children() []NodeStats {
	ids := t.children(0)
	out := make([]NodeStats, len(ids))
	for k, id := range ids {
		out[k] = t.stats(id)
	}
	return out
}
