package searcher

import (
	"time"

	"github.com/kozlovskia/Draft-Simulator/experiments/metrics"
	"github.com/kozlovskia/Draft-Simulator/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Rand is the randomness the search draws from: rollout picks and UCB1 tie-breaks.
// A *rand.Rand satisfies it. Never share one between concurrent searches.
type Rand interface {
	Intn(n int) int
}

type Option func(mcts *MCTS)

// MCTS recommends picks by searching the legal future drafts. One MCTS value
// runs one search at a time.
type MCTS struct {
	rules       *game.Rules
	oracle      *game.Oracle
	episodes    int
	exploration float64
	rng         Rand
	metrics     metrics.Collector
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

func WithRand(rng Rand) Option {
	return func(m *MCTS) {
		if rng != nil {
			m.rng = rng
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(rules *game.Rules, oracle *game.Oracle, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		rules:       rules,
		oracle:      oracle,
		episodes:    DefaultEpisodes,
		exploration: DefaultExploration,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return m
}

func (m *MCTS) Rules() *game.Rules {
	return m.rules
}

func (m *MCTS) Episodes() int {
	return m.episodes
}

func (m *MCTS) Exploration() float64 {
	return m.exploration
}

// Search builds a tree for the current draft and runs the configured number of episodes.
func (m *MCTS) Search(draft game.Draft, side game.Side) (*Tree, metrics.SearchMetric, error) {
	tree, err := NewTree(m.rules, draft, side)
	if err != nil {
		return nil, metrics.SearchMetric{}, err
	}

	m.metrics.Start(m.episodes, m.exploration)
	m.Run(tree, m.episodes)
	m.metrics.SetTreeSize(tree.Size())
	metric := m.metrics.Complete()

	log.Debug().Msgf("searched %d episodes from %v for %s side, tree size %d", m.episodes, draft, side, tree.Size())
	return tree, metric, nil
}

// Simulate searches from the current draft and returns the recommended pick.
func (m *MCTS) Simulate(draft game.Draft, side game.Side) (Choice, metrics.SearchMetric, error) {
	tree, metric, err := m.Search(draft, side)
	if err != nil {
		return Choice{}, metric, err
	}
	choice, err := MakeChoice(tree)
	return choice, metric, err
}

// Run executes exactly budget iterations on tree, mutating it in place.
func (m *MCTS) Run(tree *Tree, budget int) {
	for i := 0; i < budget; i++ {
		m.iterate(tree)
		m.metrics.AddEpisode()
	}
}

func (m *MCTS) iterate(tree *Tree) {
	leaf := selects(tree, m.exploration, m.rng)

	// A complete draft has nothing to expand, score it directly
	if tree.nodes[leaf].length == game.DraftSize {
		backup(tree, leaf, m.evaluate(tree.draftOf(leaf), tree.side))
		return
	}

	for _, child := range tree.expand(leaf, m.rules) {
		outcome := m.rollout(tree, child)
		backup(tree, child, outcome)
	}
}

// selects descends from the root through preferred children until it reaches a
// childless node, counting a simulation on every node it passes.
func selects(tree *Tree, c float64, rng Rand) int {
	id := 0
	tree.nodes[id].simulations++
	for tree.nodes[id].count > 0 {
		id = tree.preferredChild(id, c, rng)
		tree.nodes[id].simulations++
	}
	return id
}

// rollout plays uniformly random legal picks from a node until the draft is complete.
func (m *MCTS) rollout(tree *Tree, id int) game.Outcome {
	tree.nodes[id].simulations++

	draft := tree.draftOf(id)
	available := tree.nodes[id].available
	for !draft.Terminal() {
		side := draft.Next()
		n := available.Count(side)
		if n == 0 {
			game.Invariant("%s side has an empty pool in rollout at %v", side, draft)
		}
		pick := available.Nth(side, m.rng.Intn(n))
		next, err := m.rules.Apply(available, draft, pick)
		if err != nil {
			game.Invariant("rollout pick %s at %v: %v", pick, draft, err)
		}
		available = next
		draft = append(draft, pick)
	}
	m.metrics.AddRollout()

	return m.evaluate(draft, tree.side)
}

func (m *MCTS) evaluate(draft game.Draft, side game.Side) game.Outcome {
	outcome, err := m.oracle.Outcome(draft, side)
	if err != nil {
		game.Invariant("scoring %v: %v", draft, err)
	}
	return outcome
}

func backup(tree *Tree, id int, outcome game.Outcome) {
	for id != noParent {
		id = tree.backup(id, outcome)
	}
}
