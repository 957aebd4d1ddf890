package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Episodes    int
	Exploration float64
	Duration    time.Duration
	Iterations  int // Completed selection-expansion-rollout-backup cycles
	Rollouts    int // Random playouts to a complete draft
	TreeSize    int // Nodes in the tree when the search completed
}

type MoveMetric struct {
	Step     int    // Pick index in the draft
	Side     string // Picking side
	Champion string
	SearchMetric
}

type GameMetric struct {
	StartingLength int // Picks already made when the game started
	Draft          []string
	Score          float64 // Composite score of the tracked side
	Advantage      bool    // Whether the tracked side outscored its opponent
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(episodes int, exploration float64)
	AddEpisode()
	AddRollout()
	SetTreeSize(nodes int)
	Complete() SearchMetric
}

type collector struct {
	episodes    int
	exploration float64
	startTime   time.Time
	iterations  atomic.Int32
	rollouts    atomic.Int32
	treeSize    atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(episodes int, exploration float64) {
	m.startTime = time.Now()
	m.episodes = episodes
	m.exploration = exploration
	m.iterations.Store(0)
	m.rollouts.Store(0)
	m.treeSize.Store(0)
}

func (m *collector) AddEpisode() {
	m.iterations.Add(1)
}

func (m *collector) AddRollout() {
	m.rollouts.Add(1)
}

func (m *collector) SetTreeSize(nodes int) {
	m.treeSize.Store(int32(nodes))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Episodes:    m.episodes,
		Exploration: m.exploration,
		Duration:    time.Since(m.startTime),
		Iterations:  int(m.iterations.Load()),
		Rollouts:    int(m.rollouts.Load()),
		TreeSize:    int(m.treeSize.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(episodes int, exploration float64) {}
func (m *dummyCollector) AddEpisode()                             {}
func (m *dummyCollector) AddRollout()                             {}
func (m *dummyCollector) SetTreeSize(nodes int)                   {}
func (m *dummyCollector) Complete() SearchMetric                  { return SearchMetric{} }
