package metrics

import (
	"sync/atomic"
	"time"

	"github.com/coder/quartz"
)

type SearchMetric struct {
	Strategy     string
	Duration     time.Duration
	Episodes     int // MCTS iterations or sampled playouts
	FullPlayouts int // Playouts that reached the end of the round
	Nodes        int // States generated by the search
}

type MoveMetric struct {
	Step   int
	Round  int
	Seat   int
	Action string
	SearchMetric
}

type GameMetric struct {
	Seats      int
	Rounds     int
	Winner     int // Seat with the highest total score
	Scores     []int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

type Collector interface {
	Start(strategy string)
	AddEpisode()
	AddFullPlayout()
	AddNode()
	Complete() SearchMetric
}

type collector struct {
	clock        quartz.Clock
	strategy     string
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
	nodes        atomic.Int32
}

func NewCollector(clock quartz.Clock) Collector {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &collector{clock: clock}
}

func (m *collector) Start(strategy string) {
	m.strategy = strategy
	m.startTime = m.clock.Now()
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.nodes.Store(0)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Strategy:     m.strategy,
		Duration:     m.clock.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		Nodes:        int(m.nodes.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(strategy string)  {}
func (m *dummyCollector) AddEpisode()            {}
func (m *dummyCollector) AddFullPlayout()        {}
func (m *dummyCollector) AddNode()               {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
