package metrics

import (
	"sync/atomic"
	"time"

	"isolation/game"
)

type SearchMetric struct {
	Engine       string
	Duration     time.Duration
	Nodes        int
	Episodes     int
	FullPlayouts int
	Depth        int // Last fully completed depth (alpha-beta only)
	BookHit      bool
}

type MoveMetric struct {
	Step   int
	Player game.Player
	Action game.Action
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Player
	Winner         game.Player
	Decided        bool // False if the game hit the move limit
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	Fallbacks      int // Moves replaced because the agent returned an illegal action
}

type Collector interface {
	Start(engine string)
	AddNode()
	AddEpisode()
	AddFullPlayout()
	SetDepth(depth int)
	Complete() SearchMetric
}

type collector struct {
	engine       string
	startTime    time.Time
	nodes        atomic.Int64
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
	depth        atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(engine string) {
	m.engine = engine
	m.startTime = time.Now()
	m.nodes.Store(0)
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.depth.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) SetDepth(depth int) {
	m.depth.Store(int32(depth))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Engine:       m.engine,
		Duration:     time.Since(m.startTime),
		Nodes:        int(m.nodes.Load()),
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		Depth:        int(m.depth.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(engine string)    {}
func (m *dummyCollector) AddNode()               {}
func (m *dummyCollector) AddEpisode()            {}
func (m *dummyCollector) AddFullPlayout()        {}
func (m *dummyCollector) SetDepth(depth int)     {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
