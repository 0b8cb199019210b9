package searcher

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"isolation/experiments/metrics"
	"isolation/game"
)

type Option func(mcts *MCTS)

// MCTS is a UCT searcher. Each call to Search builds a fresh tree; nothing
// is shared between decisions except the random source.
type MCTS struct {
	iterations  int
	duration    time.Duration
	exploration float64
	rng         *rand.Rand
	metrics     metrics.Collector
}

// WithIterations bounds the number of episodes per decision. A non-positive
// budget degrades to a single episode.
func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		m.iterations = max(iterations, 1)
	}
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithExploration(factor float64) Option {
	return func(m *MCTS) {
		if factor >= 0 {
			m.exploration = factor
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

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		exploration: Exploration,
		rng:         rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.iterations <= 0 && m.duration <= 0 {
		m.iterations = DefaultIterations
	}
	return m
}

// Search grows a tree from state and returns the root child with the best
// UCT score. The loop stops at the iteration budget, the duration, or when
// ctx is done, whichever comes first, but always between episodes and never
// before the first one. ok is false for a terminal state.
func (m *MCTS) Search(ctx context.Context, state game.State) (game.Action, metrics.SearchMetric, bool) {
	if state.Terminal() {
		return 0, metrics.SearchMetric{}, false
	}

	m.metrics.Start("mcts")
	t := newTree(state)
	var deadline time.Time
	if m.duration > 0 {
		deadline = time.Now().Add(m.duration)
	}

	episodes := 0
	for {
		m.simulate(t)
		m.metrics.AddEpisode()
		episodes++

		if m.iterations > 0 && episodes >= m.iterations {
			break
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}
		if ctx.Err() != nil {
			break
		}
	}

	best := t.bestChild(0, m.exploration, m.rng)
	root := t.nodes[0]
	log.Debug().
		Int("episodes", episodes).
		Int("nodes", len(t.nodes)).
		Int("root_visits", root.visits).
		Stringer("action", t.nodes[best].action).
		Msg("mcts search complete")

	return t.nodes[best].action, m.metrics.Complete(), true
}

func (m *MCTS) simulate(t *tree) {
	newNode := m.selectThenExpand(t)
	reward := Rollout(t.nodes[newNode].state, m.rng)
	m.metrics.AddFullPlayout()
	t.backup(newNode, reward)
}

// selectThenExpand descends by UCT until it reaches a node with untried
// actions, expands one of them and returns the new child. A terminal node
// reached on the way is returned as is.
func (m *MCTS) selectThenExpand(t *tree) int {
	i := 0
	for !t.nodes[i].terminal {
		if t.expandable(i) {
			return t.expand(i)
		}
		i = t.bestChild(i, m.exploration, m.rng)
	}
	return i
}

// Rollout plays uniformly random actions to the end of the game. The reward
// is for the player who moved into state: LOSS if the player to move in
// state still has liberties when the game ends, WIN otherwise.
func Rollout(state game.State, rng *rand.Rand) float64 {
	mover := state.Player()
	for !state.Terminal() {
		actions := state.Actions()
		state = state.Result(actions[rng.Intn(len(actions))])
	}
	if game.HasLiberties(state, mover) {
		return LOSS
	}
	return WIN
}
