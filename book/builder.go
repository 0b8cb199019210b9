package book

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"isolation/game"
	"isolation/searcher"
)

const (
	DefaultRounds      = 200
	DefaultDepth       = 4
	DefaultSearchDepth = searcher.DefaultDepth
)

type Option func(b *Builder)

// Builder grows an opening book from self-play guided by alpha-beta search.
type Builder struct {
	rounds         int
	depth          int
	searchDepth    int
	randomOpenings float64
	rng            *rand.Rand
	table          Table
}

// WithRounds sets the number of self-play rounds. A negative count plays none.
func WithRounds(rounds int) Option {
	return func(b *Builder) {
		b.rounds = max(rounds, 0)
	}
}

// WithDepth sets how many plies from the empty board each round records. At
// zero or below a round only runs a rollout and records nothing.
func WithDepth(depth int) Option {
	return func(b *Builder) {
		b.depth = max(depth, 0)
	}
}

// WithSearchDepth sets the alpha-beta depth used to pick each recorded action.
func WithSearchDepth(depth int) Option {
	return func(b *Builder) {
		b.searchDepth = depth
	}
}

// WithRandomOpenings replaces the searched action by a uniformly random one
// with the given probability, so rounds do not all follow the same line.
func WithRandomOpenings(probability float64) Option {
	return func(b *Builder) {
		if probability >= 0 && probability <= 1 {
			b.randomOpenings = probability
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(b *Builder) {
		b.rng = rand.New(rand.NewSource(seed))
	}
}

func NewBuilder(options ...Option) *Builder {
	b := &Builder{
		rounds:      DefaultRounds,
		depth:       DefaultDepth,
		searchDepth: DefaultSearchDepth,
		rng:         rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		table:       make(Table),
	}
	for _, option := range options {
		option(b)
	}
	return b
}

// Table exposes the accumulated counters.
func (b *Builder) Table() Table {
	return b.table
}

// Build plays the configured number of rounds and reduces the table to one
// action per state. If ctx is done between rounds, the book built so far is
// returned along with ctx's error.
func (b *Builder) Build(ctx context.Context) (*Book, error) {
	start := time.Now()
	ab := searcher.NewAlphaBeta(searcher.WithDepth(b.searchDepth))

	for round := 0; round < b.rounds; round++ {
		if err := ctx.Err(); err != nil {
			log.Warn().Int("round", round).Int("rounds", b.rounds).Msg("opening book build interrupted")
			return New(Reduce(b.table), b.depth), err
		}
		reward := b.buildTree(ab, game.New(), b.depth)
		log.Debug().Int("round", round+1).Float64("reward", reward).Int("entries", len(b.table)).Msg("completed round")
	}

	book := New(Reduce(b.table), b.depth)
	log.Info().
		Int("rounds", b.rounds).
		Int("entries", book.Len()).
		Dur("duration", time.Since(start)).
		Msg("opening book built")
	return book, nil
}

// buildTree plays one line to depth plies, records the reward of every
// chosen action and returns the reward from the perspective of the player to
// move in state.
func (b *Builder) buildTree(ab *searcher.AlphaBeta, state game.Isolation, depth int) float64 {
	if depth <= 0 || state.Terminal() {
		return -searcher.Rollout(state, b.rng)
	}
	action := b.choose(ab, state)
	reward := -b.buildTree(ab, state.Play(action), depth-1)
	b.table.Record(state, action, reward)
	return reward
}

func (b *Builder) choose(ab *searcher.AlphaBeta, state game.Isolation) game.Action {
	if b.randomOpenings > 0 && b.rng.Float64() < b.randomOpenings {
		actions := state.Actions()
		return actions[b.rng.Intn(len(actions))]
	}
	action, ok := ab.Decide(state)
	if !ok {
		panic("search on a non-terminal state returned no action")
	}
	return action
}
