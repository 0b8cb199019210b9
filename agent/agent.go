package agent

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"isolation/book"
	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/searcher"
)

type Agent interface {
	// FindMove returns a legal action for a non-terminal state and the metrics
	// collected while searching for it
	FindMove(ctx context.Context, state game.Isolation) (game.Action, metrics.SearchMetric)
}

type alphaBetaAgent struct {
	ab       *searcher.AlphaBeta
	book     *book.Book
	maxDepth int
}

// NewAlphaBetaAgent plays from the opening book while it has an answer and
// searches with iterative deepening up to maxDepth after that. book may be nil.
func NewAlphaBetaAgent(ab *searcher.AlphaBeta, openings *book.Book, maxDepth int) Agent {
	return &alphaBetaAgent{ab: ab, book: openings, maxDepth: maxDepth}
}

func (a *alphaBetaAgent) FindMove(ctx context.Context, state game.Isolation) (game.Action, metrics.SearchMetric) {
	start := time.Now()
	if action, ok := a.book.Lookup(state); ok {
		return action, metrics.SearchMetric{Engine: "book", Duration: time.Since(start), BookHit: true}
	}

	action, depth, ok := a.ab.IterativeDeepening(ctx, state, state.Player(), a.maxDepth)
	metric := a.ab.Metrics()
	if !ok {
		log.Warn().Int("ply", state.PlyCount()).Msg("alphabeta found no action, playing randomly")
		return RandomAction(state), metric
	}
	log.Debug().Int("ply", state.PlyCount()).Int("depth", depth).Stringer("action", action).Msg("alphabeta move")
	return action, metric
}

type mctsAgent struct {
	mcts *searcher.MCTS
}

func NewMCTSAgent(mcts *searcher.MCTS) Agent {
	return &mctsAgent{mcts: mcts}
}

func (a *mctsAgent) FindMove(ctx context.Context, state game.Isolation) (game.Action, metrics.SearchMetric) {
	action, metric, ok := a.mcts.Search(ctx, state)
	if !ok {
		log.Warn().Int("ply", state.PlyCount()).Msg("mcts found no action, playing randomly")
		return RandomAction(state), metric
	}
	return action, metric
}

type randomAgent struct{}

func NewRandomAgent() Agent {
	return randomAgent{}
}

func (randomAgent) FindMove(_ context.Context, state game.Isolation) (game.Action, metrics.SearchMetric) {
	start := time.Now()
	action := RandomAction(state)
	return action, metrics.SearchMetric{Engine: "random", Duration: time.Since(start)}
}

// RandomAction picks uniformly among the legal actions. A terminal state has
// none, in which case the zero action is returned and callers must not play it.
func RandomAction(state game.Isolation) game.Action {
	actions := state.Actions()
	if len(actions) == 0 {
		return 0
	}
	return actions[frand.Intn(len(actions))]
}
