package searcher

import (
	"context"
	"math"

	"github.com/rs/zerolog/log"

	"isolation/experiments/metrics"
	"isolation/game"
)

const DefaultDepth = 3

type AlphaBetaOption func(ab *AlphaBeta)

// AlphaBeta is a depth-limited minimax searcher with alpha-beta pruning.
// Values are always from the perspective of the player passed to Search.
type AlphaBeta struct {
	depth    int
	evaluate game.Evaluate
	metrics  metrics.Collector
}

// WithDepth sets the depth Decide searches to. A non-positive depth scores the
// root's children with the evaluation function directly.
func WithDepth(depth int) AlphaBetaOption {
	return func(ab *AlphaBeta) {
		ab.depth = depth
	}
}

func WithEvaluationFn(evaluate game.Evaluate) AlphaBetaOption {
	return func(ab *AlphaBeta) {
		if evaluate != nil {
			ab.evaluate = evaluate
		}
	}
}

func WithSearchMetrics() AlphaBetaOption {
	return func(ab *AlphaBeta) {
		ab.metrics = metrics.NewCollector()
	}
}

func NewAlphaBeta(options ...AlphaBetaOption) *AlphaBeta {
	ab := &AlphaBeta{
		depth:    DefaultDepth,
		evaluate: game.EvaluateMobility,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(ab)
	}
	return ab
}

func (ab *AlphaBeta) Depth() int {
	return ab.depth
}

// Decide searches for the mover of state at the depth set with WithDepth.
func (ab *AlphaBeta) Decide(state game.State) (game.Action, bool) {
	return ab.Search(state, state.Player(), ab.depth)
}

// Search returns the best action for player at the given depth. ok is false
// when the state has no legal actions.
func (ab *AlphaBeta) Search(state game.State, player game.Player, depth int) (game.Action, bool) {
	ab.metrics.Start("alphabeta")
	action, _, ok := ab.root(context.Background(), state, player, depth)
	return action, ok
}

// SearchValue is Search that also reports the minimax value of the root.
func (ab *AlphaBeta) SearchValue(state game.State, player game.Player, depth int) (game.Action, float64, bool) {
	ab.metrics.Start("alphabeta")
	return ab.root(context.Background(), state, player, depth)
}

// IterativeDeepening searches depth 1, 2, ... maxDepth and returns the action
// of the deepest fully completed depth together with that depth. ctx is only
// checked between root actions; a depth cut short is discarded. Depth 1 always
// runs to completion so a legal action is available for any non-terminal state.
func (ab *AlphaBeta) IterativeDeepening(ctx context.Context, state game.State, player game.Player, maxDepth int) (game.Action, int, bool) {
	ab.metrics.Start("alphabeta")
	if len(state.Actions()) == 0 {
		return 0, 0, false
	}
	maxDepth = max(maxDepth, 1)

	best, _, _ := ab.root(context.Background(), state, player, 1)
	completed := 1
	ab.metrics.SetDepth(completed)
	for depth := 2; depth <= maxDepth; depth++ {
		action, value, ok := ab.root(ctx, state, player, depth)
		if !ok {
			log.Debug().Int("depth", depth).Msg("alphabeta depth interrupted")
			break
		}
		best = action
		completed = depth
		ab.metrics.SetDepth(completed)
		log.Debug().Int("depth", depth).Float64("value", value).Stringer("action", action).Msg("alphabeta depth complete")
		// A proven result cannot change at greater depth
		if math.IsInf(value, 0) {
			break
		}
	}
	return best, completed, true
}

// Metrics reports the counters of the most recent search.
func (ab *AlphaBeta) Metrics() metrics.SearchMetric {
	return ab.metrics.Complete()
}

// root evaluates every root action with minValue. Ties go to the later
// action. ok is false if there are no actions or ctx was done before all of
// them were evaluated.
func (ab *AlphaBeta) root(ctx context.Context, state game.State, player game.Player, depth int) (game.Action, float64, bool) {
	alpha := math.Inf(-1)
	beta := math.Inf(1)
	bestScore := math.Inf(-1)
	var bestMove game.Action
	found := false
	for _, action := range state.Actions() {
		if ctx.Err() != nil {
			return bestMove, bestScore, false
		}
		value := ab.minValue(state.Result(action), player, alpha, beta, depth-1)
		alpha = math.Max(alpha, value)
		if value >= bestScore {
			bestScore = value
			bestMove = action
			found = true
		}
	}
	return bestMove, bestScore, found
}

func (ab *AlphaBeta) maxValue(state game.State, player game.Player, alpha, beta float64, depth int) float64 {
	ab.metrics.AddNode()
	if state.Terminal() {
		return state.Utility(player)
	}
	if depth <= 0 {
		return ab.evaluate(state, player)
	}
	value := math.Inf(-1)
	for _, action := range state.Actions() {
		value = math.Max(value, ab.minValue(state.Result(action), player, alpha, beta, depth-1))
		if value >= beta {
			return value
		}
		alpha = math.Max(alpha, value)
	}
	return value
}

func (ab *AlphaBeta) minValue(state game.State, player game.Player, alpha, beta float64, depth int) float64 {
	ab.metrics.AddNode()
	if state.Terminal() {
		return state.Utility(player)
	}
	if depth <= 0 {
		return ab.evaluate(state, player)
	}
	value := math.Inf(1)
	for _, action := range state.Actions() {
		value = math.Min(value, ab.maxValue(state.Result(action), player, alpha, beta, depth-1))
		if value <= alpha {
			return value
		}
		beta = math.Min(beta, value)
	}
	return value
}
