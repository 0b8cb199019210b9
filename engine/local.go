package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"isolation/agent"
	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/utils"
)

type Option func(e *Local)

// Local plays two in-process agents against each other.
type Local struct {
	agents   [2]agent.Agent
	budget   time.Duration
	maxMoves int
	state    game.Isolation
}

// WithStart begins the game from state instead of the empty board.
func WithStart(state game.Isolation) Option {
	return func(e *Local) {
		e.state = state
	}
}

func WithMaxMoves(n int) Option {
	return func(e *Local) {
		if n > 0 {
			e.maxMoves = n
		}
	}
}

// NewLocal seats agents[0] as the first player. Each move gets budget to
// complete; a non-positive budget means no per-move deadline.
func NewLocal(agents [2]agent.Agent, budget time.Duration, options ...Option) *Local {
	for i, a := range agents {
		if a == nil {
			panic(fmt.Sprintf("agent %d is nil", i))
		}
	}
	e := &Local{
		agents:   agents,
		budget:   budget,
		maxMoves: MaxMoves,
		state:    game.New(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *Local) State() game.Isolation {
	return e.state
}

// Run executes the game loop until the mover has no liberties, the move
// limit is reached or ctx is done.
func (e *Local) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.state.Player(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Msgf("player %d is starting", e.state.Player())

	for step := 1; !e.state.Terminal() && step <= e.maxMoves; step++ {
		if err := ctx.Err(); err != nil {
			return e.finish(gameMetric, len(moveMetrics)), moveMetrics, fmt.Errorf("game interrupted at step %d: %w", step, err)
		}

		player := e.state.Player()
		action, searchMetric := e.move(ctx, player)

		if utils.FindIndex(e.state.Actions(), action) < 0 {
			log.Warn().Msgf("player %d returned illegal action %v at step %d, playing randomly", player, action, step)
			action = agent.RandomAction(e.state)
			gameMetric.Fallbacks++
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       player,
			Action:       action,
			SearchMetric: searchMetric,
		})
		e.state = e.state.Play(action)
		log.Debug().Int("step", step).Stringer("action", action).Uint64("hash", uint64(e.state.Hash())).Msg("move played")
	}

	gameMetric = e.finish(gameMetric, len(moveMetrics))
	if gameMetric.Decided {
		log.Debug().Msgf("player %d won after %d moves", gameMetric.Winner, gameMetric.TotalMoves)
	} else {
		log.Warn().Msgf("stopped after %d moves without a winner", gameMetric.TotalMoves)
	}
	return gameMetric, moveMetrics, nil
}

func (e *Local) move(ctx context.Context, player game.Player) (game.Action, metrics.SearchMetric) {
	if e.budget <= 0 {
		return e.agents[player].FindMove(ctx, e.state)
	}
	moveCtx, cancel := context.WithTimeout(ctx, e.budget)
	defer cancel()
	return e.agents[player].FindMove(moveCtx, e.state)
}

func (e *Local) finish(gameMetric metrics.GameMetric, moves int) metrics.GameMetric {
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = moves
	if e.state.Terminal() {
		gameMetric.Decided = true
		gameMetric.Winner = e.state.Player().Opponent()
	}
	return gameMetric
}
