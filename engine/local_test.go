package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"

	"isolation/agent"
	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/searcher"
)

// illegalAgent always answers with a border cell.
type illegalAgent struct{}

func (illegalAgent) FindMove(context.Context, game.Isolation) (game.Action, metrics.SearchMetric) {
	return game.Place(game.At(0, 0)), metrics.SearchMetric{Engine: "illegal"}
}

// deadlineAgent records whether each request carried a deadline.
type deadlineAgent struct {
	deadlines []bool
}

func (a *deadlineAgent) FindMove(ctx context.Context, state game.Isolation) (game.Action, metrics.SearchMetric) {
	_, ok := ctx.Deadline()
	a.deadlines = append(a.deadlines, ok)
	return agent.RandomAction(state), metrics.SearchMetric{}
}

func TestLocalRun(t *testing.T) {
	t.Run("random agents play to a decided game", func(t *testing.T) {
		e := NewLocal([2]agent.Agent{agent.NewRandomAgent(), agent.NewRandomAgent()}, 0)
		gameMetric, moveMetrics, err := e.Run(context.Background())
		require.NoError(t, err)

		require.True(t, gameMetric.Decided)
		require.True(t, e.State().Terminal())
		require.Equal(t, e.State().Player().Opponent(), gameMetric.Winner, "The player left without moves should lose")
		require.Equal(t, game.First, gameMetric.StartingPlayer)
		require.Equal(t, len(moveMetrics), gameMetric.TotalMoves)
		require.Equal(t, 0, gameMetric.Fallbacks)
		require.LessOrEqual(t, gameMetric.TotalMoves, game.Width*game.Height)
		for i, mm := range moveMetrics {
			require.Equal(t, i+1, mm.Step)
			require.Equal(t, game.Player(i%2), mm.Player)
		}
	})

	t.Run("illegal actions are replaced", func(t *testing.T) {
		e := NewLocal([2]agent.Agent{illegalAgent{}, agent.NewRandomAgent()}, 0)
		gameMetric, moveMetrics, err := e.Run(context.Background())
		require.NoError(t, err)
		require.True(t, gameMetric.Decided)

		firstMoves := 0
		for _, mm := range moveMetrics {
			if mm.Player == game.First {
				firstMoves++
				require.NotEqual(t, game.Place(game.At(0, 0)), mm.Action)
			}
		}
		require.Equal(t, firstMoves, gameMetric.Fallbacks)
	})

	t.Run("move limit leaves the game undecided", func(t *testing.T) {
		e := NewLocal([2]agent.Agent{agent.NewRandomAgent(), agent.NewRandomAgent()}, 0, WithMaxMoves(3))
		gameMetric, moveMetrics, err := e.Run(context.Background())
		require.NoError(t, err)
		require.False(t, gameMetric.Decided)
		require.Equal(t, 3, gameMetric.TotalMoves)
		require.Len(t, moveMetrics, 3)
	})

	t.Run("every move gets its own deadline", func(t *testing.T) {
		a := &deadlineAgent{}
		e := NewLocal([2]agent.Agent{a, agent.NewRandomAgent()}, time.Second)
		_, _, err := e.Run(context.Background())
		require.NoError(t, err)
		require.NotEmpty(t, a.deadlines)
		for _, ok := range a.deadlines {
			require.True(t, ok)
		}
	})

	t.Run("starting from a given position", func(t *testing.T) {
		start := game.New().Play(game.Place(game.At(4, 6))).Play(game.Place(game.At(2, 2)))
		ab := agent.NewAlphaBetaAgent(searcher.NewAlphaBeta(), nil, 2)
		e := NewLocal([2]agent.Agent{ab, agent.NewRandomAgent()}, 50*time.Millisecond, WithStart(start))
		gameMetric, moveMetrics, err := e.Run(context.Background())
		require.NoError(t, err)
		require.True(t, gameMetric.Decided)
		require.Equal(t, 1, moveMetrics[0].Step, "Steps count moves played by the harness")
		require.Equal(t, len(moveMetrics), gameMetric.TotalMoves)
	})

	t.Run("cancelled context stops the game", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		e := NewLocal([2]agent.Agent{agent.NewRandomAgent(), agent.NewRandomAgent()}, 0)
		gameMetric, moveMetrics, err := e.Run(ctx)
		require.ErrorIs(t, err, context.Canceled)
		require.Empty(t, moveMetrics)
		require.False(t, gameMetric.Decided)
	})

	t.Run("each move logs the hash of the resulting state", func(t *testing.T) {
		var buf bytes.Buffer
		logger, level := log.Logger, zerolog.GlobalLevel()
		log.Logger = zerolog.New(&buf)
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		defer func() {
			log.Logger = logger
			zerolog.SetGlobalLevel(level)
		}()

		e := NewLocal([2]agent.Agent{agent.NewRandomAgent(), agent.NewRandomAgent()}, 0, WithMaxMoves(3))
		_, moveMetrics, err := e.Run(context.Background())
		require.NoError(t, err)

		var hashes []uint64
		dec := json.NewDecoder(&buf)
		for dec.More() {
			var entry struct {
				Message string `json:"message"`
				Hash    uint64 `json:"hash"`
			}
			require.NoError(t, dec.Decode(&entry))
			if entry.Message == "move played" {
				hashes = append(hashes, entry.Hash)
			}
		}

		state := game.New()
		require.Len(t, hashes, len(moveMetrics))
		for i, mm := range moveMetrics {
			state = state.Play(mm.Action)
			require.Equal(t, uint64(state.Hash()), hashes[i])
		}
		require.Equal(t, e.State().Hash(), state.Hash())
	})

	t.Run("nil agent panics", func(t *testing.T) {
		require.Panics(t, func() {
			NewLocal([2]agent.Agent{agent.NewRandomAgent(), nil}, 0)
		})
	})
}
