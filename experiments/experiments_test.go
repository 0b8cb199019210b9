package experiments

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"isolation/agent"
	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/searcher"
)

func TestRunMatchups(t *testing.T) {
	random := metrics.AgentConfig{ID: 1, Engine: "random"}
	mcts := metrics.AgentConfig{ID: 2, Engine: "mcts", Iterations: 5}
	alphaBeta := metrics.AgentConfig{ID: 3, Engine: "alphabeta", MaxDepth: 1}

	t.Run("playing and storing every game", func(t *testing.T) {
		writer, err := metrics.NewWriter(t.TempDir(), "smoke")
		require.NoError(t, err)
		exp := Experiment{
			Name:     "smoke",
			Configs:  []metrics.AgentConfig{random, mcts, alphaBeta},
			MatchUps: [][2]metrics.AgentConfig{{random, mcts}, {alphaBeta, random}},
			Games:    4,
			Workers:  3,
			Seed:     7,
		}

		records, err := RunMatchups(context.Background(), exp, writer)
		require.NoError(t, err)
		require.Len(t, records, 8)

		for i, r := range records {
			require.Equal(t, i+1, r.ID)
			require.True(t, r.Decided)
			require.Greater(t, r.TotalMoves, 1)
		}
		require.Equal(t, []int{1, 2}, []int{records[0].Agent1, records[0].Agent2})
		require.Equal(t, []int{2, 1}, []int{records[1].Agent1, records[1].Agent2}, "Seats should alternate every game")
		require.Equal(t, 3, records[4].Agent1)

		for _, file := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
			require.FileExists(t, filepath.Join(writer.Dir(), file))
		}
	})

	t.Run("no games is an error", func(t *testing.T) {
		_, err := RunMatchups(context.Background(), Experiment{Name: "empty"}, nil)
		require.Error(t, err)
	})

	t.Run("cancelled context fails the experiment", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		exp := Experiment{Name: "cancelled", MatchUps: [][2]metrics.AgentConfig{{random, random}}, Games: 2}
		_, err := RunMatchups(ctx, exp, nil)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewAgent(t *testing.T) {
	for _, engine := range []string{"alphabeta", "mcts", "random"} {
		require.NotNil(t, NewAgent(metrics.AgentConfig{Engine: engine}, nil, 1), engine)
	}
	require.Panics(t, func() { NewAgent(metrics.AgentConfig{Engine: "oracle"}, nil, 1) })

	state := game.New().
		Play(game.Place(game.At(4, 6))).
		Play(game.Place(game.At(2, 2))).
		Play(game.NNE).
		Play(game.ENE)

	t.Run("evaluation names resolve to their heuristics", func(t *testing.T) {
		p := state.Player()
		require.Equal(t, game.EvaluateMobility(state, p), evaluation("")(state, p))
		require.Equal(t, game.EvaluateMobility(state, p), evaluation("mobility")(state, p))
		require.Equal(t, game.EvaluateLiberties(state, p), evaluation("liberties")(state, p))
		require.NotEqual(t, game.EvaluateMobility(state, p), game.EvaluateLiberties(state, p))
		require.Panics(t, func() { evaluation("material") })
	})

	t.Run("alphabeta agents search with the configured evaluation", func(t *testing.T) {
		for name, fn := range map[string]game.Evaluate{"mobility": game.EvaluateMobility, "liberties": game.EvaluateLiberties} {
			config := metrics.AgentConfig{Engine: "alphabeta", MaxDepth: 2, Evaluation: name}
			action, value, ok := newAlphaBeta(config).SearchValue(state, state.Player(), 2)
			require.True(t, ok)
			wantAction, wantValue, _ := searcher.NewAlphaBeta(searcher.WithEvaluationFn(fn)).SearchValue(state, state.Player(), 2)
			require.Equal(t, wantAction, action, name)
			require.Equal(t, wantValue, value, name)

			built := NewAgent(config, nil, 1)
			want := agent.NewAlphaBetaAgent(searcher.NewAlphaBeta(searcher.WithEvaluationFn(fn)), nil, 2)
			got, _ := built.FindMove(context.Background(), state)
			expected, _ := want.FindMove(context.Background(), state)
			require.Equal(t, expected, got, name)
		}
	})

	t.Run("unknown evaluation is rejected", func(t *testing.T) {
		require.Panics(t, func() {
			NewAgent(metrics.AgentConfig{Engine: "alphabeta", Evaluation: "material"}, nil, 1)
		})
	})
}

func TestStandard(t *testing.T) {
	configs, matchUps := Standard(6, "liberties", 200, 1, 0)
	require.Len(t, configs, 3)
	require.Len(t, matchUps, 3)
	require.True(t, configs[0].Book)
	require.Equal(t, "liberties", configs[0].Evaluation)
}
