package experiments

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"isolation/agent"
	"isolation/book"
	"isolation/engine"
	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/searcher"
)

// Experiment describes a set of match ups. Every match up is played Games
// times, alternating which configuration moves first.
type Experiment struct {
	Name       string
	Configs    []metrics.AgentConfig
	MatchUps   [][2]metrics.AgentConfig
	Games      int
	MoveBudget time.Duration
	Workers    int
	Book       *book.Book // Shared read-only by every alphabeta agent that wants it
	Seed       uint64     // Zero seeds from the clock
}

type result struct {
	matchUp     int
	seats       [2]metrics.AgentConfig
	gameMetric  metrics.GameMetric
	moveMetrics []metrics.MoveMetric
}

// RunMatchups plays every game of the experiment, at most Workers at a time,
// and writes the results through writer when it is not nil. Game records are
// returned in match up order.
func RunMatchups(ctx context.Context, exp Experiment, writer *metrics.Writer) ([]metrics.GameRecord, error) {
	if exp.Games < 1 {
		return nil, fmt.Errorf("experiment %s needs at least one game per match up", exp.Name)
	}
	seed := exp.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	log.Info().Msgf("starting %s experiment with %d match ups of %d games...", exp.Name, len(exp.MatchUps), exp.Games)

	results := make([]result, len(exp.MatchUps)*exp.Games)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(exp.Workers, 1))
	for mi, matchUp := range exp.MatchUps {
		for i := 0; i < exp.Games; i++ {
			index := mi*exp.Games + i
			seats := matchUp
			if i%2 == 1 {
				seats[0], seats[1] = seats[1], seats[0]
			}
			mi, i := mi, i
			g.Go(func() error {
				agents := [2]agent.Agent{
					NewAgent(seats[0], exp.Book, seed+uint64(2*index)),
					NewAgent(seats[1], exp.Book, seed+uint64(2*index+1)),
				}
				e := engine.NewLocal(agents, exp.MoveBudget)
				gameMetric, moveMetrics, err := e.Run(gctx)
				if err != nil {
					return fmt.Errorf("match up %d game %d: %w", mi+1, i+1, err)
				}
				results[index] = result{matchUp: mi, seats: seats, gameMetric: gameMetric, moveMetrics: moveMetrics}
				winner := "none"
				if gameMetric.Decided {
					winner = fmt.Sprintf("agent %d", seats[gameMetric.Winner].ID)
				}
				log.Info().Msgf("completed match up %d of %d game %d of %d with winner: %s",
					mi+1, len(exp.MatchUps), i+1, exp.Games, winner)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	gameRecords := make([]metrics.GameRecord, 0, len(results))
	moveRecords := []metrics.MoveRecord{}
	wins := make([]map[int]int, len(exp.MatchUps))
	for i, r := range results {
		id := i + 1
		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:         id,
			Agent1:     r.seats[0].ID,
			Agent2:     r.seats[1].ID,
			GameMetric: r.gameMetric,
		})
		for _, mm := range r.moveMetrics {
			moveRecords = append(moveRecords, metrics.MoveRecord{Game: id, MoveMetric: mm})
		}
		if wins[r.matchUp] == nil {
			wins[r.matchUp] = map[int]int{}
		}
		if r.gameMetric.Decided {
			wins[r.matchUp][r.seats[r.gameMetric.Winner].ID]++
		}
	}
	for mi, matchUp := range exp.MatchUps {
		log.Info().Msgf("match up %d: agent %d won %d, agent %d won %d of %d games",
			mi+1, matchUp[0].ID, wins[mi][matchUp[0].ID], matchUp[1].ID, wins[mi][matchUp[1].ID], exp.Games)
	}
	log.Info().Msgf("completed %s experiment", exp.Name)

	if writer == nil {
		return gameRecords, nil
	}
	if err := writeResults(writer, exp.Configs, gameRecords, moveRecords); err != nil {
		return gameRecords, err
	}
	log.Info().Msgf("stored results in %s", writer.Dir())
	return gameRecords, nil
}

func writeResults(writer *metrics.Writer, configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) error {
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(games); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moves); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	return nil
}

// NewAgent builds a fresh agent for one game from its configuration.
func NewAgent(config metrics.AgentConfig, openings *book.Book, seed uint64) agent.Agent {
	switch config.Engine {
	case "alphabeta":
		if !config.Book {
			openings = nil
		}
		return agent.NewAlphaBetaAgent(newAlphaBeta(config), openings, config.MaxDepth)
	case "mcts":
		return agent.NewMCTSAgent(createMCTS(config, seed))
	case "random":
		return agent.NewRandomAgent()
	}
	panic(fmt.Sprintf("unknown engine %q", config.Engine))
}

func newAlphaBeta(config metrics.AgentConfig) *searcher.AlphaBeta {
	return searcher.NewAlphaBeta(searcher.WithSearchMetrics(), searcher.WithEvaluationFn(evaluation(config.Evaluation)))
}

// evaluation resolves an AgentConfig.Evaluation name.
func evaluation(name string) game.Evaluate {
	switch name {
	case "", "mobility":
		return game.EvaluateMobility
	case "liberties":
		return game.EvaluateLiberties
	}
	panic(fmt.Sprintf("unknown evaluation %q", name))
}

func createMCTS(config metrics.AgentConfig, seed uint64) *searcher.MCTS {
	options := []searcher.Option{searcher.WithSeed(seed)}

	if config.Iterations > 0 {
		options = append(options, searcher.WithIterations(config.Iterations))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Exploration > 0 {
		options = append(options, searcher.WithExploration(config.Exploration))
	}

	options = append(options, searcher.WithMetrics())
	return searcher.NewMCTS(options...)
}

// Standard pits the book-backed alphabeta agent, MCTS and a random baseline
// against each other.
func Standard(alphaBetaDepth int, heuristic string, iterations int, exploration float64, duration time.Duration) ([]metrics.AgentConfig, [][2]metrics.AgentConfig) {
	alphaBeta := metrics.AgentConfig{ID: 1, Engine: "alphabeta", MaxDepth: alphaBetaDepth, Book: true, Evaluation: heuristic}
	mcts := metrics.AgentConfig{ID: 2, Engine: "mcts", Iterations: iterations, Exploration: exploration, Duration: duration}
	random := metrics.AgentConfig{ID: 3, Engine: "random"}
	configs := []metrics.AgentConfig{alphaBeta, mcts, random}
	return configs, [][2]metrics.AgentConfig{
		{alphaBeta, mcts},
		{alphaBeta, random},
		{mcts, random},
	}
}
