package meta

import (
	"os"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type AlphaBeta struct {
	Depth      int    `yaml:"depth"`
	MaxDepth   int    `yaml:"max_depth"`
	Evaluation string `yaml:"evaluation"`
}

type MCTS struct {
	Iterations  int           `yaml:"iterations"`
	Exploration float64       `yaml:"exploration"`
	Duration    time.Duration `yaml:"duration"`
}

type Book struct {
	Rounds         int     `yaml:"rounds"`
	Depth          int     `yaml:"depth"`
	RandomOpenings float64 `yaml:"random_openings"`
	Path           string  `yaml:"path"`
}

type Match struct {
	Games      int           `yaml:"games"`
	MoveBudget time.Duration `yaml:"move_budget"`
	Workers    int           `yaml:"workers"`
	OutputDir  string        `yaml:"output_dir"`
}

// Config holds every tunable of the engines, the book builder and the match
// harness. Zero seed means seed from the clock.
type Config struct {
	AlphaBeta AlphaBeta `yaml:"alphabeta"`
	MCTS      MCTS      `yaml:"mcts"`
	Book      Book      `yaml:"book"`
	Match     Match     `yaml:"match"`
	Seed      uint64    `yaml:"seed"`
}

func Default() Config {
	return Config{
		AlphaBeta: AlphaBeta{Depth: ALPHABETA_DEPTH, MaxDepth: ALPHABETA_MAX_DEPTH, Evaluation: EVALUATION},
		MCTS:      MCTS{Iterations: ITERATIONS, Exploration: EXPLORATION},
		Book: Book{
			Rounds: BOOK_ROUNDS,
			Depth:  BOOK_DEPTH,
			Path:   "opening.book",
		},
		Match: Match{
			Games:      GAMES,
			MoveBudget: MOVE_BUDGET,
			Workers:    runtime.NumCPU(),
			OutputDir:  "experiments",
		},
	}
}

// Load reads a YAML file over the defaults, so a file only needs the keys it
// changes.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "failed to read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "failed to parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.AlphaBeta.Depth < 1:
		return errors.Errorf("alphabeta.depth must be positive, got %d", c.AlphaBeta.Depth)
	case c.AlphaBeta.MaxDepth < 1:
		return errors.Errorf("alphabeta.max_depth must be positive, got %d", c.AlphaBeta.MaxDepth)
	case c.AlphaBeta.Evaluation != "mobility" && c.AlphaBeta.Evaluation != "liberties":
		return errors.Errorf("alphabeta.evaluation must be mobility or liberties, got %q", c.AlphaBeta.Evaluation)
	case c.MCTS.Iterations < 0:
		return errors.Errorf("mcts.iterations must not be negative, got %d", c.MCTS.Iterations)
	case c.MCTS.Exploration < 0:
		return errors.Errorf("mcts.exploration must not be negative, got %g", c.MCTS.Exploration)
	case c.MCTS.Duration < 0:
		return errors.Errorf("mcts.duration must not be negative, got %s", c.MCTS.Duration)
	case c.Book.Rounds < 0:
		return errors.Errorf("book.rounds must not be negative, got %d", c.Book.Rounds)
	case c.Book.Depth < 1:
		return errors.Errorf("book.depth must be positive, got %d", c.Book.Depth)
	case c.Book.RandomOpenings < 0 || c.Book.RandomOpenings > 1:
		return errors.Errorf("book.random_openings must be within [0, 1], got %g", c.Book.RandomOpenings)
	case c.Match.Games < 1:
		return errors.Errorf("match.games must be positive, got %d", c.Match.Games)
	case c.Match.Workers < 1:
		return errors.Errorf("match.workers must be positive, got %d", c.Match.Workers)
	}
	return nil
}
