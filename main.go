package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"isolation/book"
	"isolation/experiments"
	"isolation/experiments/metrics"
	"isolation/meta"
)

func main() {
	mode := flag.String("mode", "match", "What to run: build (opening book) or match (agent experiments)")
	configPath := flag.String("config", "", "YAML config file, defaults are used for missing keys")
	rounds := flag.Int("rounds", 0, "Opening book rounds, overrides the config when positive")
	out := flag.String("out", "", "Opening book path, overrides the config when set")
	verbose := flag.Bool("verbose", false, "Log at debug level")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := meta.Default()
	if *configPath != "" {
		var err error
		cfg, err = meta.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}
	if *rounds > 0 {
		cfg.Book.Rounds = *rounds
	}
	if *out != "" {
		cfg.Book.Path = *out
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch *mode {
	case "build":
		buildBook(ctx, cfg)
	case "match":
		runMatch(ctx, cfg)
	default:
		log.Fatal().Msgf("unknown mode %q", *mode)
	}
}

func buildBook(ctx context.Context, cfg meta.Config) {
	options := []book.Option{
		book.WithRounds(cfg.Book.Rounds),
		book.WithDepth(cfg.Book.Depth),
		book.WithSearchDepth(cfg.AlphaBeta.Depth),
		book.WithRandomOpenings(cfg.Book.RandomOpenings),
	}
	if cfg.Seed != 0 {
		options = append(options, book.WithSeed(cfg.Seed))
	}

	log.Info().Msgf("building opening book with %d rounds...", cfg.Book.Rounds)
	openings, err := book.NewBuilder(options...).Build(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("saving partial opening book")
	}
	if err := openings.SaveFile(cfg.Book.Path); err != nil {
		log.Fatal().Err(err).Msg("failed to save opening book")
	}
	log.Info().Msgf("stored %d book entries in %s", openings.Len(), cfg.Book.Path)
}

func runMatch(ctx context.Context, cfg meta.Config) {
	openings, err := book.LoadFile(cfg.Book.Path)
	if err != nil {
		log.Warn().Err(err).Msg("playing without an opening book")
		openings = nil
	}

	configs, matchUps := experiments.Standard(cfg.AlphaBeta.MaxDepth, cfg.AlphaBeta.Evaluation, cfg.MCTS.Iterations, cfg.MCTS.Exploration, cfg.MCTS.Duration)
	writer, err := metrics.NewWriter(cfg.Match.OutputDir, "matchups")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create experiment writer")
	}

	_, err = experiments.RunMatchups(ctx, experiments.Experiment{
		Name:       "matchups",
		Configs:    configs,
		MatchUps:   matchUps,
		Games:      cfg.Match.Games,
		MoveBudget: cfg.Match.MoveBudget,
		Workers:    cfg.Match.Workers,
		Book:       openings,
		Seed:       cfg.Seed,
	}, writer)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
}
