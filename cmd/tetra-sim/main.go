package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/plus3/tetra/config"
	"github.com/plus3/tetra/sim"
	"github.com/plus3/tetra/store"
)

func main() {
	configPath := flag.String("config", "", "Optional YAML config file.")
	games := flag.Int("games", 100, "Number of games to play.")
	seed := flag.Uint64("seed", 1, "Seed of the first game; game i uses seed+i.")
	steps := flag.Int("steps", 100_000, "Step cap per game.")
	step := flag.Duration("step", 50*time.Millisecond, "Simulated time between inputs.")
	timeout := flag.Duration("timeout", time.Minute, "Wall-clock limit for the whole batch.")
	record := flag.Bool("record", false, "Record runs and the high score in the configured store.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.SetupLogging(os.Stderr)

	opts := sim.Options{
		Games:    *games,
		Seed:     *seed,
		MaxSteps: *steps,
		Step:     *step,
		Mode:     cfg.GameMode(),
		Logger:   log.Logger,
	}
	if *record {
		s, err := store.Open(store.Kind(cfg.Store), cfg.StorePath())
		if err != nil {
			log.Fatal().Err(err).Msg("open store")
		}
		defer s.Close()
		opts.Storage = s
	}

	report := &Report{
		Games:    *games,
		Seed:     *seed,
		MaxSteps: *steps,
		Mode:     cfg.GameMode().String(),
	}
	runtime.ReadMemStats(&report.MemStart)

	log.Info().Int("games", *games).Uint64("seed", *seed).Msg("simulating")
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	start := time.Now()
	results, err := sim.Play(ctx, opts)
	if err != nil {
		log.Warn().Err(err).Int("played", len(results)).Msg("batch stopped early")
	}
	report.TotalTime = time.Since(start)
	report.Games = len(results)
	for _, r := range results {
		report.Add(r)
	}
	report.StepTime.Finalize()
	runtime.ReadMemStats(&report.MemEnd)

	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("generate report")
	}
	log.Info().Int("best", report.Scores.Max).Msg("simulation complete")
}
