package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/plus3/tetra/config"
	"github.com/plus3/tetra/game"
	"github.com/plus3/tetra/render"
	"github.com/plus3/tetra/render/terminal"
	"github.com/plus3/tetra/store"
)

func main() {
	configPath := flag.String("config", "", "Optional YAML config file.")
	mode := flag.String("mode", "", "Difficulty: normal or easy. Overrides the config.")
	logFile := flag.String("log", "", "Log file; the terminal is owned by the UI. Defaults next to the store.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if *logFile == "" {
		*logFile = filepath.Join(filepath.Dir(cfg.StorePath()), "tetra-term.log")
	}
	if err := os.MkdirAll(filepath.Dir(*logFile), 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	lf, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer lf.Close()
	cfg.SetupLogging(lf)

	s, err := store.Open(store.Kind(cfg.Store), cfg.StorePath())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer s.Close()

	bindings, err := cfg.Bindings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	engine := game.NewEngine(append(cfg.EngineOptions(), game.WithStorage(s))...)
	ui, err := terminal.New(engine, terminal.Options{
		Theme:    render.ParseTheme(cfg.Theme),
		Themes:   s,
		Bindings: bindings,
		History:  historyFor(s),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info().Str("mode", cfg.Mode).Str("store", cfg.Store).Msg("starting terminal frontend")
	if err := ui.Run(ctx); err != nil {
		log.Error().Err(err).Msg("ui exited")
		fmt.Fprintln(os.Stderr, err)
	}
}

// historyFor lists the best runs when the store keeps them.
func historyFor(s store.Store) func() []string {
	db, ok := s.(*store.SQLite)
	if !ok {
		return nil
	}
	p := message.NewPrinter(language.English)
	return func() []string {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		runs, err := db.TopRuns(ctx, 5)
		if err != nil {
			log.Warn().Err(err).Msg("load run history")
			return nil
		}
		lines := make([]string, 0, len(runs))
		for i, r := range runs {
			lines = append(lines, p.Sprintf("%d. %7d  %s  %s", i+1, r.Summary.Score, r.Summary.Mode, r.EndedAt.Format("Jan 02")))
		}
		return lines
	}
}
