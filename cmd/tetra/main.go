//go:build !js

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"github.com/plus3/tetra/config"
	debugebiten "github.com/plus3/tetra/debugui/ebiten"
	"github.com/plus3/tetra/render"
	rebiten "github.com/plus3/tetra/render/ebiten"
	"github.com/plus3/tetra/store"
)

func main() {
	configPath := flag.String("config", "", "Optional YAML config file.")
	mode := flag.String("mode", "", "Difficulty: normal or easy. Overrides the config.")
	debug := flag.Bool("debug", false, "Show the ImGui debug overlay.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	cfg.Debug = cfg.Debug || *debug
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.SetupLogging(os.Stderr)

	s, err := store.Open(store.Kind(cfg.Store), cfg.StorePath())
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store).Msg("open store")
	}
	defer s.Close()

	var overlay rebiten.Overlay
	width, height := render.Layout{Scale: cfg.Scale}.ScreenSize()
	if cfg.Debug {
		overlay = debugebiten.NewImguiBackend("tetra (debug)", 1280, 720)
	} else {
		ebiten.SetWindowSize(width, height)
		ebiten.SetWindowTitle("tetra")
	}

	g, err := newGame(cfg, s, overlay)
	if err != nil {
		log.Fatal().Err(err).Msg("setup")
	}

	log.Info().
		Str("mode", cfg.Mode).
		Str("store", cfg.Store).
		Str("theme", string(g.Theme())).
		Msg("starting")
	if err := ebiten.RunGame(g); err != nil {
		log.Error().Err(err).Msg("game exited")
	}
}
