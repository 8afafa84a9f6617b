//go:build js && wasm

package main

import (
	"os"
	"syscall/js"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"github.com/plus3/tetra/config"
	"github.com/plus3/tetra/store"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		cfg = config.Default()
	}
	cfg.SetupLogging(os.Stdout)

	s, err := store.NewLocalStorage()
	if err != nil {
		log.Fatal().Err(err).Msg("open localStorage")
	}

	g, err := newGame(cfg, s, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("setup")
	}

	js.Global().Set("getScore", js.FuncOf(func(this js.Value, args []js.Value) any {
		return js.ValueOf(g.Loop().Engine().Run().Score)
	}))

	ebiten.SetWindowTitle("tetra")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal().Err(err).Msg("game exited")
	}
}
