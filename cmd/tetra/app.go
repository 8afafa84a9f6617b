package main

import (
	"github.com/plus3/tetra/config"
	"github.com/plus3/tetra/game"
	"github.com/plus3/tetra/render"
	rebiten "github.com/plus3/tetra/render/ebiten"
	"github.com/plus3/tetra/store"
)

// newGame builds the engine and ebiten game shared by the desktop and
// browser builds.
func newGame(cfg config.Config, s store.Store, overlay rebiten.Overlay) (*rebiten.Game, error) {
	bindings, err := cfg.Bindings()
	if err != nil {
		return nil, err
	}
	engine := game.NewEngine(append(cfg.EngineOptions(), game.WithStorage(s))...)
	return rebiten.NewGame(engine, rebiten.Options{
		Scale:    cfg.Scale,
		Theme:    render.ParseTheme(cfg.Theme),
		Themes:   s,
		Bindings: bindings,
		Overlay:  overlay,
	})
}
