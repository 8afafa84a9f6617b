// Package ebiten renders the game with Ebitengine and maps keyboard input to
// game commands. The same code runs on the desktop and in the browser.
package ebiten

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/text/language"

	"github.com/plus3/tetra/game"
	"github.com/plus3/tetra/render"
	"github.com/plus3/tetra/store"
)

// Overlay is drawn on top of the board, typically a debug UI.
type Overlay interface {
	// Update builds this tick's UI.
	Update(loop *game.Loop)
	Draw(screen *ebiten.Image)
	Layout(width, height int)
	// WantsKeyboard reports whether the overlay consumes key presses.
	WantsKeyboard() bool
}

// Options configures a Game.
type Options struct {
	Scale    int
	Theme    render.Theme
	Themes   store.ThemeStore
	Bindings map[game.Command][]string
	Overlay  Overlay
}

// Game implements ebiten.Game around a game.Loop.
type Game struct {
	loop    *game.Loop
	cmds    *game.Commands
	keys    *render.Keymap[ebiten.Key]
	held    keyDuration
	now     func() time.Time
	layout  render.Layout
	hud     *render.HUD
	theme   render.Theme
	themes  store.ThemeStore
	overlay Overlay
	frame   *game.Frame
}

// NewGame wires engine to a loop that renders into the returned Game.
func NewGame(engine *game.Engine, opts Options) (*Game, error) {
	keys, err := NewKeymap(opts.Bindings)
	if err != nil {
		return nil, err
	}
	if opts.Scale <= 0 {
		opts.Scale = 24
	}

	g := &Game{
		cmds:    game.NewCommands(),
		keys:    keys,
		held:    pressDuration,
		now:     time.Now,
		layout:  render.Layout{Scale: opts.Scale},
		hud:     render.NewHUD(language.English),
		theme:   opts.Theme,
		themes:  opts.Themes,
		overlay: opts.Overlay,
	}
	if g.themes != nil {
		g.theme = render.LoadTheme(g.themes, opts.Theme)
	}
	g.loop = game.NewLoop(engine, g)
	g.loop.Render()
	return g, nil
}

// Loop returns the driven loop.
func (g *Game) Loop() *game.Loop {
	return g.loop
}

// Theme returns the active theme.
func (g *Game) Theme() render.Theme {
	return g.theme
}

// Size returns the window size in pixels.
func (g *Game) Size() (int, int) {
	return g.layout.ScreenSize()
}

// Render keeps the latest frame for the next Draw.
func (g *Game) Render(frame *game.Frame) {
	g.frame = frame
}

// Update polls input, applies it and advances the loop.
func (g *Game) Update() error {
	if g.overlay == nil || !g.overlay.WantsKeyboard() {
		poll(g.keys, g.held, g.cmds)
		if _, bound := g.keys.Lookup(ThemeKey); !bound && g.held(ThemeKey) == 1 {
			g.toggleTheme()
		}
	}
	g.cmds.Flush(g.loop)
	g.loop.Tick(g.now())

	if g.overlay != nil {
		g.overlay.Update(g.loop)
	}
	return nil
}

func (g *Game) toggleTheme() {
	if g.themes == nil {
		g.theme = g.theme.Toggle()
		return
	}
	g.theme = render.SwitchTheme(g.themes, g.theme)
}

// Draw paints the last rendered frame.
func (g *Game) Draw(screen *ebiten.Image) {
	p := render.PaletteFor(g.theme)
	s := float32(g.layout.Scale)
	screen.Fill(p.Canvas)

	for y := 0; y < game.Rows; y++ {
		for x := 0; x < game.Cols; x++ {
			px, py := g.layout.Cell(x, y)
			vector.StrokeRect(screen, float32(px)+0.5, float32(py)+0.5, s-1, s-1, 1, p.Grid, false)
		}
	}

	f := g.frame
	if f == nil {
		return
	}

	render.Cells(f, func(x, y int, c game.Cell, layer render.Layer) {
		col := p.Cell(c)
		if layer == render.LayerGhost {
			col = p.Ghost(c)
		}
		px, py := g.layout.Cell(x, y)
		vector.DrawFilledRect(screen, float32(px)+1, float32(py)+1, s-2, s-2, col, false)
	})

	face := basicfont.Face7x13
	side := g.layout.Side()
	lineY := g.layout.Scale
	for _, line := range g.hud.Lines(f) {
		text.Draw(screen, line, face, side, lineY, p.Text)
		lineY += face.Height + 4
	}
	if f.Next != nil {
		half := s / 2
		render.PieceCells(f.Next, func(x, y int, c game.Cell) {
			px := float32(side) + float32(x)*half
			py := float32(lineY) + float32(y)*half
			vector.DrawFilledRect(screen, px, py, half-1, half-1, p.Cell(c), false)
		})
	}

	if status := g.hud.Status(f.State); status != "" {
		w, h := g.layout.BoardSize()
		vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), p.Shade, false)
		y := h / 3
		text.Draw(screen, status, face, (w-len(status)*face.Advance)/2, y, p.Text)
		for _, line := range g.hud.Summary(f.Summary) {
			y += face.Height + 6
			text.Draw(screen, line, face, g.layout.Scale, y, p.Text)
		}
	}

	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

// Layout fixes the logical screen to the board plus side panel. With an
// overlay the screen follows the window so the overlay draws unscaled.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.overlay != nil {
		g.overlay.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return g.layout.ScreenSize()
}
