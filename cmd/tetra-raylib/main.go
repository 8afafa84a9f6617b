package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"github.com/plus3/tetra/config"
	"github.com/plus3/tetra/game"
	"github.com/plus3/tetra/render"
	"github.com/plus3/tetra/store"
)

func main() {
	configPath := flag.String("config", "", "Optional YAML config file.")
	mode := flag.String("mode", "", "Difficulty: normal or easy. Overrides the config.")
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
	cfg.SetupLogging(os.Stderr)

	s, err := store.Open(store.Kind(cfg.Store), cfg.StorePath())
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}
	defer s.Close()

	bindings, _ := cfg.Bindings()
	keys, err := newKeymap(bindings)
	if err != nil {
		log.Fatal().Err(err).Msg("key bindings")
	}

	v := &view{
		layout: render.Layout{Scale: cfg.Scale},
		hud:    render.NewHUD(language.English),
		theme:  render.LoadTheme(s, render.ParseTheme(cfg.Theme)),
	}
	engine := game.NewEngine(append(cfg.EngineOptions(), game.WithStorage(s))...)
	loop := game.NewLoop(engine, v)
	cmds := game.NewCommands()

	w, h := v.layout.ScreenSize()
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(w), int32(h), "tetra")
	rl.SetExitKey(0)
	rl.SetTargetFPS(60)
	defer rl.CloseWindow()

	loop.Render()
	for !rl.WindowShouldClose() {
		pollKeys(keys, cmds)
		if _, bound := keys.Lookup(rl.KeyT); !bound && rl.IsKeyPressed(rl.KeyT) {
			v.theme = render.SwitchTheme(s, v.theme)
		}
		cmds.Flush(loop)
		loop.Tick(time.Now())
		v.draw()
	}
	log.Info().Int("score", engine.Run().Score).Msg("window closed")
}

// view keeps the latest frame and draws it with raylib.
type view struct {
	layout render.Layout
	hud    *render.HUD
	theme  render.Theme
	frame  *game.Frame
}

func (v *view) Render(frame *game.Frame) {
	v.frame = frame
}

// rlColor converts a premultiplied color to raylib's straight alpha.
func rlColor(c color.RGBA) rl.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return rl.NewColor(n.R, n.G, n.B, n.A)
}

func (v *view) draw() {
	p := render.PaletteFor(v.theme)
	s := int32(v.layout.Scale)

	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(rlColor(p.Canvas))

	for y := 0; y < game.Rows; y++ {
		for x := 0; x < game.Cols; x++ {
			px, py := v.layout.Cell(x, y)
			rl.DrawRectangleLines(int32(px), int32(py), s, s, rlColor(p.Grid))
		}
	}

	f := v.frame
	if f == nil {
		return
	}

	render.Cells(f, func(x, y int, c game.Cell, layer render.Layer) {
		col := p.Cell(c)
		if layer == render.LayerGhost {
			col = p.Ghost(c)
		}
		px, py := v.layout.Cell(x, y)
		rl.DrawRectangle(int32(px)+1, int32(py)+1, s-2, s-2, rlColor(col))
	})

	side := int32(v.layout.Side())
	lineY := s / 2
	for _, line := range v.hud.Lines(f) {
		rl.DrawText(line, side, lineY, 16, rlColor(p.Text))
		lineY += 22
	}
	if f.Next != nil {
		half := s / 2
		render.PieceCells(f.Next, func(x, y int, c game.Cell) {
			rl.DrawRectangle(side+int32(x)*half, lineY+int32(y)*half, half-1, half-1, rlColor(p.Cell(c)))
		})
	}

	if status := v.hud.Status(f.State); status != "" {
		bw, bh := v.layout.BoardSize()
		rl.DrawRectangle(0, 0, int32(bw), int32(bh), rlColor(p.Shade))
		y := int32(bh / 3)
		width := rl.MeasureText(status, 28)
		rl.DrawText(status, (int32(bw)-width)/2, y, 28, rlColor(p.Text))
		y += 40
		for _, line := range v.hud.Summary(f.Summary) {
			rl.DrawText(line, s, y, 16, rlColor(p.Text))
			y += 22
		}
	}
}
