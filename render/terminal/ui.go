// Package terminal plays the game in a terminal with tview and tcell.
package terminal

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"golang.org/x/text/language"

	"github.com/plus3/tetra/game"
	"github.com/plus3/tetra/render"
	"github.com/plus3/tetra/store"
)

// cellWidth is the number of terminal columns per board cell.
const cellWidth = 2

// tickRate is how often the tview event loop ticks the game.
const tickRate = 16 * time.Millisecond

// Options configures a UI.
type Options struct {
	Theme    render.Theme
	Themes   store.ThemeStore
	Bindings map[game.Command][]string
	// History returns extra side panel lines, such as the best runs. It is
	// called after every game over.
	History func() []string
}

// UI is a tview application around a game.Loop. All loop access happens on
// the tview event goroutine.
type UI struct {
	app   *tview.Application
	root  tview.Primitive
	board *tview.Box
	side  *tview.TextView

	loop    *game.Loop
	keys    *render.Keymap[Key]
	hud     *render.HUD
	theme   render.Theme
	themes  store.ThemeStore
	history func() []string
	past    []string
	frame   *game.Frame
}

// New builds the UI and renders the first frame.
func New(engine *game.Engine, opts Options) (*UI, error) {
	keys, err := NewKeymap(opts.Bindings)
	if err != nil {
		return nil, err
	}

	ui := &UI{
		app:     tview.NewApplication(),
		keys:    keys,
		hud:     render.NewHUD(language.English),
		theme:   opts.Theme,
		themes:  opts.Themes,
		history: opts.History,
	}
	if ui.themes != nil {
		ui.theme = render.LoadTheme(ui.themes, opts.Theme)
	}
	if ui.history != nil {
		ui.past = ui.history()
	}
	ui.build()
	ui.loop = game.NewLoop(engine, ui)
	ui.loop.Render()
	return ui, nil
}

func (ui *UI) build() {
	ui.board = tview.NewBox()
	ui.board.SetBorder(true).SetTitle(" tetra ")
	ui.board.SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
		if ui.frame != nil {
			drawBoard(screen, x+1, y+1, ui.frame, render.PaletteFor(ui.theme))
		}
		return x + 1, y + 1, width - 2, height - 2
	})

	ui.side = tview.NewTextView().SetDynamicColors(true).SetWrap(false)
	ui.side.SetBorder(true)

	row := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(ui.board, game.Cols*cellWidth+2, 0, true).
		AddItem(ui.side, 28, 0, false).
		AddItem(nil, 0, 1, false)
	ui.root = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(row, game.Rows+2, 0, true).
		AddItem(nil, 0, 1, false)

	ui.app.SetInputCapture(ui.HandleKey)
}

// Loop returns the driven loop.
func (ui *UI) Loop() *game.Loop {
	return ui.loop
}

// Theme returns the active theme.
func (ui *UI) Theme() render.Theme {
	return ui.theme
}

// Render stores the frame and refreshes the side panel.
func (ui *UI) Render(frame *game.Frame) {
	if frame.State == game.StateGameOver && ui.history != nil &&
		(ui.frame == nil || ui.frame.State != game.StateGameOver) {
		ui.past = ui.history()
	}
	ui.frame = frame
	ui.side.SetText(ui.sideText(frame))
}

func (ui *UI) sideText(f *game.Frame) string {
	var b strings.Builder
	for _, line := range ui.hud.Lines(f) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if f.Next != nil {
		b.WriteString(nextPreview(f.Next))
	}
	if status := ui.hud.Status(f.State); status != "" {
		fmt.Fprintf(&b, "\n[::b]%s[::-]\n", status)
	}
	for _, line := range ui.hud.Summary(f.Summary) {
		b.WriteString(tview.Escape(line))
		b.WriteByte('\n')
	}
	if len(ui.past) > 0 {
		b.WriteString("\nBEST RUNS\n")
		for _, line := range ui.past {
			b.WriteString(tview.Escape(line))
			b.WriteByte('\n')
		}
	}
	b.WriteString("\n[::d]arrows move  space drop\nz/x rotate  p pause  r restart\nt theme  q quit[::-]\n")
	return b.String()
}

// nextPreview draws a piece as text, two columns per cell.
func nextPreview(p *game.Piece) string {
	var b strings.Builder
	for _, row := range p.Shape {
		empty := true
		var line strings.Builder
		for _, c := range row {
			if c == game.Empty {
				line.WriteString("  ")
				continue
			}
			empty = false
			line.WriteString("██")
		}
		if !empty {
			b.WriteString(strings.TrimRight(line.String(), " "))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// HandleKey maps a key event to a command. Unbound keys pass through.
func (ui *UI) HandleKey(ev *tcell.EventKey) *tcell.EventKey {
	if ev.Key() == tcell.KeyCtrlC {
		ui.app.Stop()
		return nil
	}

	k := KeyOf(ev)
	if cmd, ok := ui.keys.Lookup(k); ok {
		ui.loop.Apply(cmd)
		return nil
	}
	switch k {
	case themeKey:
		if ui.themes != nil {
			ui.theme = render.SwitchTheme(ui.themes, ui.theme)
		} else {
			ui.theme = ui.theme.Toggle()
		}
		return nil
	case quitKey:
		ui.app.Stop()
		return nil
	}
	return ev
}

// Run shows the UI until the user quits or ctx is cancelled.
func (ui *UI) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		ticker := time.NewTicker(tickRate)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				ui.app.Stop()
				return
			case now := <-ticker.C:
				ui.app.QueueUpdateDraw(func() {
					ui.loop.Tick(now)
				})
			}
		}
	}()

	return ui.app.SetRoot(ui.root, true).Run()
}

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// drawBoard paints f with its top-left corner at (x, y).
func drawBoard(screen tcell.Screen, x, y int, f *game.Frame, p *render.Palette) {
	canvas := tcellColor(p.Canvas)
	dots := tcell.StyleDefault.Background(canvas).Foreground(tcellColor(p.Grid))

	for row := 0; row < game.Rows; row++ {
		for col := 0; col < game.Cols; col++ {
			sx := x + col*cellWidth
			screen.SetContent(sx, y+row, '·', nil, dots)
			screen.SetContent(sx+1, y+row, ' ', nil, dots)
		}
	}

	render.Cells(f, func(col, row int, c game.Cell, layer render.Layer) {
		style := tcell.StyleDefault.Background(canvas).Foreground(tcellColor(p.Cell(c)))
		glyph := '█'
		if layer == render.LayerGhost {
			glyph = '░'
		}
		sx := x + col*cellWidth
		screen.SetContent(sx, y+row, glyph, nil, style)
		screen.SetContent(sx+1, y+row, glyph, nil, style)
	})

	if f.State != game.StateRunning {
		banner := " PAUSED "
		if f.State == game.StateGameOver {
			banner = " GAME OVER "
		}
		style := tcell.StyleDefault.Background(tcellColor(p.Text)).Foreground(canvas).Bold(true)
		sx := x + (game.Cols*cellWidth-len(banner))/2
		for i, r := range banner {
			screen.SetContent(sx+i, y+game.Rows/2, r, nil, style)
		}
	}
}
