package render_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/plus3/tetra/game"
	"github.com/plus3/tetra/render"
	"github.com/plus3/tetra/store"
)

func TestTheme(t *testing.T) {
	assert.Equal(t, render.ThemeLight, render.ParseTheme("light"))
	assert.Equal(t, render.ThemeDark, render.ParseTheme("dark"))
	assert.Equal(t, render.ThemeDark, render.ParseTheme(""))
	assert.Equal(t, render.ThemeDark, render.ParseTheme("sepia"))

	assert.Equal(t, render.ThemeLight, render.ThemeDark.Toggle())
	assert.Equal(t, render.ThemeDark, render.ThemeLight.Toggle())
}

type brokenThemes struct{}

func (brokenThemes) LoadTheme() (string, error) { return "", errors.New("disk on fire") }
func (brokenThemes) SaveTheme(string) error     { return errors.New("disk on fire") }

func TestLoadAndSwitchTheme(t *testing.T) {
	m := store.NewMemory()
	assert.Equal(t, render.ThemeLight, render.LoadTheme(m, render.ThemeLight), "nothing saved yet")

	theme := render.SwitchTheme(m, render.ThemeLight)
	assert.Equal(t, render.ThemeDark, theme)
	assert.Equal(t, render.ThemeDark, render.LoadTheme(m, render.ThemeLight))

	theme = render.SwitchTheme(m, theme)
	saved, err := m.LoadTheme()
	require.NoError(t, err)
	assert.Equal(t, "light", saved)

	assert.Equal(t, render.ThemeDark, render.LoadTheme(brokenThemes{}, render.ThemeDark))
	assert.Equal(t, render.ThemeLight, render.SwitchTheme(brokenThemes{}, render.ThemeDark), "toggle applies even if the save fails")
}

func TestPalette(t *testing.T) {
	d := render.PaletteFor(render.ThemeDark)
	l := render.PaletteFor(render.ThemeLight)
	assert.NotEqual(t, d.Canvas, l.Canvas)

	for _, p := range []*render.Palette{d, l} {
		seen := map[[4]uint8]bool{}
		for _, k := range game.Kinds {
			c := p.Cell(game.Cell(k))
			assert.NotEqual(t, p.Grid, c, "kind %s", k)
			assert.Equal(t, uint8(0xff), c.A)
			seen[[4]uint8{c.R, c.G, c.B, c.A}] = true

			g := p.Ghost(game.Cell(k))
			assert.Less(t, g.A, c.A)
			assert.LessOrEqual(t, g.R, g.A, "premultiplied")
		}
		assert.Len(t, seen, len(game.Kinds), "every kind has its own color")
		assert.Equal(t, p.Grid, p.Cell(99))
	}
}

func TestLayout(t *testing.T) {
	l := render.Layout{Scale: 24}

	w, h := l.BoardSize()
	assert.Equal(t, 240, w)
	assert.Equal(t, 480, h)

	w, h = l.ScreenSize()
	assert.Equal(t, 240+render.SideCells*24, w)
	assert.Equal(t, 480, h)

	x, y := l.Cell(3, 5)
	assert.Equal(t, 72, x)
	assert.Equal(t, 120, y)
	assert.Equal(t, 252, l.Side())
}

func TestCells(t *testing.T) {
	e := game.NewEngine(game.WithPicker(func() game.Kind { return game.KindO }))
	e.Grid().Set(0, game.Rows-1, 3)

	counts := map[render.Layer]int{}
	var order []render.Layer
	render.Cells(e.Frame(), func(x, y int, c game.Cell, layer render.Layer) {
		counts[layer]++
		if len(order) == 0 || order[len(order)-1] != layer {
			order = append(order, layer)
		}
		if layer == render.LayerGhost {
			assert.GreaterOrEqual(t, y, game.Rows-2)
		}
	})

	assert.Equal(t, 1, counts[render.LayerLocked])
	assert.Equal(t, 4, counts[render.LayerGhost])
	assert.Equal(t, 4, counts[render.LayerActive])
	assert.Equal(t, []render.Layer{render.LayerLocked, render.LayerGhost, render.LayerActive}, order)
}

func TestCellsWithoutGhost(t *testing.T) {
	e := game.NewEngine(game.WithPicker(func() game.Kind { return game.KindO }))
	for e.Active().Pos.Y < e.GhostY() {
		require.False(t, e.SoftDrop())
	}

	ghosts := 0
	render.Cells(e.Frame(), func(_, _ int, _ game.Cell, layer render.Layer) {
		if layer == render.LayerGhost {
			ghosts++
		}
	})
	assert.Zero(t, ghosts, "no preview once the piece rests on its landing row")
}

func TestHUD(t *testing.T) {
	h := render.NewHUD(language.English)
	assert.Equal(t, "1,234,567", h.Number(1234567))

	f := &game.Frame{
		Grid:      game.NewGrid(),
		Run:       game.RunState{Score: 12400, Lines: 24, Level: 3},
		HighScore: 48000,
	}
	assert.Equal(t, []string{"SCORE 12,400", "HIGH  48,000", "LEVEL 3", "LINES 24"}, h.Lines(f))

	f.Next = game.NewPiece(game.KindI)
	assert.Equal(t, "NEXT", h.Lines(f)[5])

	assert.Empty(t, h.Status(game.StateRunning))
	assert.Equal(t, "PAUSED", h.Status(game.StatePaused))
	assert.Equal(t, "GAME OVER", h.Status(game.StateGameOver))
}

func TestHUDSummary(t *testing.T) {
	h := render.NewHUD(language.English)
	assert.Nil(t, h.Summary(nil))

	lines := h.Summary(&game.Summary{
		Score:        2500,
		Lines:        10,
		Level:        2,
		Pieces:       41,
		Duration:     2*time.Minute + 5400*time.Millisecond,
		NewHighScore: true,
	})
	assert.Equal(t, []string{
		"Score  2,500",
		"Lines  10",
		"Level  2",
		"Pieces 41",
		"Time   2m5s",
		"New high score!",
	}, lines)
}
