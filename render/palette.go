package render

import (
	"image/color"

	"github.com/kamstrup/intmap"

	"github.com/plus3/tetra/game"
)

// Palette maps color ids to concrete colors for one theme.
type Palette struct {
	Canvas color.RGBA
	Grid   color.RGBA
	Text   color.RGBA
	Shade  color.RGBA

	cells *intmap.Map[game.Cell, color.RGBA]
}

// Opacity of the landing preview and of the pause/game-over shade.
const (
	ghostAlpha = 0x50
	shadeAlpha = 0xc0
)

var (
	dark = newPalette(
		color.RGBA{0x11, 0x11, 0x11, 0xff},
		color.RGBA{0x22, 0x22, 0x22, 0xff},
		color.RGBA{0xee, 0xee, 0xee, 0xff},
		[]color.RGBA{
			{0xa0, 0x4c, 0xe0, 0xff},
			{0xf5, 0xd0, 0x30, 0xff},
			{0xf0, 0x8c, 0x28, 0xff},
			{0x3c, 0x6e, 0xf0, 0xff},
			{0x3c, 0xd8, 0xe8, 0xff},
			{0x50, 0xd0, 0x5a, 0xff},
			{0xe8, 0x46, 0x46, 0xff},
		},
	)
	light = newPalette(
		color.RGBA{0xf4, 0xf4, 0xf4, 0xff},
		color.RGBA{0xdd, 0xdd, 0xdd, 0xff},
		color.RGBA{0x22, 0x22, 0x22, 0xff},
		[]color.RGBA{
			{0x7a, 0x2e, 0xb8, 0xff},
			{0xc9, 0xa2, 0x00, 0xff},
			{0xd0, 0x6a, 0x0a, 0xff},
			{0x1e, 0x4c, 0xc8, 0xff},
			{0x10, 0xa4, 0xb4, 0xff},
			{0x2a, 0xa0, 0x3a, 0xff},
			{0xc0, 0x26, 0x26, 0xff},
		},
	)
)

func newPalette(canvas, grid, text color.RGBA, cells []color.RGBA) *Palette {
	p := &Palette{
		Canvas: canvas,
		Grid:   grid,
		Text:   text,
		Shade:  withAlpha(canvas, shadeAlpha),
		cells:  intmap.New[game.Cell, color.RGBA](len(cells)),
	}
	for i, c := range cells {
		p.cells.Put(game.Cell(i+1), c)
	}
	return p
}

// PaletteFor returns the shared palette of theme t.
func PaletteFor(t Theme) *Palette {
	if t == ThemeLight {
		return light
	}
	return dark
}

// Cell returns the color of id c. Unknown ids use the grid color.
func (p *Palette) Cell(c game.Cell) color.RGBA {
	if col, ok := p.cells.Get(c); ok {
		return col
	}
	return p.Grid
}

// Ghost returns the translucent landing-preview color of id c.
func (p *Palette) Ghost(c game.Cell) color.RGBA {
	return withAlpha(p.Cell(c), ghostAlpha)
}

// withAlpha scales an opaque color to alpha a. color.RGBA is premultiplied.
func withAlpha(col color.RGBA, a uint8) color.RGBA {
	return color.RGBA{
		R: uint8(uint16(col.R) * uint16(a) / 0xff),
		G: uint8(uint16(col.G) * uint16(a) / 0xff),
		B: uint8(uint16(col.B) * uint16(a) / 0xff),
		A: a,
	}
}
