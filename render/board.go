package render

import "github.com/plus3/tetra/game"

// SideCells is the width of the side panel in board cells.
const SideCells = 6

// Layout converts board cells to pixels.
type Layout struct {
	Scale int
}

// BoardSize is the pixel size of the playfield.
func (l Layout) BoardSize() (int, int) {
	return game.Cols * l.Scale, game.Rows * l.Scale
}

// ScreenSize is the playfield plus the side panel.
func (l Layout) ScreenSize() (int, int) {
	w, h := l.BoardSize()
	return w + SideCells*l.Scale, h
}

// Cell returns the top-left pixel of board cell (x, y).
func (l Layout) Cell(x, y int) (int, int) {
	return x * l.Scale, y * l.Scale
}

// Side returns the left pixel of the side panel.
func (l Layout) Side() int {
	w, _ := l.BoardSize()
	return w + l.Scale/2
}

// Layer tells a cell visitor what it is painting.
type Layer int

const (
	LayerLocked Layer = iota
	LayerGhost
	LayerActive
)

// Cells visits every painted cell of f in paint order: locked cells, then the
// landing preview, then the active piece. Cells above the board are skipped.
func Cells(f *game.Frame, visit func(x, y int, c game.Cell, layer Layer)) {
	for y, row := range f.Grid.Rows() {
		for x, c := range row {
			if c != game.Empty {
				visit(x, y, c, LayerLocked)
			}
		}
	}

	if f.Active == nil {
		return
	}
	if f.GhostY > f.Active.Pos.Y {
		ghost := *f.Active
		ghost.Pos.Y = f.GhostY
		PieceCells(&ghost, func(x, y int, c game.Cell) {
			visit(x, y, c, LayerGhost)
		})
	}
	PieceCells(f.Active, func(x, y int, c game.Cell) {
		visit(x, y, c, LayerActive)
	})
}

// PieceCells visits the solid cells of p at board coordinates.
func PieceCells(p *game.Piece, visit func(x, y int, c game.Cell)) {
	for dy, row := range p.Shape {
		for dx, c := range row {
			if c == game.Empty {
				continue
			}
			x, y := p.Pos.X+dx, p.Pos.Y+dy
			if y < 0 || y >= game.Rows || x < 0 || x >= game.Cols {
				continue
			}
			visit(x, y, c)
		}
	}
}
