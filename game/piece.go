package game

// Shape is a square matrix of cells; nonzero cells are solid.
type Shape [][]Cell

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	c := make(Shape, len(s))
	for i, row := range s {
		c[i] = append([]Cell(nil), row...)
	}
	return c
}

// Width returns the number of columns in the matrix.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Equal reports whether both shapes have identical cells.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if len(s[i]) != len(o[i]) {
			return false
		}
		for j := range s[i] {
			if s[i][j] != o[i][j] {
				return false
			}
		}
	}
	return true
}

// Position is a piece offset in grid coordinates.
type Position struct {
	X, Y int
}

// Piece is the active falling piece: a working copy of a catalog shape and
// the grid position of its top-left corner.
type Piece struct {
	Kind  Kind
	Shape Shape
	Pos   Position
}

// NewPiece returns a piece of the given kind at the origin.
func NewPiece(kind Kind) *Piece {
	return &Piece{Kind: kind, Shape: kind.Shape()}
}

// Clone returns a deep copy of the piece.
func (p *Piece) Clone() *Piece {
	return &Piece{Kind: p.Kind, Shape: p.Shape.Clone(), Pos: p.Pos}
}

// Collides reports whether any solid cell of the piece lies outside the
// playfield or overlaps a settled block.
func Collides(grid *Grid, p *Piece) bool {
	for i, row := range p.Shape {
		for j, c := range row {
			if c == Empty {
				continue
			}

			x := p.Pos.X + j
			y := p.Pos.Y + i

			if x < 0 || x >= Cols || y < 0 || y >= Rows {
				return true
			}

			if grid.Cell(x, y) != Empty {
				return true
			}
		}
	}

	return false
}

// rotate turns the shape in place: transpose, then reverse each row for a
// clockwise turn (dir > 0) or reverse the row order for counter-clockwise.
func (s Shape) rotate(dir int) {
	for i := range s {
		for j := 0; j < i; j++ {
			s[i][j], s[j][i] = s[j][i], s[i][j]
		}
	}

	if dir > 0 {
		for _, row := range s {
			for l, r := 0, len(row)-1; l < r; l, r = l+1, r-1 {
				row[l], row[r] = row[r], row[l]
			}
		}
		return
	}

	for l, r := 0, len(s)-1; l < r; l, r = l+1, r-1 {
		s[l], s[r] = s[r], s[l]
	}
}

// merge writes the piece's solid cells into the grid.
func merge(grid *Grid, p *Piece) {
	for i, row := range p.Shape {
		for j, c := range row {
			if c != Empty {
				grid.Set(p.Pos.X+j, p.Pos.Y+i, c)
			}
		}
	}
}
