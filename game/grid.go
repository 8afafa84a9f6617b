package game

// Playfield dimensions.
const (
	Cols = 10
	Rows = 20
)

// Cell is a single grid slot. Zero is empty; 1-7 are piece color ids.
type Cell uint8

// Empty is the zero Cell.
const Empty Cell = 0

// Grid holds the settled blocks. Its dimensions are fixed at Cols×Rows for
// its whole lifetime; rows are indexed top to bottom.
type Grid struct {
	cells [][]Cell
}

// NewGrid returns an all-empty grid.
func NewGrid() *Grid {
	g := &Grid{cells: make([][]Cell, Rows)}
	for y := range g.cells {
		g.cells[y] = make([]Cell, Cols)
	}
	return g
}

// Cell returns the value at column x, row y.
func (g *Grid) Cell(x, y int) Cell {
	return g.cells[y][x]
}

// Set writes the value at column x, row y.
func (g *Grid) Set(x, y int, c Cell) {
	g.cells[y][x] = c
}

// IsRowFull reports whether row y has no empty cell.
func (g *Grid) IsRowFull(y int) bool {
	for _, c := range g.cells[y] {
		if c == Empty {
			return false
		}
	}
	return true
}

// ClearRow removes row y and inserts an empty row at the top. Rows above y
// shift down by one; rows below y are untouched.
func (g *Grid) ClearRow(y int) {
	row := g.cells[y]
	copy(g.cells[1:y+1], g.cells[:y])
	for x := range row {
		row[x] = Empty
	}
	g.cells[0] = row
}

// Reset empties every cell.
func (g *Grid) Reset() {
	for _, row := range g.cells {
		for x := range row {
			row[x] = Empty
		}
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{cells: make([][]Cell, Rows)}
	for y, row := range g.cells {
		c.cells[y] = append([]Cell(nil), row...)
	}
	return c
}

// Rows returns the underlying rows. Callers must not retain or mutate them.
func (g *Grid) Rows() [][]Cell {
	return g.cells
}

// Filled returns the number of non-empty cells.
func (g *Grid) Filled() int {
	n := 0
	for _, row := range g.cells {
		for _, c := range row {
			if c != Empty {
				n++
			}
		}
	}
	return n
}
