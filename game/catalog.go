package game

import "math/rand/v2"

// Kind identifies one of the seven catalog pieces. Its value doubles as the
// color id written into the grid.
type Kind uint8

const (
	KindT Kind = iota + 1
	KindO
	KindL
	KindJ
	KindI
	KindS
	KindZ
)

// Kinds lists every catalog piece in color id order.
var Kinds = []Kind{KindT, KindO, KindL, KindJ, KindI, KindS, KindZ}

var kindNames = map[Kind]string{
	KindT: "T",
	KindO: "O",
	KindL: "L",
	KindJ: "J",
	KindI: "I",
	KindS: "S",
	KindZ: "Z",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "?"
}

// Templates are never handed out directly; see Kind.Shape.
var catalog = map[Kind]Shape{
	KindT: {
		{0, 0, 0},
		{1, 1, 1},
		{0, 1, 0},
	},
	KindO: {
		{2, 2},
		{2, 2},
	},
	KindL: {
		{0, 3, 0},
		{0, 3, 0},
		{0, 3, 3},
	},
	KindJ: {
		{0, 4, 0},
		{0, 4, 0},
		{4, 4, 0},
	},
	KindI: {
		{0, 5, 0, 0},
		{0, 5, 0, 0},
		{0, 5, 0, 0},
		{0, 5, 0, 0},
	},
	KindS: {
		{0, 6, 6},
		{6, 6, 0},
		{0, 0, 0},
	},
	KindZ: {
		{7, 7, 0},
		{0, 7, 7},
		{0, 0, 0},
	},
}

// Shape returns a fresh working copy of the piece's template.
func (k Kind) Shape() Shape {
	return catalog[k].Clone()
}

// randomKind picks uniformly among the catalog pieces with no memory of
// previous picks.
func randomKind(rng *rand.Rand) Kind {
	return Kinds[rng.IntN(len(Kinds))]
}
