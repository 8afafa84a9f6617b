package game_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/plus3/tetra/game"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// fillBoard writes the named fixture from testdata/boards.txtar into the
// bottom rows of g.
func fillBoard(t *testing.T, g *game.Grid, name string) {
	t.Helper()

	archive, err := txtar.ParseFile("testdata/boards.txtar")
	require.NoError(t, err)

	for _, f := range archive.Files {
		if f.Name != name {
			continue
		}
		lines := strings.Split(strings.TrimRight(string(f.Data), "\n"), "\n")
		require.LessOrEqual(t, len(lines), game.Rows, "fixture %s is too tall", name)

		top := game.Rows - len(lines)
		for i, line := range lines {
			require.Len(t, line, game.Cols, "fixture %s row %d", name, i)
			for x, ch := range line {
				c := game.Empty
				if ch != '.' {
					c = game.Cell(ch - '0')
				}
				g.Set(x, top+i, c)
			}
		}
		return
	}
	t.Fatalf("fixture %s not found", name)
}

func newBoard(t *testing.T, name string) *game.Grid {
	t.Helper()
	g := game.NewGrid()
	fillBoard(t, g, name)
	return g
}

// sequence returns a picker that cycles through kinds.
func sequence(kinds ...game.Kind) func() game.Kind {
	i := 0
	return func() game.Kind {
		k := kinds[i%len(kinds)]
		i++
		return k
	}
}

func fillRow(g *game.Grid, y int, c game.Cell) {
	for x := 0; x < game.Cols; x++ {
		g.Set(x, y, c)
	}
}

func snapshot(g *game.Grid) [][]game.Cell {
	return g.Clone().Rows()
}

type fakeStorage struct {
	score    int
	loadErr  error
	saveErr  error
	saves    []int
	recorded []game.Summary
}

func (s *fakeStorage) LoadHighScore() (int, error) {
	if s.loadErr != nil {
		return 0, s.loadErr
	}
	return s.score, nil
}

func (s *fakeStorage) SaveHighScore(score int) error {
	s.saves = append(s.saves, score)
	if s.saveErr != nil {
		return s.saveErr
	}
	s.score = score
	return nil
}

func (s *fakeStorage) RecordRun(summary game.Summary) error {
	s.recorded = append(s.recorded, summary)
	return nil
}

var errCorrupt = errors.New("corrupt value")

// blockSpawn fills the top rows where every piece spawns.
func blockSpawn(g *game.Grid) {
	for y := 0; y < 4; y++ {
		for x := 3; x < 7; x++ {
			g.Set(x, y, 7)
		}
	}
}
