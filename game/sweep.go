package game

import "time"

const (
	// LinesPerLevel is the number of cleared lines between level increases.
	LinesPerLevel = 10

	// DefaultInterval is the drop interval at level 1.
	DefaultInterval = 1000 * time.Millisecond

	// MinInterval is the fastest drop interval reachable by leveling.
	MinInterval = 100 * time.Millisecond

	// IntervalStep is subtracted from the interval for each level gained.
	IntervalStep = 100 * time.Millisecond
)

// linePoints maps rows cleared in one sweep to base points.
var linePoints = [...]int{0, 40, 100, 300, 1200}

// Points returns the score for clearing rows at the given level.
func Points(rows, level int) int {
	if rows < 0 {
		return 0
	}
	if rows >= len(linePoints) {
		rows = len(linePoints) - 1
	}
	return linePoints[rows] * level
}

// LevelFor returns the level reached after clearing lines in total.
func LevelFor(lines int) int {
	return lines/LinesPerLevel + 1
}

// NextInterval shortens interval by one step per level gained, never going
// below MinInterval.
func NextInterval(interval time.Duration, levelDelta int) time.Duration {
	if levelDelta <= 0 {
		return interval
	}
	interval -= IntervalStep * time.Duration(levelDelta)
	return max(interval, MinInterval)
}

// SweepResult describes the outcome of one sweep.
type SweepResult struct {
	Rows     int
	Points   int
	LevelUp  int
	Interval time.Duration
}

// Sweep removes every full row, bottom to top, and folds the result into the
// run state. A cleared row index is examined again since the row above has
// moved into it.
func Sweep(grid *Grid, state *RunState) SweepResult {
	rows := 0
	for y := Rows - 1; y >= 0; {
		if grid.IsRowFull(y) {
			grid.ClearRow(y)
			rows++
			continue
		}
		y--
	}

	res := SweepResult{Rows: rows, Interval: state.Interval}
	if rows == 0 {
		return res
	}

	res.Points = Points(rows, state.Level)
	state.Score += res.Points
	state.Lines += rows

	level := LevelFor(state.Lines)
	if level > state.Level {
		res.LevelUp = level - state.Level
		state.Interval = NextInterval(state.Interval, res.LevelUp)
		state.Level = level
	}
	res.Interval = state.Interval

	return res
}
