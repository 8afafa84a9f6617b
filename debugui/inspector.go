package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/tetra/game"
)

// inspected is what the Run State window shows.
type inspected struct {
	State     game.State
	Mode      game.Mode
	HighScore int
	Run       game.RunState
	Summary   *game.Summary
}

func (o *Overlay) renderInspector(loop *game.Loop) {
	if !imgui.BeginV("Run State", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	e := loop.Engine()
	rows := Inspect(inspected{
		State:     e.State(),
		Mode:      e.Mode(),
		HighScore: e.HighScore(),
		Run:       e.Run(),
		Summary:   e.Summary(),
	})
	renderRows(rows)

	imgui.Separator()
	paused := e.State() == game.StatePaused
	if imgui.Checkbox("Paused", &paused) {
		loop.TogglePause()
	}
	imgui.SameLine()
	if imgui.Button("Restart") {
		loop.Restart()
	}

	imgui.End()
}

// renderRows draws flattened rows as a tree; collapsed groups skip their
// children.
func renderRows(rows []Row) {
	open := []bool{true}
	for _, r := range rows {
		// Close groups that ended before this row.
		for len(open) > r.Depth+1 {
			if open[len(open)-1] {
				imgui.TreePop()
			}
			open = open[:len(open)-1]
		}
		if !open[len(open)-1] {
			if r.Group {
				open = append(open, false)
			}
			continue
		}
		if r.Group {
			open = append(open, imgui.TreeNodeStr(r.Name))
			continue
		}
		imgui.Text(fmt.Sprintf("%s: %s", r.Name, r.Value))
	}
	for len(open) > 1 {
		if open[len(open)-1] {
			imgui.TreePop()
		}
		open = open[:len(open)-1]
	}
}

// BoardText renders a grid as one string per row, '.' for empty cells and the
// color id otherwise.
func BoardText(g *game.Grid) []string {
	out := make([]string, 0, game.Rows)
	for _, row := range g.Rows() {
		var b strings.Builder
		for _, c := range row {
			if c == game.Empty {
				b.WriteByte('.')
				continue
			}
			b.WriteByte('0' + byte(c))
		}
		out = append(out, b.String())
	}
	return out
}

func (o *Overlay) renderBoard(loop *game.Loop) {
	if !imgui.BeginV("Board", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	e := loop.Engine()
	if p := e.Active(); p != nil {
		imgui.Text(fmt.Sprintf("Active: %s at (%d, %d), lands at %d", p.Kind, p.Pos.X, p.Pos.Y, e.GhostY()))
	}
	imgui.Text(fmt.Sprintf("Next: %s", e.Next()))
	imgui.Text(fmt.Sprintf("Filled: %d", e.Grid().Filled()))
	imgui.Separator()
	for _, line := range BoardText(e.Grid()) {
		imgui.Text(line)
	}
	imgui.End()
}
