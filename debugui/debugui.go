// Package debugui draws Dear ImGui windows that inspect a running game: the
// run state, loop timings and the raw board.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/tetra/game"
)

// Overlay owns the debug windows. Build must run between the backend's
// BeginFrame and EndFrame.
type Overlay struct {
	history *FrameHistory
	timer   *FrameTimer
}

// New creates an overlay that plots the last historyFrames frame times.
func New(historyFrames int) *Overlay {
	return &Overlay{
		history: NewFrameHistory(historyFrames),
		timer:   NewFrameTimer(),
	}
}

// Build emits this frame's windows.
func (o *Overlay) Build(loop *game.Loop) {
	o.history.Push(o.timer.Tick())

	o.renderInspector(loop)
	o.renderPerformance(loop.Stats())
	o.renderBoard(loop)
}

// WantsKeyboard reports whether ImGui has keyboard focus.
func WantsKeyboard() bool {
	return imgui.CurrentIO().WantCaptureKeyboard()
}
