package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/tetra/game"
)

// FrameHistory is a ring of recent frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	index   int
	filled  int
}

func NewFrameHistory(frames int) *FrameHistory {
	if frames <= 0 {
		frames = 1
	}
	return &FrameHistory{samples: make([]float32, frames)}
}

// Push records one frame time.
func (h *FrameHistory) Push(dt time.Duration) {
	h.samples[h.index] = float32(dt.Seconds() * 1000)
	h.index = (h.index + 1) % len(h.samples)
	if h.filled < len(h.samples) {
		h.filled++
	}
}

// Average is the mean of the recorded samples, 0 before the first push.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, ms := range h.samples[:h.filled] {
		sum += ms
	}
	return sum / float32(h.filled)
}

// FrameTimer measures the time between successive Tick calls.
type FrameTimer struct {
	last time.Time
	now  func() time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{last: time.Now(), now: time.Now}
}

// Tick returns the time since the previous Tick.
func (ft *FrameTimer) Tick() time.Duration {
	now := ft.now()
	d := now.Sub(ft.last)
	ft.last = now
	return d
}

func (o *Overlay) renderPerformance(stats *game.LoopStats) {
	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avg := o.history.Average()
	fps := float32(0)
	if avg > 0 {
		fps = 1000 / avg
	}
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, fps))
	imgui.Text(fmt.Sprintf("Ticks: %d  Drops: %d  Commands: %d", stats.Ticks, stats.Drops, stats.Commands))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &o.history.samples[0], int32(len(o.history.samples)))

	if imgui.TreeNodeStr("Phases") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("PhaseTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Phase")
			imgui.TableSetupColumn("Count")
			imgui.TableSetupColumn("Min")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, p := range stats.Phases {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(p.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", p.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(p.MinDuration.String())
				imgui.TableNextColumn()
				imgui.Text(p.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(p.MaxDuration.String())
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Line Clears") {
		imgui.Text(fmt.Sprintf("Sweeps: %d", stats.Sweeps))
		for rows := 1; rows <= 4; rows++ {
			imgui.BulletText(fmt.Sprintf("%d row(s): %d", rows, stats.Clears[rows]))
		}
		imgui.TreePop()
	}

	imgui.End()
}
