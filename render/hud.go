package render

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/plus3/tetra/game"
)

// HUD formats the side panel text with locale-aware digit grouping.
type HUD struct {
	p *message.Printer
}

// NewHUD creates a HUD for the given language.
func NewHUD(tag language.Tag) *HUD {
	return &HUD{p: message.NewPrinter(tag)}
}

// Number formats n with grouping separators.
func (h *HUD) Number(n int) string {
	return h.p.Sprintf("%d", n)
}

// Lines returns the score panel for f. The NEXT header is present in easy
// mode only.
func (h *HUD) Lines(f *game.Frame) []string {
	out := []string{
		h.p.Sprintf("SCORE %d", f.Run.Score),
		h.p.Sprintf("HIGH  %d", f.HighScore),
		h.p.Sprintf("LEVEL %d", f.Run.Level),
		h.p.Sprintf("LINES %d", f.Run.Lines),
	}
	if f.Next != nil {
		out = append(out, "", "NEXT")
	}
	return out
}

// Status is the overlay banner for the loop state, empty while running.
func (h *HUD) Status(s game.State) string {
	switch s {
	case game.StatePaused:
		return "PAUSED"
	case game.StateGameOver:
		return "GAME OVER"
	}
	return ""
}

// Summary describes a finished run.
func (h *HUD) Summary(s *game.Summary) []string {
	if s == nil {
		return nil
	}
	out := []string{
		h.p.Sprintf("Score  %d", s.Score),
		h.p.Sprintf("Lines  %d", s.Lines),
		h.p.Sprintf("Level  %d", s.Level),
		h.p.Sprintf("Pieces %d", s.Pieces),
		h.p.Sprintf("Time   %s", s.Duration.Round(time.Second)),
	}
	if s.NewHighScore {
		out = append(out, "New high score!")
	}
	return out
}
