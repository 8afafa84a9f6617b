package game

import "time"

// Renderer paints a frame. It is invoked after every committed state change.
type Renderer interface {
	Render(frame *Frame)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(frame *Frame)

// Render calls f(frame).
func (f RendererFunc) Render(frame *Frame) {
	f(frame)
}

// Storage persists the high score between runs.
type Storage interface {
	LoadHighScore() (int, error)
	SaveHighScore(score int) error
}

// RunRecorder is implemented by storages that keep a history of finished runs.
type RunRecorder interface {
	RecordRun(summary Summary) error
}

// Mode selects the difficulty. It only controls whether the next piece is
// surfaced to renderers.
type Mode int

const (
	ModeNormal Mode = iota
	ModeEasy
)

func (m Mode) String() string {
	if m == ModeEasy {
		return "easy"
	}
	return "normal"
}

// ParseMode maps "easy" and "normal" to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "easy":
		return ModeEasy, true
	case "normal", "":
		return ModeNormal, true
	}
	return ModeNormal, false
}

// State is the game loop state.
type State int

const (
	StateRunning State = iota
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game over"
	default:
		return "running"
	}
}

// RunState is the per-run progress record.
type RunState struct {
	Score    int
	Lines    int
	Level    int
	Interval time.Duration
	Paused   bool
	GameOver bool
}

// Summary describes a finished run.
type Summary struct {
	Score        int
	Lines        int
	Level        int
	HighScore    int
	NewHighScore bool
	Pieces       int
	Duration     time.Duration
	Mode         Mode
}

// Frame is a read-only snapshot handed to renderers.
type Frame struct {
	Grid      *Grid
	Active    *Piece
	GhostY    int
	Next      *Piece
	Run       RunState
	HighScore int
	State     State
	Mode      Mode
	Summary   *Summary
}
