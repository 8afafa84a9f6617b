package game

import (
	"context"
	"fmt"
	"time"

	"github.com/kamstrup/intmap"
)

// LoopStats provides statistics about loop execution.
type LoopStats struct {
	Ticks    int64
	Drops    int64
	Commands int64
	Sweeps   int64
	Phases   []PhaseStats
	// Clears maps rows cleared in one sweep (1-4) to how often it happened.
	Clears map[int]int64
}

// PhaseStats provides timing statistics for one part of a frame.
type PhaseStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type phaseStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func newPhaseStats(name string) *phaseStatsInternal {
	return &phaseStatsInternal{
		name:        name,
		minDuration: time.Duration(1<<63 - 1),
	}
}

func (p *phaseStatsInternal) record(d time.Duration) {
	p.executionCount++
	p.lastDuration = d
	p.totalDuration += d
	if d < p.minDuration {
		p.minDuration = d
	}
	if d > p.maxDuration {
		p.maxDuration = d
	}
}

func (p *phaseStatsInternal) export() PhaseStats {
	avg := time.Duration(0)
	minDuration := time.Duration(0)
	if p.executionCount > 0 {
		avg = p.totalDuration / time.Duration(p.executionCount)
		minDuration = p.minDuration
	}
	return PhaseStats{
		Name:           p.name,
		ExecutionCount: p.executionCount,
		MinDuration:    minDuration,
		MaxDuration:    p.maxDuration,
		AvgDuration:    avg,
		LastDuration:   p.lastDuration,
		TotalDuration:  p.totalDuration,
	}
}

// Loop drives an Engine from frame callbacks. Each Tick performs at most one
// gravity drop followed by a render. Commands are applied synchronously
// between ticks.
type Loop struct {
	engine   *Engine
	renderer Renderer

	accumulator time.Duration
	last        time.Time
	synced      bool

	ticks    int64
	drops    int64
	commands int64
	sweeps   int64
	clears   *intmap.Map[int, int64]
	tick     *phaseStatsInternal
	render   *phaseStatsInternal
}

// NewLoop creates a loop around engine. A nil renderer discards frames.
func NewLoop(engine *Engine, renderer Renderer) *Loop {
	if renderer == nil {
		renderer = RendererFunc(func(*Frame) {})
	}
	l := &Loop{
		engine:   engine,
		renderer: renderer,
		clears:   intmap.New[int, int64](4),
		tick:     newPhaseStats("tick"),
		render:   newPhaseStats("render"),
	}
	engine.OnSweep(l.countSweep)
	return l
}

func (l *Loop) countSweep(res SweepResult) {
	if res.Rows == 0 {
		return
	}
	l.sweeps++
	n, _ := l.clears.Get(res.Rows)
	l.clears.Put(res.Rows, n+1)
}

// Engine returns the driven engine.
func (l *Loop) Engine() *Engine {
	return l.engine
}

// State returns the current loop state.
func (l *Loop) State() State {
	return l.engine.State()
}

// Tick advances the loop to now. While running, elapsed time accumulates and
// once it reaches the drop interval the active piece soft drops. Paused and
// finished loops do nothing.
func (l *Loop) Tick(now time.Time) {
	if l.engine.State() != StateRunning {
		l.synced = false
		return
	}

	start := time.Now()
	if !l.synced {
		l.last = now
		l.synced = true
	}
	l.accumulator += now.Sub(l.last)
	l.last = now

	if l.accumulator >= l.engine.run.Interval {
		l.engine.SoftDrop()
		l.accumulator = 0
		l.drops++
	}
	l.ticks++
	l.tick.record(time.Since(start))

	l.Render()
}

// Apply executes a command. Movement, rotation and drops are ignored unless
// the loop is running.
func (l *Loop) Apply(cmd Command) {
	l.commands++

	switch cmd {
	case TogglePause:
		l.TogglePause()
		return
	case Restart:
		l.Restart()
		return
	}

	if l.engine.State() != StateRunning {
		return
	}

	switch cmd {
	case MoveLeft:
		l.engine.Move(-1)
	case MoveRight:
		l.engine.Move(1)
	case SoftDrop:
		l.engine.SoftDrop()
		l.accumulator = 0
	case HardDrop:
		l.engine.HardDrop()
		l.accumulator = 0
	case RotateCW:
		l.engine.Rotate(1)
	case RotateCCW:
		l.engine.Rotate(-1)
	default:
		panic(fmt.Sprintf("game: unknown command %d", int(cmd)))
	}

	l.Render()
}

// TogglePause switches between running and paused. Resuming resynchronizes
// the time base so the pause does not count as elapsed time.
func (l *Loop) TogglePause() {
	if l.engine.State() == StateGameOver {
		return
	}
	l.engine.SetPaused(!l.engine.run.Paused)
	l.synced = false
	l.Render()
}

// Restart begins a new run and resumes ticking.
func (l *Loop) Restart() {
	l.engine.Restart()
	l.accumulator = 0
	l.synced = false
	l.Render()
}

// Render hands a snapshot of the engine to the renderer.
func (l *Loop) Render() {
	start := time.Now()
	l.renderer.Render(l.engine.Frame())
	l.render.record(time.Since(start))
}

// Run ticks the loop at the given interval until the context is cancelled.
func (l *Loop) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.Tick(now)
		}
	}
}

// Stats returns statistics about loop execution.
func (l *Loop) Stats() *LoopStats {
	stats := &LoopStats{
		Ticks:    l.ticks,
		Drops:    l.drops,
		Commands: l.commands,
		Sweeps:   l.sweeps,
		Phases:   []PhaseStats{l.tick.export(), l.render.export()},
		Clears:   make(map[int]int64, l.clears.Len()),
	}
	for rows := 1; rows < len(linePoints); rows++ {
		if n, ok := l.clears.Get(rows); ok {
			stats.Clears[rows] = n
		}
	}
	return stats
}
