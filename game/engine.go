package game

import (
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
)

// Engine owns the grid, the active and queued pieces and the run state. All
// operations run to completion synchronously; illegal moves leave the state
// untouched and report false.
type Engine struct {
	grid   *Grid
	active *Piece
	next   Kind
	run    RunState

	highScore int
	storage   Storage
	mode      Mode

	pick          func() Kind
	startInterval time.Duration
	now           func() time.Time
	log           zerolog.Logger

	pieces    int
	startedAt time.Time
	summary   *Summary
	onSweep   []func(SweepResult)
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used for uniform piece selection.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.pick = func() Kind { return randomKind(rng) }
	}
}

// WithSeed seeds a PCG source for reproducible piece sequences.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithPicker replaces piece selection entirely. Tests use it to script
// piece sequences.
func WithPicker(pick func() Kind) Option {
	return func(e *Engine) {
		e.pick = pick
	}
}

// WithStorage sets the high score store.
func WithStorage(s Storage) Option {
	return func(e *Engine) {
		e.storage = s
	}
}

// WithMode sets the difficulty mode.
func WithMode(m Mode) Option {
	return func(e *Engine) {
		e.mode = m
	}
}

// WithStartInterval overrides the level 1 drop interval.
func WithStartInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.startInterval = d
		}
	}
}

// WithLogger sets the engine logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithClock overrides time.Now for run durations.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an engine, loads the stored high score and spawns the
// first piece pair.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		grid:          NewGrid(),
		startInterval: DefaultInterval,
		now:           time.Now,
		log:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.pick == nil {
		rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		e.pick = func() Kind { return randomKind(rng) }
	}

	e.highScore = e.loadHighScore()
	e.reset()
	return e
}

func (e *Engine) loadHighScore() int {
	if e.storage == nil {
		return 0
	}
	score, err := e.storage.LoadHighScore()
	if err != nil {
		e.log.Warn().Err(err).Msg("high score unavailable, starting from 0")
		return 0
	}
	if score < 0 {
		return 0
	}
	return score
}

func (e *Engine) reset() {
	e.grid.Reset()
	e.run = RunState{
		Level:    1,
		Interval: e.startInterval,
	}
	e.active = nil
	e.next = 0
	e.pieces = 0
	e.summary = nil
	e.startedAt = e.now()
	e.Spawn()
}

// Restart begins a new run with a fresh grid, run state and piece pair.
func (e *Engine) Restart() {
	e.log.Debug().Msg("restart")
	e.reset()
}

// Grid returns the live grid.
func (e *Engine) Grid() *Grid {
	return e.grid
}

// Active returns the live active piece, or nil after game over.
func (e *Engine) Active() *Piece {
	return e.active
}

// Next returns the queued piece kind.
func (e *Engine) Next() Kind {
	return e.next
}

// Run returns a copy of the run state.
func (e *Engine) Run() RunState {
	return e.run
}

// HighScore returns the best score known to the engine.
func (e *Engine) HighScore() int {
	return e.highScore
}

// Mode returns the difficulty mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Summary returns the summary of the finished run, or nil while playing.
func (e *Engine) Summary() *Summary {
	return e.summary
}

// OnSweep registers fn to be called after every sweep that follows a landing.
func (e *Engine) OnSweep(fn func(SweepResult)) {
	e.onSweep = append(e.onSweep, fn)
}

// SetPaused sets the paused flag. It is ignored after game over.
func (e *Engine) SetPaused(paused bool) {
	if e.run.GameOver {
		return
	}
	e.run.Paused = paused
}

// Spawn promotes the queued piece (or picks one when none is queued), queues
// a new one and places the active piece centered on row 0. A spawn that
// collides ends the run.
func (e *Engine) Spawn() {
	kind := e.next
	if kind == 0 {
		kind = e.pick()
	}
	e.next = e.pick()

	p := NewPiece(kind)
	p.Pos = Position{X: (Cols - p.Shape.Width()) / 2, Y: 0}
	e.active = p
	e.pieces++

	e.log.Debug().Stringer("kind", kind).Stringer("next", e.next).Int("x", p.Pos.X).Msg("spawn")

	if Collides(e.grid, p) {
		e.gameOver()
	}
}

func (e *Engine) gameOver() {
	summary := Summary{
		Score:    e.run.Score,
		Lines:    e.run.Lines,
		Level:    e.run.Level,
		Pieces:   e.pieces,
		Duration: e.now().Sub(e.startedAt),
		Mode:     e.mode,
	}

	if e.run.Score > e.highScore {
		e.highScore = e.run.Score
		summary.NewHighScore = true
		if e.storage != nil {
			if err := e.storage.SaveHighScore(e.highScore); err != nil {
				e.log.Warn().Err(err).Int("score", e.highScore).Msg("failed to save high score")
			}
		}
	}
	summary.HighScore = e.highScore

	if rec, ok := e.storage.(RunRecorder); ok {
		if err := rec.RecordRun(summary); err != nil {
			e.log.Warn().Err(err).Msg("failed to record run")
		}
	}

	e.grid.Reset()
	e.active = nil
	e.run.GameOver = true
	e.run.Paused = true
	e.summary = &summary

	e.log.Info().
		Int("score", summary.Score).
		Int("lines", summary.Lines).
		Int("level", summary.Level).
		Bool("new_high_score", summary.NewHighScore).
		Msg("game over")
}

// Move shifts the active piece by dir columns, reverting on collision.
func (e *Engine) Move(dir int) bool {
	if e.active == nil {
		return false
	}
	e.active.Pos.X += dir
	if Collides(e.grid, e.active) {
		e.active.Pos.X -= dir
		return false
	}
	return true
}

// SoftDrop moves the active piece down one row. When blocked, the piece is
// merged at its last legal position, full rows are swept and the next piece
// spawns; the return value then reports true.
func (e *Engine) SoftDrop() bool {
	if e.active == nil {
		return false
	}
	e.active.Pos.Y++
	if !Collides(e.grid, e.active) {
		return false
	}
	e.active.Pos.Y--
	e.land()
	return true
}

// HardDrop moves the active piece to its lowest legal row and lands it. It
// returns the number of rows travelled.
func (e *Engine) HardDrop() int {
	if e.active == nil {
		return 0
	}
	rows := 0
	for {
		e.active.Pos.Y++
		if Collides(e.grid, e.active) {
			e.active.Pos.Y--
			break
		}
		rows++
	}
	e.land()
	return rows
}

func (e *Engine) land() {
	merge(e.grid, e.active)
	res := Sweep(e.grid, &e.run)
	if res.Rows > 0 {
		e.log.Debug().Int("rows", res.Rows).Int("points", res.Points).Int("score", e.run.Score).Msg("sweep")
	}
	if res.LevelUp > 0 {
		e.log.Info().Int("level", e.run.Level).Dur("interval", e.run.Interval).Msg("level up")
	}
	for _, fn := range e.onSweep {
		fn(res)
	}
	e.Spawn()
}

// Rotate turns the active piece clockwise (dir > 0) or counter-clockwise and
// searches for a wall kick of 0, +1, -1, +2, -2, ... columns up to the
// shape width. If every offset collides the rotation is undone.
func (e *Engine) Rotate(dir int) bool {
	if e.active == nil {
		return false
	}
	p := e.active
	x := p.Pos.X
	p.Shape.rotate(dir)

	if !Collides(e.grid, p) {
		return true
	}
	for k := 1; k <= p.Shape.Width(); k++ {
		for _, off := range [2]int{k, -k} {
			p.Pos.X = x + off
			if !Collides(e.grid, p) {
				return true
			}
		}
	}

	p.Shape.rotate(-dir)
	p.Pos.X = x
	return false
}

// GhostY returns the row the active piece would land on if hard dropped.
func (e *Engine) GhostY() int {
	if e.active == nil {
		return 0
	}
	ghost := e.active.Clone()
	for {
		ghost.Pos.Y++
		if Collides(e.grid, ghost) {
			return ghost.Pos.Y - 1
		}
	}
}

// State derives the loop state from the run flags.
func (e *Engine) State() State {
	switch {
	case e.run.GameOver:
		return StateGameOver
	case e.run.Paused:
		return StatePaused
	default:
		return StateRunning
	}
}

// Frame snapshots the engine for rendering. The next piece is only included
// in easy mode.
func (e *Engine) Frame() *Frame {
	f := &Frame{
		Grid:      e.grid.Clone(),
		Run:       e.run,
		HighScore: e.highScore,
		State:     e.State(),
		Mode:      e.mode,
	}
	if e.active != nil {
		f.Active = e.active.Clone()
		f.GhostY = e.GhostY()
	}
	if e.mode == ModeEasy && e.next != 0 {
		f.Next = NewPiece(e.next)
	}
	if e.summary != nil {
		s := *e.summary
		f.Summary = &s
	}
	return f
}
