package game_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/tetra/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frameRecorder struct {
	frames []*game.Frame
}

func (r *frameRecorder) Render(f *game.Frame) {
	r.frames = append(r.frames, f)
}

func (r *frameRecorder) last() *game.Frame {
	return r.frames[len(r.frames)-1]
}

func newTestLoop(kinds ...game.Kind) (*game.Loop, *frameRecorder) {
	rec := &frameRecorder{}
	e := game.NewEngine(game.WithPicker(sequence(kinds...)))
	return game.NewLoop(e, rec), rec
}

func TestLoopTick(t *testing.T) {
	loop, rec := newTestLoop(game.KindO)
	t0 := time.Unix(1000, 0)

	loop.Tick(t0)
	assert.Equal(t, 0, loop.Engine().Active().Pos.Y)

	loop.Tick(t0.Add(500 * time.Millisecond))
	assert.Equal(t, 0, loop.Engine().Active().Pos.Y)

	loop.Tick(t0.Add(1000 * time.Millisecond))
	assert.Equal(t, 1, loop.Engine().Active().Pos.Y)

	loop.Tick(t0.Add(1999 * time.Millisecond))
	assert.Equal(t, 1, loop.Engine().Active().Pos.Y)

	loop.Tick(t0.Add(2000 * time.Millisecond))
	assert.Equal(t, 2, loop.Engine().Active().Pos.Y)

	assert.Len(t, rec.frames, 5, "every running tick renders")
	assert.Equal(t, 2, rec.last().Active.Pos.Y)

	stats := loop.Stats()
	assert.Equal(t, int64(5), stats.Ticks)
	assert.Equal(t, int64(2), stats.Drops)
}

func TestLoopPause(t *testing.T) {
	loop, rec := newTestLoop(game.KindO)
	t0 := time.Unix(1000, 0)

	loop.Tick(t0)
	loop.Tick(t0.Add(900 * time.Millisecond))

	loop.Apply(game.TogglePause)
	require.Equal(t, game.StatePaused, loop.State())
	assert.Equal(t, game.StatePaused, rec.last().State)
	rendered := len(rec.frames)

	loop.Tick(t0.Add(5 * time.Second))
	loop.Apply(game.MoveLeft)
	loop.Apply(game.HardDrop)
	assert.Equal(t, game.Position{X: 4, Y: 0}, loop.Engine().Active().Pos)
	assert.Len(t, rec.frames, rendered, "paused loop does not render")

	loop.Apply(game.TogglePause)
	require.Equal(t, game.StateRunning, loop.State())

	// The pause must not count as elapsed time.
	loop.Tick(t0.Add(60 * time.Second))
	assert.Equal(t, 0, loop.Engine().Active().Pos.Y)

	loop.Tick(t0.Add(60*time.Second + 100*time.Millisecond))
	assert.Equal(t, 1, loop.Engine().Active().Pos.Y, "accumulated time before the pause is kept")
}

func TestLoopCommands(t *testing.T) {
	loop, rec := newTestLoop(game.KindT, game.KindO)

	loop.Apply(game.MoveLeft)
	assert.Equal(t, 2, loop.Engine().Active().Pos.X)

	loop.Apply(game.MoveRight)
	loop.Apply(game.MoveRight)
	assert.Equal(t, 4, loop.Engine().Active().Pos.X)

	before := loop.Engine().Active().Shape.Clone()
	loop.Apply(game.RotateCW)
	loop.Apply(game.RotateCCW)
	assert.True(t, before.Equal(loop.Engine().Active().Shape))

	loop.Apply(game.SoftDrop)
	assert.Equal(t, 1, loop.Engine().Active().Pos.Y)

	loop.Apply(game.HardDrop)
	assert.Equal(t, game.KindO, loop.Engine().Active().Kind)
	assert.Equal(t, 4, loop.Engine().Grid().Filled())

	assert.Len(t, rec.frames, 7)
	assert.Equal(t, int64(7), loop.Stats().Commands)
}

func TestLoopHardDropResetsAccumulator(t *testing.T) {
	loop, _ := newTestLoop(game.KindO)
	t0 := time.Unix(1000, 0)

	loop.Tick(t0)
	loop.Tick(t0.Add(900 * time.Millisecond))
	loop.Apply(game.HardDrop)

	loop.Tick(t0.Add(1000 * time.Millisecond))
	assert.Equal(t, 0, loop.Engine().Active().Pos.Y)
}

func TestLoopGameOver(t *testing.T) {
	loop, rec := newTestLoop(game.KindT)
	t0 := time.Unix(1000, 0)
	loop.Tick(t0)

	blockSpawn(loop.Engine().Grid())
	loop.Engine().Spawn()
	require.Equal(t, game.StateGameOver, loop.State())
	rendered := len(rec.frames)

	loop.Tick(t0.Add(10 * time.Second))
	loop.Apply(game.TogglePause)
	loop.Apply(game.MoveLeft)
	assert.Equal(t, game.StateGameOver, loop.State())
	assert.Len(t, rec.frames, rendered)

	loop.Apply(game.Restart)
	assert.Equal(t, game.StateRunning, loop.State())
	f := rec.last()
	assert.Equal(t, game.StateRunning, f.State)
	assert.Nil(t, f.Summary)
	require.NotNil(t, f.Active)

	loop.Tick(t0.Add(20 * time.Second))
	assert.Equal(t, 0, loop.Engine().Active().Pos.Y, "restart resynchronizes the time base")
}

func TestLoopGameOverFrameCarriesSummary(t *testing.T) {
	loop, rec := newTestLoop(game.KindO)
	fillBoard(t, loop.Engine().Grid(), "one-gap")
	loop.Apply(game.HardDrop)
	blockSpawn(loop.Engine().Grid())
	loop.Engine().Spawn()

	loop.Render()

	f := rec.last()
	assert.Equal(t, game.StateGameOver, f.State)
	require.NotNil(t, f.Summary)
	assert.Equal(t, 40, f.Summary.Score)
	assert.Nil(t, f.Active)
}

func TestLoopStatsClears(t *testing.T) {
	loop, _ := newTestLoop(game.KindI, game.KindI, game.KindO, game.KindI)

	fillBoard(t, loop.Engine().Grid(), "four-gap")
	loop.Apply(game.HardDrop)
	fillBoard(t, loop.Engine().Grid(), "three-gap")
	loop.Apply(game.HardDrop)
	fillBoard(t, loop.Engine().Grid(), "two-gap")
	loop.Apply(game.HardDrop)
	loop.Apply(game.HardDrop)

	stats := loop.Stats()
	assert.Equal(t, int64(3), stats.Sweeps)
	assert.Equal(t, map[int]int64{2: 1, 3: 1, 4: 1}, stats.Clears)
	require.Len(t, stats.Phases, 2)
	assert.Equal(t, "tick", stats.Phases[0].Name)
	assert.Equal(t, "render", stats.Phases[1].Name)
	assert.Equal(t, int64(4), stats.Phases[1].ExecutionCount)
	assert.Equal(t, time.Duration(0), stats.Phases[0].MinDuration)
}

func TestLoopUnknownCommandPanics(t *testing.T) {
	loop, _ := newTestLoop(game.KindO)
	assert.Panics(t, func() {
		loop.Apply(game.Command(99))
	})
}

func TestLoopRun(t *testing.T) {
	loop, rec := newTestLoop(game.KindO)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		loop.Run(ctx, time.Millisecond)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	assert.NotEmpty(t, rec.frames)
	assert.Greater(t, loop.Stats().Ticks, int64(0))
}

func TestNilRenderer(t *testing.T) {
	loop := game.NewLoop(game.NewEngine(), nil)
	assert.NotPanics(t, func() {
		loop.Tick(time.Now())
		loop.Apply(game.HardDrop)
	})
}
