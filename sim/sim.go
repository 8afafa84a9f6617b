// Package sim plays headless games with a random-input player. Games run
// on a simulated clock, so a seed fully determines every run.
package sim

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/plus3/tetra/game"
)

// Options configures a batch of games.
type Options struct {
	Games int
	Seed  uint64
	// MaxSteps bounds a single game. A game that hits it is unfinished.
	MaxSteps int
	// Step is the simulated time between player inputs.
	Step    time.Duration
	Mode    game.Mode
	Storage game.Storage
	Logger  zerolog.Logger
}

func (o *Options) defaults() {
	if o.Games <= 0 {
		o.Games = 1
	}
	if o.MaxSteps <= 0 {
		o.MaxSteps = 100_000
	}
	if o.Step <= 0 {
		o.Step = 50 * time.Millisecond
	}
}

// Result is the outcome of one game.
type Result struct {
	Seed     uint64
	Finished bool
	Steps    int
	Summary  game.Summary
	Stats    *game.LoopStats
	// StepTimes holds the wall time of every Apply plus Tick.
	StepTimes []time.Duration
}

// weightedCommands is the player's input distribution.
var weightedCommands = []struct {
	cmd    game.Command
	weight int
}{
	{game.MoveLeft, 6},
	{game.MoveRight, 6},
	{game.RotateCW, 3},
	{game.RotateCCW, 2},
	{game.SoftDrop, 4},
	{game.HardDrop, 2},
}

var totalWeight = func() int {
	n := 0
	for _, w := range weightedCommands {
		n += w.weight
	}
	return n
}()

// RandomPlayer picks a movement, rotation or drop. It never pauses or
// restarts.
func RandomPlayer(rng *rand.Rand) game.Command {
	n := rng.IntN(totalWeight)
	for _, w := range weightedCommands {
		if n < w.weight {
			return w.cmd
		}
		n -= w.weight
	}
	return game.SoftDrop
}

// Play runs opts.Games games one after another. Cancelling ctx stops the
// batch and returns the results so far together with ctx.Err().
func Play(ctx context.Context, opts Options) ([]Result, error) {
	opts.defaults()

	results := make([]Result, 0, opts.Games)
	for i := 0; i < opts.Games; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		r := playOne(ctx, opts, opts.Seed+uint64(i))
		opts.Logger.Debug().
			Uint64("seed", r.Seed).
			Int("score", r.Summary.Score).
			Int("lines", r.Summary.Lines).
			Bool("finished", r.Finished).
			Msg("game played")
		results = append(results, r)
	}
	return results, nil
}

func playOne(ctx context.Context, opts Options, seed uint64) Result {
	now := time.Unix(0, 0)
	engineOpts := []game.Option{
		game.WithSeed(seed),
		game.WithMode(opts.Mode),
		game.WithClock(func() time.Time { return now }),
		game.WithLogger(opts.Logger),
	}
	if opts.Storage != nil {
		engineOpts = append(engineOpts, game.WithStorage(opts.Storage))
	}
	engine := game.NewEngine(engineOpts...)
	loop := game.NewLoop(engine, nil)
	player := rand.New(rand.NewPCG(seed, seed^0x5deece66d))

	res := Result{Seed: seed, StepTimes: make([]time.Duration, 0, 1024)}
	for res.Steps < opts.MaxSteps && loop.State() != game.StateGameOver {
		if res.Steps%1024 == 0 && ctx.Err() != nil {
			break
		}
		start := time.Now()
		loop.Apply(RandomPlayer(player))
		now = now.Add(opts.Step)
		loop.Tick(now)
		res.StepTimes = append(res.StepTimes, time.Since(start))
		res.Steps++
	}

	res.Stats = loop.Stats()
	if s := engine.Summary(); s != nil {
		res.Finished = true
		res.Summary = *s
		return res
	}
	run := engine.Run()
	res.Summary = game.Summary{
		Score:     run.Score,
		Lines:     run.Lines,
		Level:     run.Level,
		HighScore: engine.HighScore(),
		Mode:      engine.Mode(),
	}
	return res
}
