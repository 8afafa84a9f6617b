package ebiten

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/tetra/game"
	"github.com/plus3/tetra/render"
	"github.com/plus3/tetra/store"
)

// fakeKeys holds keys for a number of ticks; advance moves every held key
// one tick forward.
type fakeKeys map[ebiten.Key]int

func (f fakeKeys) duration(k ebiten.Key) int { return f[k] }

func (f fakeKeys) advance() {
	for k := range f {
		f[k]++
	}
}

func newTestGame(t *testing.T, opts Options) (*Game, fakeKeys, *time.Time) {
	t.Helper()
	engine := game.NewEngine(game.WithPicker(func() game.Kind { return game.KindO }))
	g, err := NewGame(engine, opts)
	require.NoError(t, err)

	keys := fakeKeys{}
	now := time.Unix(0, 0)
	g.held = keys.duration
	g.now = func() time.Time { return now }
	return g, keys, &now
}

func TestFires(t *testing.T) {
	tests := []struct {
		cmd  game.Command
		d    int
		want bool
	}{
		{game.MoveLeft, 1, true},
		{game.MoveLeft, 2, false},
		{game.MoveLeft, repeatDelay - 1, false},
		{game.MoveLeft, repeatDelay, true},
		{game.MoveLeft, repeatDelay + 1, false},
		{game.MoveLeft, repeatDelay + repeatInterval, true},
		{game.SoftDrop, repeatDelay, true},
		{game.HardDrop, 1, true},
		{game.HardDrop, repeatDelay, false},
		{game.RotateCW, repeatDelay + repeatInterval, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fires(tt.cmd, tt.d), "%s held %d", tt.cmd, tt.d)
	}
}

func TestParseKey(t *testing.T) {
	k, ok := ParseKey("Space")
	require.True(t, ok)
	assert.Equal(t, ebiten.KeySpace, k)

	_, ok = ParseKey("Hyper")
	assert.False(t, ok)
}

func TestNewGameRejectsBadBindings(t *testing.T) {
	_, err := NewGame(game.NewEngine(), Options{Bindings: map[game.Command][]string{game.HardDrop: {"Hyper"}}})
	assert.Error(t, err)
}

func TestUpdateAppliesInput(t *testing.T) {
	g, keys, _ := newTestGame(t, Options{})
	require.NotNil(t, g.frame, "the first frame is rendered on construction")
	startX := g.frame.Active.Pos.X

	keys[ebiten.KeyArrowLeft] = 1
	require.NoError(t, g.Update())
	assert.Equal(t, startX-1, g.frame.Active.Pos.X)

	// Held without repeat: nothing until the delay elapses.
	for i := 2; i < repeatDelay; i++ {
		keys.advance()
		require.NoError(t, g.Update())
	}
	assert.Equal(t, startX-1, g.frame.Active.Pos.X)

	keys.advance()
	require.NoError(t, g.Update())
	assert.Equal(t, startX-2, g.frame.Active.Pos.X)
}

func TestUpdateTicksGravity(t *testing.T) {
	g, _, now := newTestGame(t, Options{})

	require.NoError(t, g.Update())
	assert.Equal(t, 0, g.frame.Active.Pos.Y)

	*now = now.Add(game.DefaultInterval)
	require.NoError(t, g.Update())
	assert.Equal(t, 1, g.frame.Active.Pos.Y)
}

func TestPauseKey(t *testing.T) {
	g, keys, _ := newTestGame(t, Options{Bindings: map[game.Command][]string{
		game.TogglePause: {"Enter"},
	}})

	keys[ebiten.KeyEnter] = 1
	require.NoError(t, g.Update())
	assert.Equal(t, game.StatePaused, g.frame.State)

	delete(keys, ebiten.KeyEnter)
	keys[ebiten.KeyP] = 1
	require.NoError(t, g.Update())
	assert.Equal(t, game.StatePaused, g.frame.State, "P is no longer bound")
}

func TestThemeKey(t *testing.T) {
	m := store.NewMemory()
	require.NoError(t, m.SaveTheme("light"))

	g, keys, _ := newTestGame(t, Options{Theme: render.ThemeDark, Themes: m})
	assert.Equal(t, render.ThemeLight, g.Theme(), "saved theme wins over the default")

	keys[ThemeKey] = 1
	require.NoError(t, g.Update())
	assert.Equal(t, render.ThemeDark, g.Theme())

	saved, err := m.LoadTheme()
	require.NoError(t, err)
	assert.Equal(t, "dark", saved)

	keys.advance()
	require.NoError(t, g.Update())
	assert.Equal(t, render.ThemeDark, g.Theme(), "holding the key does not repeat")
}

type fakeOverlay struct {
	keyboard bool
	updates  int
	w, h     int
}

func (o *fakeOverlay) Update(*game.Loop)   { o.updates++ }
func (o *fakeOverlay) Draw(*ebiten.Image)  {}
func (o *fakeOverlay) Layout(w, h int)     { o.w, o.h = w, h }
func (o *fakeOverlay) WantsKeyboard() bool { return o.keyboard }

func TestOverlayCapturesKeyboard(t *testing.T) {
	o := &fakeOverlay{keyboard: true}
	g, keys, _ := newTestGame(t, Options{Overlay: o, Scale: 10})
	startX := g.frame.Active.Pos.X

	keys[ebiten.KeyArrowRight] = 1
	require.NoError(t, g.Update())
	assert.Equal(t, startX, g.frame.Active.Pos.X)
	assert.Equal(t, 1, o.updates)

	w, h := g.Layout(1280, 720)
	assert.Equal(t, 1280, o.w)
	assert.Equal(t, 720, o.h)
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)

	w, h = g.Size()
	assert.Equal(t, 160, w)
	assert.Equal(t, 200, h)
}

func TestLayoutWithoutOverlay(t *testing.T) {
	g, _, _ := newTestGame(t, Options{Scale: 10})
	w, h := g.Layout(1280, 720)
	assert.Equal(t, 160, w)
	assert.Equal(t, 200, h)
}
