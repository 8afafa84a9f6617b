package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/tetra/game"
	"github.com/plus3/tetra/render"
)

// Key repeat timing, in ticks (ebiten runs 60 per second).
const (
	repeatDelay    = 12
	repeatInterval = 3
)

// ThemeKey toggles the color theme unless it is bound to a command.
const ThemeKey = ebiten.KeyT

// DefaultKeys mirrors the arrow-key layout of the browser page plus
// rotation, pause and restart.
var DefaultKeys = map[game.Command][]ebiten.Key{
	game.MoveLeft:    {ebiten.KeyArrowLeft},
	game.MoveRight:   {ebiten.KeyArrowRight},
	game.SoftDrop:    {ebiten.KeyArrowDown},
	game.HardDrop:    {ebiten.KeySpace},
	game.RotateCW:    {ebiten.KeyArrowUp, ebiten.KeyX},
	game.RotateCCW:   {ebiten.KeyZ},
	game.TogglePause: {ebiten.KeyP, ebiten.KeyEscape},
	game.Restart:     {ebiten.KeyR},
}

// ParseKey accepts ebiten key names such as "Space", "ArrowLeft" or "A".
func ParseKey(name string) (ebiten.Key, bool) {
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err != nil {
		return 0, false
	}
	return k, true
}

// NewKeymap merges configured bindings over DefaultKeys.
func NewKeymap(bindings map[game.Command][]string) (*render.Keymap[ebiten.Key], error) {
	return render.NewKeymap(DefaultKeys, bindings, ParseKey)
}

// keyDuration reports for how many ticks a key has been held, 0 when up.
type keyDuration func(k ebiten.Key) int

func pressDuration(k ebiten.Key) int {
	return inpututil.KeyPressDuration(k)
}

func repeatable(cmd game.Command) bool {
	switch cmd {
	case game.MoveLeft, game.MoveRight, game.SoftDrop:
		return true
	}
	return false
}

// fires reports whether a key held for d ticks emits its command this tick.
func fires(cmd game.Command, d int) bool {
	if d == 1 {
		return true
	}
	if !repeatable(cmd) || d < repeatDelay {
		return false
	}
	return (d-repeatDelay)%repeatInterval == 0
}

// poll pushes the commands of every key that fires this tick.
func poll(keys *render.Keymap[ebiten.Key], held keyDuration, cmds *game.Commands) {
	for _, k := range keys.Keys() {
		d := held(k)
		if d == 0 {
			continue
		}
		cmd, _ := keys.Lookup(k)
		if fires(cmd, d) {
			cmds.Push(cmd)
		}
	}
}
