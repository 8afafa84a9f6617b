package main

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/plus3/tetra/game"
	"github.com/plus3/tetra/render"
)

var defaultKeys = map[game.Command][]int32{
	game.MoveLeft:    {rl.KeyLeft},
	game.MoveRight:   {rl.KeyRight},
	game.SoftDrop:    {rl.KeyDown},
	game.HardDrop:    {rl.KeySpace},
	game.RotateCW:    {rl.KeyUp, rl.KeyX},
	game.RotateCCW:   {rl.KeyZ},
	game.TogglePause: {rl.KeyP, rl.KeyEscape},
	game.Restart:     {rl.KeyR},
}

var namedKeys = map[string]int32{
	"left":      rl.KeyLeft,
	"right":     rl.KeyRight,
	"up":        rl.KeyUp,
	"down":      rl.KeyDown,
	"space":     rl.KeySpace,
	"enter":     rl.KeyEnter,
	"escape":    rl.KeyEscape,
	"esc":       rl.KeyEscape,
	"tab":       rl.KeyTab,
	"backspace": rl.KeyBackspace,
}

// parseKey accepts a letter, a digit or a name from namedKeys. raylib uses
// the upper-case ASCII code for letter keys.
func parseKey(name string) (int32, bool) {
	lower := strings.ToLower(name)
	if k, ok := namedKeys[lower]; ok {
		return k, true
	}
	if len(name) == 1 {
		c := strings.ToUpper(name)[0]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return int32(c), true
		}
	}
	return 0, false
}

func newKeymap(bindings map[game.Command][]string) (*render.Keymap[int32], error) {
	return render.NewKeymap(defaultKeys, bindings, parseKey)
}

func repeatable(cmd game.Command) bool {
	return cmd == game.MoveLeft || cmd == game.MoveRight || cmd == game.SoftDrop
}

// pollKeys pushes a command for every bound key pressed this frame.
// Movement keys also fire on the OS key repeat.
func pollKeys(keys *render.Keymap[int32], cmds *game.Commands) {
	for _, k := range keys.Keys() {
		cmd, _ := keys.Lookup(k)
		if rl.IsKeyPressed(k) || (repeatable(cmd) && rl.IsKeyPressedRepeat(k)) {
			cmds.Push(cmd)
		}
	}
}
