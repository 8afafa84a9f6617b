package terminal

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/tetra/game"
	"github.com/plus3/tetra/render"
)

// Key identifies a terminal key press. Printable keys use tcell.KeyRune and
// a lower-cased Rune.
type Key struct {
	Code tcell.Key
	Rune rune
}

func runeKey(r rune) Key {
	return Key{Code: tcell.KeyRune, Rune: unicode.ToLower(r)}
}

var (
	themeKey = runeKey('t')
	quitKey  = runeKey('q')
)

var namedKeys = map[string]tcell.Key{
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"enter":     tcell.KeyEnter,
	"esc":       tcell.KeyEscape,
	"escape":    tcell.KeyEscape,
	"tab":       tcell.KeyTab,
	"backspace": tcell.KeyBackspace2,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pgup":      tcell.KeyPgUp,
	"pgdn":      tcell.KeyPgDn,
	"insert":    tcell.KeyInsert,
	"delete":    tcell.KeyDelete,
}

// DefaultKeys matches the desktop layout; h/l/j/k work as well.
var DefaultKeys = map[game.Command][]Key{
	game.MoveLeft:    {{Code: tcell.KeyLeft}, runeKey('h')},
	game.MoveRight:   {{Code: tcell.KeyRight}, runeKey('l')},
	game.SoftDrop:    {{Code: tcell.KeyDown}, runeKey('j')},
	game.HardDrop:    {runeKey(' ')},
	game.RotateCW:    {{Code: tcell.KeyUp}, runeKey('k'), runeKey('x')},
	game.RotateCCW:   {runeKey('z')},
	game.TogglePause: {runeKey('p'), {Code: tcell.KeyEscape}},
	game.Restart:     {runeKey('r')},
}

// ParseKey accepts a single character, "space", or a special key name such
// as "left" or "enter". Names are case-insensitive.
func ParseKey(name string) (Key, bool) {
	lower := strings.ToLower(name)
	if lower == "space" {
		return runeKey(' '), true
	}
	if code, ok := namedKeys[lower]; ok {
		return Key{Code: code}, true
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return runeKey(r), true
	}
	return Key{}, false
}

// KeyOf normalizes a tcell event.
func KeyOf(ev *tcell.EventKey) Key {
	if ev.Key() == tcell.KeyRune {
		return runeKey(ev.Rune())
	}
	return Key{Code: ev.Key()}
}

// NewKeymap merges configured bindings over DefaultKeys.
func NewKeymap(bindings map[game.Command][]string) (*render.Keymap[Key], error) {
	return render.NewKeymap(DefaultKeys, bindings, ParseKey)
}
