package render

import (
	"fmt"

	"github.com/plus3/tetra/game"
)

// Keymap resolves frontend key values to commands. K is whatever the
// frontend polls: an ebiten.Key, a tcell key or a raylib key code.
type Keymap[K comparable] struct {
	commands map[K]game.Command
	keys     []K
}

// NewKeymap starts from defaults and replaces the keys of every command
// named in overrides. parse turns a configured key name into a K.
func NewKeymap[K comparable](defaults map[game.Command][]K, overrides map[game.Command][]string, parse func(name string) (K, bool)) (*Keymap[K], error) {
	bound := make(map[game.Command][]K, len(defaults))
	for cmd, keys := range defaults {
		bound[cmd] = keys
	}
	for cmd, names := range overrides {
		keys := make([]K, 0, len(names))
		for _, name := range names {
			k, ok := parse(name)
			if !ok {
				return nil, fmt.Errorf("unknown key %q for %s", name, cmd)
			}
			keys = append(keys, k)
		}
		bound[cmd] = keys
	}

	m := &Keymap[K]{commands: make(map[K]game.Command)}
	for _, cmd := range game.AllCommands {
		for _, k := range bound[cmd] {
			if prev, dup := m.commands[k]; dup {
				return nil, fmt.Errorf("key %v bound to both %s and %s", k, prev, cmd)
			}
			m.commands[k] = cmd
			m.keys = append(m.keys, k)
		}
	}
	return m, nil
}

// Lookup returns the command bound to k.
func (m *Keymap[K]) Lookup(k K) (game.Command, bool) {
	cmd, ok := m.commands[k]
	return cmd, ok
}

// Keys lists every bound key, grouped by command in declaration order.
func (m *Keymap[K]) Keys() []K {
	return m.keys
}
