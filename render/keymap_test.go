package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/tetra/game"
	"github.com/plus3/tetra/render"
)

var defaultKeys = map[game.Command][]string{
	game.MoveLeft:    {"left"},
	game.MoveRight:   {"right"},
	game.SoftDrop:    {"down"},
	game.HardDrop:    {"space"},
	game.RotateCW:    {"up", "x"},
	game.RotateCCW:   {"z"},
	game.TogglePause: {"p"},
	game.Restart:     {"r"},
}

func parseLower(name string) (string, bool) {
	if name == "" || strings.ToLower(name) != name {
		return "", false
	}
	return name, true
}

func TestKeymapDefaults(t *testing.T) {
	m, err := render.NewKeymap(defaultKeys, nil, parseLower)
	require.NoError(t, err)

	cmd, ok := m.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, game.RotateCW, cmd)

	_, ok = m.Lookup("q")
	assert.False(t, ok)

	assert.Equal(t, []string{"left", "right", "down", "space", "up", "x", "z", "p", "r"}, m.Keys())
}

func TestKeymapOverrides(t *testing.T) {
	m, err := render.NewKeymap(defaultKeys, map[game.Command][]string{
		game.HardDrop: {"enter", "w"},
	}, parseLower)
	require.NoError(t, err)

	_, ok := m.Lookup("space")
	assert.False(t, ok, "override replaces the default keys")

	cmd, ok := m.Lookup("w")
	require.True(t, ok)
	assert.Equal(t, game.HardDrop, cmd)
}

func TestKeymapErrors(t *testing.T) {
	_, err := render.NewKeymap(defaultKeys, map[game.Command][]string{
		game.Restart: {"Enter"},
	}, parseLower)
	assert.EqualError(t, err, `unknown key "Enter" for restart`)

	_, err = render.NewKeymap(defaultKeys, map[game.Command][]string{
		game.Restart: {"p"},
	}, parseLower)
	assert.EqualError(t, err, "key p bound to both toggle_pause and restart")
}
