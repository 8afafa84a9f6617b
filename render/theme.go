// Package render holds what every frontend shares: theme handling, color
// palettes, board layout and HUD text.
package render

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/plus3/tetra/store"
)

// Theme is the color scheme name persisted under store.KeyTheme.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme maps "light" to ThemeLight and anything else to ThemeDark.
func ParseTheme(s string) Theme {
	if s == string(ThemeLight) {
		return ThemeLight
	}
	return ThemeDark
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// LoadTheme reads the saved theme, falling back when nothing is stored or
// the store fails.
func LoadTheme(s store.ThemeStore, fallback Theme) Theme {
	name, err := s.LoadTheme()
	if errors.Is(err, store.ErrNotFound) {
		return fallback
	}
	if err != nil {
		log.Warn().Err(err).Msg("load theme")
		return fallback
	}
	return ParseTheme(name)
}

// SwitchTheme toggles current and persists the result. A failed save is
// logged and the toggle still takes effect.
func SwitchTheme(s store.ThemeStore, current Theme) Theme {
	next := current.Toggle()
	if err := s.SaveTheme(string(next)); err != nil {
		log.Warn().Err(err).Str("theme", string(next)).Msg("save theme")
	}
	return next
}
