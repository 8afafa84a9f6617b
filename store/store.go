// Package store persists the high score, the theme preference and, for the
// SQLite backend, a history of finished runs.
//
// A missing high score reads as 0 with no error. A stored value that cannot
// be parsed is reported as an error; the engine treats that as 0 as well.
package store

import (
	"errors"
	"fmt"

	"github.com/plus3/tetra/game"
)

// ErrNotFound is returned when a preference has never been stored.
var ErrNotFound = errors.New("store: not found")

// Keys shared by the key/value backends.
const (
	KeyHighScore = "highScore"
	KeyTheme     = "theme"
)

// ThemeStore persists the visual theme name. The engine never reads it.
type ThemeStore interface {
	LoadTheme() (string, error)
	SaveTheme(theme string) error
}

// Store is the full persistence surface used by frontends.
type Store interface {
	game.Storage
	ThemeStore
	Close() error
}

// Kind names a backend.
type Kind string

const (
	KindMemory Kind = "memory"
	KindFile   Kind = "file"
	KindSQLite Kind = "sqlite"
)

// Open returns the backend named by kind. path is ignored for memory.
func Open(kind Kind, path string) (Store, error) {
	switch kind {
	case KindMemory, "":
		return NewMemory(), nil
	case KindFile:
		return NewFile(path)
	case KindSQLite:
		return OpenSQLite(path)
	}
	return nil, fmt.Errorf("store: unknown backend %q", kind)
}
