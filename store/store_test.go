package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/tetra/game"
	"github.com/plus3/tetra/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAll(t *testing.T) map[store.Kind]store.Store {
	t.Helper()
	dir := t.TempDir()

	backends := map[store.Kind]string{
		store.KindMemory: "",
		store.KindFile:   filepath.Join(dir, "prefs", "tetra.yaml"),
		store.KindSQLite: filepath.Join(dir, "db", "tetra.db"),
	}

	out := make(map[store.Kind]store.Store, len(backends))
	for kind, path := range backends {
		s, err := store.Open(kind, path)
		require.NoError(t, err, "open %s", kind)
		t.Cleanup(func() { _ = s.Close() })
		out[kind] = s
	}
	return out
}

func TestHighScore(t *testing.T) {
	for kind, s := range openAll(t) {
		t.Run(string(kind), func(t *testing.T) {
			score, err := s.LoadHighScore()
			require.NoError(t, err)
			assert.Equal(t, 0, score, "missing high score reads as 0")

			require.NoError(t, s.SaveHighScore(1200))
			score, err = s.LoadHighScore()
			require.NoError(t, err)
			assert.Equal(t, 1200, score)

			require.NoError(t, s.SaveHighScore(4800))
			score, err = s.LoadHighScore()
			require.NoError(t, err)
			assert.Equal(t, 4800, score)
		})
	}
}

func TestTheme(t *testing.T) {
	for kind, s := range openAll(t) {
		t.Run(string(kind), func(t *testing.T) {
			_, err := s.LoadTheme()
			assert.ErrorIs(t, err, store.ErrNotFound)

			require.NoError(t, s.SaveTheme("light"))
			theme, err := s.LoadTheme()
			require.NoError(t, err)
			assert.Equal(t, "light", theme)

			require.NoError(t, s.SaveHighScore(10))
			theme, err = s.LoadTheme()
			require.NoError(t, err)
			assert.Equal(t, "light", theme, "saving the score keeps the theme")
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := store.Open("redis", "")
	assert.EqualError(t, err, `store: unknown backend "redis"`)
}

func TestFilePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetra.yaml")

	s, err := store.NewFile(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveHighScore(300))
	require.NoError(t, s.SaveTheme("dark"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.YAMLEq(t, "high_score: 300\ntheme: dark\n", string(raw))

	s, err = store.NewFile(path)
	require.NoError(t, err)
	score, err := s.LoadHighScore()
	require.NoError(t, err)
	assert.Equal(t, 300, score)
}

func TestFileCorruptValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetra.yaml")
	require.NoError(t, os.WriteFile(path, []byte("high_score: [not a number\n"), 0o644))

	s, err := store.NewFile(path)
	require.NoError(t, err)

	_, err = s.LoadHighScore()
	assert.Error(t, err)

	// The engine falls back to 0 and a later save repairs the file.
	e := game.NewEngine(game.WithStorage(s))
	assert.Equal(t, 0, e.HighScore())

	require.NoError(t, s.SaveHighScore(40))
	score, err := s.LoadHighScore()
	require.NoError(t, err)
	assert.Equal(t, 40, score)
}

func TestSQLiteRuns(t *testing.T) {
	s, err := store.OpenSQLite(filepath.Join(t.TempDir(), "tetra.db"))
	require.NoError(t, err)
	defer s.Close()

	runs := []game.Summary{
		{Score: 100, Lines: 2, Level: 1, Pieces: 12, Duration: 30 * time.Second, Mode: game.ModeNormal},
		{Score: 2500, Lines: 10, Level: 2, Pieces: 40, Duration: 2 * time.Minute, Mode: game.ModeEasy, NewHighScore: true},
		{Score: 300, Lines: 3, Level: 1, Pieces: 15, Duration: 45 * time.Second, Mode: game.ModeNormal},
	}
	for _, r := range runs {
		require.NoError(t, s.RecordRun(r))
	}

	top, err := s.TopRuns(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, top, 2)

	assert.Equal(t, 2500, top[0].Summary.Score)
	assert.Equal(t, game.ModeEasy, top[0].Summary.Mode)
	assert.True(t, top[0].Summary.NewHighScore)
	assert.Equal(t, 2*time.Minute, top[0].Summary.Duration)
	assert.Len(t, top[0].ID, 36)
	assert.NotEqual(t, top[0].ID, top[1].ID)
	assert.Equal(t, 300, top[1].Summary.Score)
	assert.False(t, top[1].Summary.NewHighScore)
}

func TestSQLiteMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetra.db")

	s, err := store.OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveHighScore(700))
	require.NoError(t, s.Close())

	s, err = store.OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	score, err := s.LoadHighScore()
	require.NoError(t, err)
	assert.Equal(t, 700, score)
}

func TestEngineRecordsRunInSQLite(t *testing.T) {
	s, err := store.OpenSQLite(filepath.Join(t.TempDir(), "tetra.db"))
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.SaveHighScore(0))

	e := game.NewEngine(game.WithStorage(s), game.WithPicker(func() game.Kind { return game.KindO }))
	for y := 0; y < game.Rows; y++ {
		e.Grid().Set(4, y, 1)
	}
	e.Spawn()
	require.True(t, e.Run().GameOver)

	top, err := s.TopRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, 2, top[0].Summary.Pieces)
}

func TestMemoryRuns(t *testing.T) {
	m := store.NewMemory()
	e := game.NewEngine(game.WithStorage(m), game.WithPicker(func() game.Kind { return game.KindT }))
	for x := 0; x < game.Cols; x++ {
		e.Grid().Set(x, 1, 3)
	}
	e.Spawn()

	require.Len(t, m.Runs(), 1)
	assert.Equal(t, 0, m.Runs()[0].Score)
}
