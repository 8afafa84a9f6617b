package store

import (
	"sync"

	"github.com/plus3/tetra/game"
)

// Memory keeps everything in process. It is safe for concurrent use.
type Memory struct {
	mu        sync.RWMutex
	highScore int
	theme     string
	runs      []game.Summary
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) LoadHighScore() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.highScore, nil
}

func (m *Memory) SaveHighScore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.highScore = score
	return nil
}

func (m *Memory) LoadTheme() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.theme == "" {
		return "", ErrNotFound
	}
	return m.theme, nil
}

func (m *Memory) SaveTheme(theme string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.theme = theme
	return nil
}

// RecordRun appends the summary to the in-memory history.
func (m *Memory) RecordRun(summary game.Summary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, summary)
	return nil
}

// Runs returns a copy of the recorded history, oldest first.
func (m *Memory) Runs() []game.Summary {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]game.Summary(nil), m.runs...)
}

func (m *Memory) Close() error {
	return nil
}
