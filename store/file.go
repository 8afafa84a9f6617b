package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

type fileData struct {
	HighScore int    `yaml:"high_score"`
	Theme     string `yaml:"theme,omitempty"`
}

// File stores preferences in a small YAML document. Every write replaces the
// file through a rename so a crash never leaves it half written.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile returns a store backed by path, creating its directory.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("store: file path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	return &File{path: path}, nil
}

func (f *File) read() (fileData, error) {
	var data fileData
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return data, nil
	}
	if err != nil {
		return data, fmt.Errorf("read %s: %w", f.path, err)
	}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return fileData{}, fmt.Errorf("parse %s: %w", f.path, err)
	}
	return data, nil
}

func (f *File) write(data fileData) error {
	raw, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

func (f *File) update(fn func(*fileData)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	// A corrupt file is overwritten rather than blocking every save.
	data, _ := f.read()
	fn(&data)
	return f.write(data)
}

func (f *File) LoadHighScore() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return 0, err
	}
	if data.HighScore < 0 {
		return 0, fmt.Errorf("%s: negative high score %d", f.path, data.HighScore)
	}
	return data.HighScore, nil
}

func (f *File) SaveHighScore(score int) error {
	return f.update(func(d *fileData) { d.HighScore = score })
}

func (f *File) LoadTheme() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return "", err
	}
	if data.Theme == "" {
		return "", ErrNotFound
	}
	return data.Theme, nil
}

func (f *File) SaveTheme(theme string) error {
	return f.update(func(d *fileData) { d.Theme = theme })
}

func (f *File) Close() error {
	return nil
}
