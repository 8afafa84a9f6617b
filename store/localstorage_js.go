//go:build js && wasm

package store

import (
	"fmt"
	"strconv"
	"syscall/js"
)

// LocalStorage persists preferences in window.localStorage under the
// "highScore" and "theme" keys.
type LocalStorage struct {
	ls js.Value
}

// NewLocalStorage binds to window.localStorage.
func NewLocalStorage() (*LocalStorage, error) {
	ls := js.Global().Get("localStorage")
	if ls.IsUndefined() || ls.IsNull() {
		return nil, fmt.Errorf("store: localStorage unavailable")
	}
	return &LocalStorage{ls: ls}, nil
}

func (l *LocalStorage) get(key string) (string, bool) {
	v := l.ls.Call("getItem", key)
	if v.IsNull() || v.IsUndefined() {
		return "", false
	}
	return v.String(), true
}

func (l *LocalStorage) set(key, value string) (err error) {
	// setItem throws when the quota is exceeded or storage is disabled.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("localStorage.setItem(%s): %v", key, r)
		}
	}()
	l.ls.Call("setItem", key, value)
	return nil
}

func (l *LocalStorage) LoadHighScore() (int, error) {
	value, ok := l.get(KeyHighScore)
	if !ok || value == "" {
		return 0, nil
	}
	score, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parse high score %q: %w", value, err)
	}
	return score, nil
}

func (l *LocalStorage) SaveHighScore(score int) error {
	return l.set(KeyHighScore, strconv.Itoa(score))
}

func (l *LocalStorage) LoadTheme() (string, error) {
	value, ok := l.get(KeyTheme)
	if !ok || value == "" {
		return "", ErrNotFound
	}
	return value, nil
}

func (l *LocalStorage) SaveTheme(theme string) error {
	return l.set(KeyTheme, theme)
}

func (l *LocalStorage) Close() error {
	return nil
}
