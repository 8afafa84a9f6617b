package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/plus3/tetra/game"
)

// migrations are applied in order and recorded in _migrations by name.
var migrations = []struct {
	name string
	sql  string
}{
	{"001_settings", `CREATE TABLE settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`},
	{"002_runs", `CREATE TABLE runs (
		id             TEXT PRIMARY KEY,
		score          INTEGER NOT NULL,
		lines          INTEGER NOT NULL,
		level          INTEGER NOT NULL,
		pieces         INTEGER NOT NULL,
		duration_ms    INTEGER NOT NULL,
		mode           TEXT NOT NULL,
		new_high_score INTEGER NOT NULL,
		ended_at       INTEGER NOT NULL
	);
	CREATE INDEX runs_score ON runs(score DESC);`},
}

// SQLite stores preferences in a settings table and keeps every finished run.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// RunRecord is one row of the run history.
type RunRecord struct {
	ID      string
	Summary game.Summary
	EndedAt time.Time
}

// OpenSQLite opens (and creates if missing) the database at dsn and applies
// pending migrations.
func OpenSQLite(dsn string) (*SQLite, error) {
	if dsn == "" {
		return nil, errors.New("store: sqlite path is empty")
	}
	if dir := filepath.Dir(dsn); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	for _, m := range migrations {
		var done int
		err := s.db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, m.name).Scan(&done)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", m.name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", m.name, err)
		}
		log.Debug().Str("migration", m.name).Msg("applied")
	}
	return nil
}

func (s *SQLite) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key=?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLite) set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings(key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *SQLite) LoadHighScore() (int, error) {
	value, err := s.get(KeyHighScore)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	score, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parse high score %q: %w", value, err)
	}
	return score, nil
}

func (s *SQLite) SaveHighScore(score int) error {
	return s.set(KeyHighScore, strconv.Itoa(score))
}

func (s *SQLite) LoadTheme() (string, error) {
	return s.get(KeyTheme)
}

func (s *SQLite) SaveTheme(theme string) error {
	return s.set(KeyTheme, theme)
}

// RecordRun inserts the summary under a fresh run id.
func (s *SQLite) RecordRun(summary game.Summary) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (id, score, lines, level, pieces, duration_ms, mode, new_high_score, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		summary.Score,
		summary.Lines,
		summary.Level,
		summary.Pieces,
		summary.Duration.Milliseconds(),
		summary.Mode.String(),
		summary.NewHighScore,
		s.now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// TopRuns returns the best runs by score, ties broken by the earliest finish.
// A non-positive limit defaults to 10.
func (s *SQLite) TopRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, score, lines, level, pieces, duration_ms, mode, new_high_score, ended_at
		FROM runs
		ORDER BY score DESC, ended_at ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var (
			r          RunRecord
			durationMs int64
			mode       string
			endedAt    int64
		)
		if err := rows.Scan(
			&r.ID,
			&r.Summary.Score,
			&r.Summary.Lines,
			&r.Summary.Level,
			&r.Summary.Pieces,
			&durationMs,
			&mode,
			&r.Summary.NewHighScore,
			&endedAt,
		); err != nil {
			return nil, err
		}
		r.Summary.Duration = time.Duration(durationMs) * time.Millisecond
		r.Summary.Mode, _ = game.ParseMode(mode)
		r.EndedAt = time.UnixMilli(endedAt)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
