// Package config loads frontend settings from defaults, an optional YAML
// file, a .env file and TETRA_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/plus3/tetra/game"
	"github.com/plus3/tetra/store"
)

// Config holds every tunable a frontend reads at startup.
type Config struct {
	Mode          string              `yaml:"mode"`
	Theme         string              `yaml:"theme"`
	Store         string              `yaml:"store"`
	DataPath      string              `yaml:"data_path"`
	LogLevel      string              `yaml:"log_level"`
	Seed          uint64              `yaml:"seed"`
	StartInterval time.Duration       `yaml:"start_interval"`
	Scale         int                 `yaml:"scale"`
	Debug         bool                `yaml:"debug"`
	Keys          map[string][]string `yaml:"keys"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Mode:          "normal",
		Theme:         "dark",
		Store:         string(store.KindFile),
		LogLevel:      "info",
		StartInterval: game.DefaultInterval,
		Scale:         24,
	}
}

// Load builds a Config. An empty path skips the YAML file; a path that does
// not exist is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	_ = godotenv.Load()
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	str := map[string]*string{
		"TETRA_MODE":      &c.Mode,
		"TETRA_THEME":     &c.Theme,
		"TETRA_STORE":     &c.Store,
		"TETRA_DATA_PATH": &c.DataPath,
		"TETRA_LOG_LEVEL": &c.LogLevel,
	}
	for key, dst := range str {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("TETRA_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("TETRA_SEED: %w", err)
		}
		c.Seed = seed
	}
	if v := os.Getenv("TETRA_START_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TETRA_START_INTERVAL: %w", err)
		}
		c.StartInterval = d
	}
	if v := os.Getenv("TETRA_SCALE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TETRA_SCALE: %w", err)
		}
		c.Scale = n
	}
	if v := os.Getenv("TETRA_DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TETRA_DEBUG: %w", err)
		}
		c.Debug = b
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, ok := game.ParseMode(c.Mode); !ok {
		return fmt.Errorf("invalid mode %q", c.Mode)
	}
	if c.Theme != "dark" && c.Theme != "light" {
		return fmt.Errorf("invalid theme %q", c.Theme)
	}
	switch store.Kind(c.Store) {
	case store.KindMemory, store.KindFile, store.KindSQLite:
	default:
		return fmt.Errorf("invalid store %q", c.Store)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if c.StartInterval < game.MinInterval {
		return fmt.Errorf("start interval %s is below %s", c.StartInterval, game.MinInterval)
	}
	if c.Scale <= 0 {
		return errors.New("scale must be positive")
	}
	if _, err := c.Bindings(); err != nil {
		return err
	}
	return nil
}

// GameMode returns the parsed difficulty.
func (c Config) GameMode() game.Mode {
	m, _ := game.ParseMode(c.Mode)
	return m
}

// StorePath returns DataPath, or a file under the user config directory.
func (c Config) StorePath() string {
	if c.DataPath != "" {
		return c.DataPath
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	name := "tetra.yaml"
	if store.Kind(c.Store) == store.KindSQLite {
		name = "tetra.db"
	}
	return filepath.Join(dir, "tetra", name)
}

// EngineOptions translates the settings that affect the engine.
func (c Config) EngineOptions() []game.Option {
	opts := []game.Option{
		game.WithMode(c.GameMode()),
		game.WithStartInterval(c.StartInterval),
		game.WithLogger(log.Logger),
	}
	if c.Seed != 0 {
		opts = append(opts, game.WithSeed(c.Seed))
	}
	return opts
}

// Bindings parses the key table. Unknown command names are an error; key
// names are interpreted by each frontend.
func (c Config) Bindings() (map[game.Command][]string, error) {
	out := make(map[game.Command][]string, len(c.Keys))
	for name, keys := range c.Keys {
		cmd, err := game.ParseCommand(name)
		if err != nil {
			return nil, fmt.Errorf("keys: %w", err)
		}
		out[cmd] = keys
	}
	return out, nil
}

// SetupLogging points the global zerolog logger at w with a console writer
// and applies the configured level.
func (c Config) SetupLogging(w io.Writer) {
	if lvl, err := zerolog.ParseLevel(c.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen})
}
