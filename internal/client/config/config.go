package config

import (
	"errors"
	"fmt"
)

// ErrInvalidBackend is returned by LoadConfig for an unsupported storage backend.
var ErrInvalidBackend = errors.New("invalid storage backend")

// Config holds runtime settings for the bookkeeper CLI.
//
// Fields:
//   - DBPath: SQLite file or Badger directory holding the catalog.
//   - Backend: durable slot backend, "sqlite" or "badger".
//   - LogLevel: debug, info, warn or error.
//   - StorageKey: slot under which the collection is kept.
type Config struct {
	DBPath     string
	Backend    string
	LogLevel   string
	StorageKey string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DBPath = "bookkeeper.db"
	c.Backend = "sqlite"
	c.LogLevel = "info"
	c.StorageKey = "books"
}

// Validate reports settings the application cannot start with.
func (c *Config) Validate() error {
	switch c.Backend {
	case "sqlite", "badger":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBackend, c.Backend)
	}
	if c.DBPath == "" {
		return errors.New("database path is empty")
	}
	if c.StorageKey == "" {
		return errors.New("storage key is empty")
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones. Malformed sources panic; the merged result is
// validated before it is returned.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
