package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds runtime settings for the dojo CLI.
//
// Fields:
//   - APIBaseURL: scheme://host[:port] of the Auth API, without the /api suffix.
//   - StoragePath: SQLite file holding the persisted session.
//   - RequestTimeout: per-request HTTP timeout.
//   - LogLevel, LogBackend: see package logging.
type Config struct {
	APIBaseURL     string
	StoragePath    string
	RequestTimeout time.Duration
	LogLevel       string
	LogBackend     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3000"
	c.StoragePath = "dojo.db"
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "warn"
	c.LogBackend = "slog"
}

// Load builds a Config from defaults, then the environment (optionally seeded
// from a .env file), then a JSON file, then flags. Later sources win.
// args excludes the program name.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, args); err != nil {
		return nil, fmt.Errorf("env: %w", err)
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args. It panics on invalid configuration.
func LoadConfig() *Config {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api base url is empty")
	}
	if c.StoragePath == "" {
		return fmt.Errorf("storage path is empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}
