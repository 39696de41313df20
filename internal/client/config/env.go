package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/dojoauth/internal/flagx"
	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvAPIBaseURL     = "DOJO_API_URL"
	EnvStoragePath    = "DOJO_STORAGE_PATH"
	EnvRequestTimeout = "DOJO_REQUEST_TIMEOUT"
	EnvLogLevel       = "DOJO_LOG_LEVEL"
	EnvLogBackend     = "DOJO_LOG_BACKEND"
)

// parseEnv overlays cfg with DOJO_* variables. When -env names a file it is
// loaded first; variables already set in the process environment keep their
// value.
func parseEnv(cfg *Config, args []string) error {
	if path := flagx.EnvFileFlag(args); path != "" {
		if err := godotenv.Load(path); err != nil {
			return err
		}
	}

	setString(&cfg.APIBaseURL, EnvAPIBaseURL)
	setString(&cfg.StoragePath, EnvStoragePath)
	setString(&cfg.LogLevel, EnvLogLevel)
	setString(&cfg.LogBackend, EnvLogBackend)

	if v, ok := os.LookupEnv(EnvRequestTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRequestTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
