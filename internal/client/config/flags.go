package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/dojoauth/internal/flagx"
)

// parseFlags populates cfg from command-line flags.
//
//	-a string   Auth API base URL
//	-s string   session database path
//	-t int      request timeout in seconds
//	-l string   log level
//
// Flags owned by other loaders (-c, -config, -env) are filtered out first.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-t", "-l"})

	fs := flag.NewFlagSet("dojo", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "Auth API base URL")
	fs.StringVar(&cfg.StoragePath, "s", cfg.StoragePath, "session database path")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
