// Package config loads runtime configuration for the dojo CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. DOJO_* environment variables, optionally seeded from a dotenv file
//     given with -env.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   Auth API base URL
//	-s string   session database path
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:3000",
//	  "storage_path": "dojo.db",
//	  "request_timeout": "10s",
//	  "log_level": "info",
//	  "log_backend": "zerolog"
//	}
package config
