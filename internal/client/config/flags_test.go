package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	base := Config{APIBaseURL: "http://def", StoragePath: "def.db", RequestTimeout: 1500 * time.Millisecond, LogLevel: "warn"}

	tests := []struct {
		name     string
		args     []string
		expected Config
		wantErr  bool
	}{
		{name: "all flags",
			args: []string{"-a", "http://127.0.0.1:9090", "-s", "x.db", "-t", "30", "-l", "debug"},
			expected: Config{APIBaseURL: "http://127.0.0.1:9090", StoragePath: "x.db", RequestTimeout: 30 * time.Second, LogLevel: "debug"}},
		{name: "no flags keep sub-second timeout", args: nil, expected: base},
		{name: "foreign flags ignored",
			args:     []string{"-c", "cfg.json", "-env", ".env", "-a=http://h"},
			expected: Config{APIBaseURL: "http://h", StoragePath: "def.db", RequestTimeout: 1500 * time.Millisecond, LogLevel: "warn"}},
		{name: "incorrect timeout", args: []string{"-t", "abc"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			err := parseFlags(&cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}
