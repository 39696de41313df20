package logging

import (
	"fmt"
	"io"
)

const (
	BackendSlog    = "slog"
	BackendZerolog = "zerolog"
)

// New returns a Logger for the named backend. An empty backend selects slog.
func New(backend, level string, w io.Writer) (Logger, error) {
	switch backend {
	case "", BackendSlog:
		return NewTextSlogLogger(w, level), nil
	case BackendZerolog:
		return NewConsoleZerologLogger(w, level), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", backend)
	}
}
