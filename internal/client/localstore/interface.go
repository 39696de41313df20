package localstore

import (
	"context"
	"errors"
)

// ErrEmptyKey is returned when a write names an empty key.
var ErrEmptyKey = errors.New("empty storage key")

// Store is a string key/value store that survives restarts.
//
// SetMany and DeleteMany are atomic: either every entry is written (removed)
// or none is.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	SetMany(ctx context.Context, entries map[string]string) error
	DeleteMany(ctx context.Context, keys ...string) error
}
