// Package storage provides the durable key-value surface the engine
// persists through, and the bridge that mirrors store state into it.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
)

// Keys owned by the engine, one per logical collection.
const (
	KeyProjects = "projects"
	KeyTimes    = "times"
	KeyDraft    = "draft"
	KeySettings = "settings"
)

var (
	// ErrNotFound is returned when no value is stored under a key.
	ErrNotFound = errors.New("key not found")
)

// KV is the durable key-value surface. Implementations must tolerate
// missing entries by returning ErrNotFound rather than inventing
// state.
type KV interface {
	GetItem(ctx context.Context, key string) ([]byte, error)
	SetItem(ctx context.Context, key string, value []byte) error
	RemoveItem(ctx context.Context, key string) error
}

// Load reads and decodes the value stored under key. A missing key or
// a value that fails to decode both yield ok=false; decode failures
// are logged and treated as "no prior state", never as fatal.
func Load[T any](ctx context.Context, kv KV, key string, logger *slog.Logger) (T, bool) {
	var zero T

	raw, err := kv.GetItem(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) && logger != nil {
			logger.Warn("reading durable state", "key", key, "error", err)
		}
		return zero, false
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		if logger != nil {
			logger.Warn("discarding corrupt durable state", "key", key, "error", err)
		}
		return zero, false
	}
	return value, true
}

// Save serializes value and writes it under key.
func Save(ctx context.Context, kv KV, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return kv.SetItem(ctx, key, raw)
}
