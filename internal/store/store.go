// Package store is the keyed persistence port every widget writes its state
// through. Each key has exactly one owning widget; writes replace the whole
// value and the last write wins.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	appLog "tripboard/internal/log"
)

// ErrNotFound is returned by Port.Load when nothing is stored under a key.
var ErrNotFound = errors.New("store: key not found")

// Key namespaces a widget key, e.g. Key("poland-trip", "expenses").
func Key(namespace, widget string) string {
	return namespace + "-" + widget
}

// Port is the narrow load/save contract a widget depends on.
type Port interface {
	// Load returns the raw bytes stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save replaces whatever is stored under key.
	Save(ctx context.Context, key string, data []byte) error
}

// ReadError wraps a stored value that could not be read or decoded.
type ReadError struct {
	Key string
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("store: read %q: %v", e.Key, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Origin says where a loaded value came from.
type Origin int

const (
	FromSeed Origin = iota
	FromStore
)

// Load reads and decodes the value under key. A missing or corrupt value
// yields seed() instead; corruption is logged but never returned. The seed
// is not written back here, the next Persist does that.
func Load[T any](ctx context.Context, p Port, key string, seed func() T) (T, Origin) {
	data, err := p.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			appLog.Error("widget state unreadable; using seed", &ReadError{Key: key, Err: err}, "key", key)
		}
		return seed(), FromSeed
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		appLog.Error("widget state corrupt; using seed", &ReadError{Key: key, Err: err}, "key", key)
		return seed(), FromSeed
	}
	return v, FromStore
}

// Persist encodes value as JSON and stores it under key.
func Persist[T any](ctx context.Context, p Port, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("store: encode %q: %w", key, err)
	}
	if err := p.Save(ctx, key, data); err != nil {
		return fmt.Errorf("store: save %q: %w", key, err)
	}
	return nil
}

// Cell is one widget's in-memory state mirrored to a key. Every Update
// writes through before returning; mutations on the same cell never
// interleave.
type Cell[T any] struct {
	mu     sync.Mutex
	port   Port
	key    string
	value  T
	origin Origin
}

// Open loads the cell's initial value (see Load).
func Open[T any](ctx context.Context, p Port, key string, seed func() T) *Cell[T] {
	v, origin := Load(ctx, p, key, seed)
	appLog.Debug("widget state opened", "key", key, "from_store", origin == FromStore)
	return &Cell[T]{port: p, key: key, value: v, origin: origin}
}

func (c *Cell[T]) Key() string { return c.key }

// Origin reports whether the initial value was read or seeded.
func (c *Cell[T]) Origin() Origin { return c.origin }

// Get returns the current value. Callers must treat slices and maps in it
// as read-only.
func (c *Cell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Update replaces the value with fn(current) and persists it. If fn fails
// nothing changes. If the write fails the new value stays current in memory
// and the error is returned.
func (c *Cell[T]) Update(ctx context.Context, fn func(T) (T, error)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := fn(c.value)
	if err != nil {
		return c.value, err
	}
	c.value = next

	if err := Persist(ctx, c.port, c.key, next); err != nil {
		appLog.Error("widget state write failed", err, "key", c.key)
		return next, err
	}
	return next, nil
}
