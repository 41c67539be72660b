package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrCacheMiss indicates the requested key was not found or has expired
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidEntry indicates the cache entry is invalid or corrupted
	ErrInvalidEntry = errors.New("invalid cache entry")
)

// Store is a TTL cache backend.
type Store interface {
	// Get returns the live entry for key, or ErrCacheMiss.
	Get(ctx context.Context, key Key) (*Entry, error)

	// Set stores entry under key until entry.Expires.
	Set(ctx context.Context, key Key, entry *Entry) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key Key) error

	// Clear removes every entry owned by the store.
	Clear(ctx context.Context) error
}

// Clock returns the current time. Stores accept one for tests.
type Clock func() time.Time
