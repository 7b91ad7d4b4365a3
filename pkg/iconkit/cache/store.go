// Package cache provides storage for fetched icon documents.
//
// A Store holds the raw text of successfully fetched URLs. The registry
// consults it inside a shared fetch before going to the network, so a
// persistent store lets a restarted process skip refetching icons it has
// already seen. Parsed elements stay in the registry's own memory.
package cache

import (
	"context"
	"errors"
	"time"
)

// Store persists fetched documents keyed by resolved URL.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the cached text for url.
	// Returns ErrNotFound if nothing is stored.
	Get(ctx context.Context, url string) (string, error)

	// Put stores text for url, overwriting any previous value.
	Put(ctx context.Context, url string, text string) error

	// Delete removes url. Returns nil if it was not stored.
	Delete(ctx context.Context, url string) error

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// List returns metadata for every entry, oldest first.
	List(ctx context.Context) ([]Info, error)

	// Close releases any resources (connections, files).
	Close() error
}

// Info describes a stored entry without loading its text.
type Info struct {
	URL      string
	StoredAt time.Time
	Size     int64
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates no entry exists for the URL.
	ErrNotFound = errors.New("cache entry not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("cache store closed")
)
