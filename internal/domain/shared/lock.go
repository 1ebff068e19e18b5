package shared

import (
	"context"
	"time"
)

// CycleLock serializes writers on a single billing cycle so that two
// concurrent recomputes (or a recompute and a send) cannot interleave
// deletes and inserts.
type CycleLock interface {
	// Acquire takes the lock for a key with a TTL.
	// Returns true if the lock was taken, false if another writer holds it.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release frees the lock for a key
	Release(ctx context.Context, key string) error

	// Close closes the lock backend and releases resources
	Close() error
}
