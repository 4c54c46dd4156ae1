package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers the keys of status changes that already
// succeeded, so a client retrying the same request is not applied twice
type IdempotencyStore interface {
	// MarkProcessed records key for ttl. It reports false when the key was
	// already recorded, which makes it usable as an atomic claim.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed reports whether key is recorded and not yet expired
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Release forgets key. Releasing an unknown key is not an error.
	Release(ctx context.Context, key string) error

	Close() error
}
