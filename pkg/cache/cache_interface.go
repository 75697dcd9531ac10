package cache

import (
	"context"
	"time"
)

// Cache defines the contract for the cache layer.
// Allows swapping the implementation (Redis, in-memory for tests).
type Cache interface {
	// Get reads a key and unmarshals it into dest.
	// Returns (found, error):
	// - found = true: cache hit, data unmarshaled into dest
	// - found = false: cache miss, dest untouched
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// Ping checks the connection.
	Ping(ctx context.Context) error
}

// CounterStore is the durable counter backing sequence number generation.
// Next must be atomic across concurrent callers: two creations can never
// observe the same counter value.
type CounterStore interface {
	// Next increments the counter under namespace and returns the new value.
	// A missing counter is treated as 0, so the first call returns 1.
	Next(ctx context.Context, namespace string) (int64, error)
}
