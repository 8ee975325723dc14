package port

import (
	"context"
	"time"
)

// Cache is the minimal key-value contract the relay needs for its transcript
// cache. Implementations must be safe for concurrent use, and every method is
// context-aware so callers own timeouts and cancellation.
//
// Values are plain strings; serialization stays with the caller so the port
// does not grow codec opinions.
type Cache interface {
	// Get fetches the value stored at key. Misses are reported as ErrMiss;
	// any other non-nil error is a transport or server failure.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value at key. A zero or negative TTL persists the entry
	// until evicted.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Ping verifies connectivity with the backend.
	Ping(ctx context.Context) error

	// Close releases held resources.
	Close() error
}

// ErrMiss signals a cache miss in a typed way so callers can separate misses
// from transport errors.
var ErrMiss = errMiss{}

type errMiss struct{}

func (errMiss) Error() string { return "cache: miss" }
