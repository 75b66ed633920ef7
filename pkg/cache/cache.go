// Package cache provides pluggable storage for registry metadata documents.
//
// Three backends implement the same interface: FileCache for CLI usage,
// RedisCache for multi-instance server deployments, and NullCache when
// caching is disabled. Only fetched registry documents are cached; resolved
// graphs are cheap to rebuild and are never stored.
//
// Cache failures are advisory. A backend error on Get is reported to the
// caller, but callers treat it as a miss and fetch from the source; a
// failed Set loses nothing but a future hit.
package cache

import (
	"context"
	"time"
)

// TTLDocument is the default time-to-live for cached registry documents.
// Published package metadata is immutable in practice, but a bounded TTL
// keeps unlisted or deleted packages from being served forever.
const TTLDocument = 24 * time.Hour

// Cache is the interface implemented by all cache backends.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and fresh; expired or missing entries are a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 means the entry
	// never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
