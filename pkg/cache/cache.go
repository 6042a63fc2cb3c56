// Package cache stores rendered artifacts and built graphs keyed by content
// hash.
//
// Backends implementing [Cache]:
//   - [NullCache]: never stores anything (caching disabled)
//   - [MemoryCache]: process memory, when no cache directory is usable
//   - [FileCache]: JSON entry files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//
// Keys come from a [Keyer]. [DefaultKeyer] derives keys from a hash of the
// inputs plus every option that changes the output, so two requests share an
// entry only when they would produce identical bytes.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with optional expiry.
type Cache interface {
	// Get returns the data stored under key. The boolean is false on a miss;
	// a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs used by the pipeline.
const (
	GraphTTL    = 7 * 24 * time.Hour
	ArtifactTTL = 30 * 24 * time.Hour
)
