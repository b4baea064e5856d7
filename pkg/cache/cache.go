// Package cache stores rendered riskflow artifacts keyed by their inputs.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for several server instances
//   - [NullCache]: disables caching
//
// # Keys
//
// A [Keyer] derives keys from a dataset hash plus the options that affect
// the output. Two renders share a key only when every input that changes
// the bytes is equal:
//
//	k := cache.NewDefaultKeyer()
//	dsHash := cache.Hash(datasetJSON)
//	key := k.ArtifactKey(dsHash, cache.ArtifactKeyOpts{Format: "svg", Style: "simple"})
//
// Wrap a keyer with [NewScopedKeyer] to separate namespaces, for example
// per build version so an upgrade never serves stale output.
package cache

import (
	"context"
	"time"
)

// Entry lifetimes used by the pipeline.
const (
	TTLScene    = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the entry and true, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}
