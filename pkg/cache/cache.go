// Package cache stores encoded trees and rendered artifacts keyed by content
// hashes.
//
// # Backends
//
//   - [NullCache]: never stores anything (--no-cache)
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [MemoryCache]: bounded in-process LRU (HTTP server)
//   - [RedisCache]: shared between server instances
//   - [LayeredCache]: tries several caches in order, e.g. memory then Redis
//
// # Keys
//
// A [Keyer] derives keys from the SHA-256 of the report text plus the options
// that change the output, so an identical report parsed with identical options
// is a lookup:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.TreeKey(cache.Hash(report), cache.TreeKeyOpts{Lenient: true})
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Default TTLs. Entries are content-addressed, so staleness only matters for
// disk usage.
const (
	TTLTree     = 7 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
//
// Get reports a miss with ok=false and a nil error. Implementations are safe
// for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
