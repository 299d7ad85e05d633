package cache

import (
	"context"
	"errors"
	"time"
)

// LayeredCache consults several caches in order, fastest first.
//
// A hit in a later layer is copied into the earlier ones with BackfillTTL.
// Writes and deletes go to every layer. A failing layer on Get is skipped so
// that an unreachable Redis degrades to the in-memory layer.
type LayeredCache struct {
	layers      []Cache
	BackfillTTL time.Duration
}

// NewLayeredCache creates a cache over layers, fastest first.
func NewLayeredCache(layers ...Cache) *LayeredCache {
	return &LayeredCache{layers: layers, BackfillTTL: TTLTree}
}

// Get returns the first hit.
func (c *LayeredCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var errs []error
	for i, layer := range c.layers {
		data, ok, err := layer.Get(ctx, key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !ok {
			continue
		}
		for _, earlier := range c.layers[:i] {
			_ = earlier.Set(ctx, key, data, c.BackfillTTL)
		}
		return data, true, nil
	}
	if len(errs) == len(c.layers) && len(errs) > 0 {
		return nil, false, errors.Join(errs...)
	}
	return nil, false, nil
}

// Set writes to every layer and joins their errors.
func (c *LayeredCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var errs []error
	for _, layer := range c.layers {
		errs = append(errs, layer.Set(ctx, key, data, ttl))
	}
	return errors.Join(errs...)
}

// Delete removes key from every layer.
func (c *LayeredCache) Delete(ctx context.Context, key string) error {
	var errs []error
	for _, layer := range c.layers {
		errs = append(errs, layer.Delete(ctx, key))
	}
	return errors.Join(errs...)
}

// Close closes every layer.
func (c *LayeredCache) Close() error {
	var errs []error
	for _, layer := range c.layers {
		errs = append(errs, layer.Close())
	}
	return errors.Join(errs...)
}

var _ Cache = (*LayeredCache)(nil)
