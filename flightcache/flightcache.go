// Package flightcache provides a keyed memoization cache with single-flight
// population: concurrent misses for the same key share one underlying unit of
// work instead of each triggering a redundant one.
package flightcache

import (
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Cache memoizes values of type V by string key, with no expiration and no
// eviction: entries live for the remainder of the process unless deleted.
type Cache[V any] struct {
	name  string
	store *gocache.Cache
	group singleflight.Group
	log   *zap.Logger
}

// New creates a cache. The name tags log entries so multiple cache instances
// stay distinguishable.
func New[V any](name string, log *zap.Logger) *Cache[V] {
	if log == nil {
		log = zap.NewNop()
	}

	return &Cache[V]{
		name:  name,
		store: gocache.New(gocache.NoExpiration, 0),
		log:   log,
	}
}

// Get retrieves a cached value by key.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V

	value, found := c.store.Get(key)
	if !found {
		return zero, false
	}

	v, ok := value.(V)
	if !ok {
		c.log.Error("wrong type assertion when getting value",
			zap.String("cache", c.name), zap.String("key", key))

		return zero, false
	}

	return v, true
}

// Set stores a value under key. A typed nil is a legal value, so callers can
// cache a confirmed absence.
func (c *Cache[V]) Set(key string, v V) {
	c.store.Set(key, v, gocache.NoExpiration)
}

// Delete removes the entry for key, if any.
func (c *Cache[V]) Delete(key string) {
	c.store.Delete(key)
}

// Flush removes every entry.
func (c *Cache[V]) Flush() {
	c.store.Flush()
}

// Do returns the cached value for key, or runs fn exactly once across all
// concurrent callers of the same key and caches its result. Errors propagate
// to every waiting caller and are never cached, so the next call retries.
func (c *Cache[V]) Do(key string, fn func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	value, err, _ := c.group.Do(key, func() (interface{}, error) {
		// A winner may have populated the cache between the miss above and
		// entering the flight group.
		if v, ok := c.Get(key); ok {
			return v, nil
		}

		v, err := fn()
		if err != nil {
			return nil, err
		}
		c.Set(key, v)

		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	return value.(V), nil
}
