// Package cache provides the in-process TTL cache behind the memoized
// episode list and derived-notes results, and the lease-based write lock
// built on top of it.
package cache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Well-known cache keys.
const (
	KeyEpisodes     = "playlist_items"
	KeyDerivedNotes = "derived_notes"
	KeyWriteLock    = "write_lock"
)

type entry struct {
	value   any
	expires time.Time
}

func (e entry) expired(now time.Time) bool {
	return now.After(e.expires)
}

// Cache is a TTL map cache safe for concurrent use. Population uses
// add-if-absent semantics: when two computations race, the first result
// wins and later ones are discarded.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	flight  singleflight.Group

	now func() time.Time // overridable for tests
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the live value for key, if any.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || e.expired(c.now()) {
		return nil, false
	}
	return e.value, true
}

// Add stores value under key only if no live value is present.
// Returns true if the value was stored.
func (c *Cache) Add(key string, value any, ttl time.Duration) bool {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok && !e.expired(now) {
		return false
	}
	c.entries[key] = entry{value: value, expires: now.Add(ttl)}
	return true
}

// Delete removes key regardless of expiry.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Once returns the cached value for key, computing and adding it when
// absent. Concurrent computations for the same key are deduplicated;
// the add-if-absent semantics of Add still decide which result sticks.
func (c *Cache) Once(key string, ttl time.Duration, compute func() (any, error)) (any, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err, _ := c.flight.Do(key, func() (any, error) {
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := compute()
		if err != nil {
			return nil, err
		}
		c.Add(key, v, ttl)
		return v, nil
	})
	return v, err
}
