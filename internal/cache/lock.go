package cache

import (
	"context"
	"time"
)

// Lock is a process-wide named mutual-exclusion lease serializing note
// writes. Acquisition is add-if-absent on the cache: the lease TTL exists
// only as a safety net against a crashed holder; every normal exit path
// releases explicitly.
type Lock struct {
	cache *Cache
	key   string
	lease time.Duration
	retry time.Duration
}

// NewLock creates a named lock on c.
func NewLock(c *Cache, key string, lease, retry time.Duration) *Lock {
	return &Lock{cache: c, key: key, lease: lease, retry: retry}
}

// TryAcquire attempts to take the lease without blocking.
func (l *Lock) TryAcquire() bool {
	return l.cache.Add(l.key, nil, l.lease)
}

// Acquire busy-waits until the lease is taken. It retries indefinitely;
// ctx models the caller's own timeout, which is the only bound.
func (l *Lock) Acquire(ctx context.Context) error {
	for {
		if l.TryAcquire() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.retry):
		}
	}
}

// Release frees the lease immediately.
func (l *Lock) Release() {
	l.cache.Delete(l.key)
}

// With runs fn while holding the lease, releasing on every exit path
// including panics.
func (l *Lock) With(ctx context.Context, fn func() error) error {
	if err := l.Acquire(ctx); err != nil {
		return err
	}
	defer l.Release()
	return fn()
}
