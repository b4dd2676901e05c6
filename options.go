package lru

import "errors"

// ErrNilLocker is returned by NewWithOpts when WithLocker is given nil.
var ErrNilLocker = errors.New("locker must not be nil")

// Option customizes a Cache built by NewWithOpts.
type Option[K comparable, V any] func(c *Cache[K, V]) error

// RWLocker is the subset of sync.RWMutex a Cache synchronizes through.
// Get and every mutating call take Lock; read-only calls take RLock.
type RWLocker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

// NoOpRWLocker satisfies RWLocker without synchronizing anything. It is
// only correct when one goroutine owns the cache.
type NoOpRWLocker struct{}

// Lock perform noop Lock() operation
func (nop NoOpRWLocker) Lock() {}

// Unlock perform noop Unlock() operation
func (nop NoOpRWLocker) Unlock() {}

// RLock perform noop RLock() operation
func (nop NoOpRWLocker) RLock() {}

// RUnlock perform noop RUnlock() operation
func (nop NoOpRWLocker) RUnlock() {}

// WithCallback registers a function invoked, outside the cache lock, for
// every entry that leaves the cache: capacity evictions, Remove,
// RemoveOldest and Purge. Replacing the value of a resident key does not
// invoke it.
func WithCallback[K comparable, V any](onEvicted func(key K, value V)) Option[K, V] {
	return func(c *Cache[K, V]) error {
		c.onEvictedCB = onEvicted
		return nil
	}
}

// WithLocker replaces the default sync.RWMutex.
func WithLocker[K comparable, V any](l RWLocker) Option[K, V] {
	return func(c *Cache[K, V]) error {
		if l == nil {
			return ErrNilLocker
		}
		c.lock = l
		return nil
	}
}

// WithoutLocking installs NoOpRWLocker.
func WithoutLocking[K comparable, V any]() Option[K, V] {
	return WithLocker[K, V](NoOpRWLocker{})
}

// WithMetrics records hits, misses, evictions and occupancy into m.
func WithMetrics[K comparable, V any](m *Metrics) Option[K, V] {
	return func(c *Cache[K, V]) error {
		c.metrics = m
		return nil
	}
}
