package simplelru

import (
	"errors"
	"fmt"

	"github.com/venkatsvpr/recencylru/internal"
)

var (
	// ErrInvalidCapacity is returned when a cache is constructed with a size below 1.
	ErrInvalidCapacity = errors.New("must provide a positive size")

	// ErrInconsistent is reported by Check when the index and the recency
	// list disagree. It always means a bug in this package.
	ErrInconsistent = errors.New("lru index and recency list diverged")
)

// EvictCallback is used to get a callback when a cache entry is evicted.
// It runs after the entry has left the cache.
type EvictCallback[K comparable, V any] func(key K, value V)

// LRU implements a non-thread safe fixed size LRU cache
type LRU[K comparable, V any] struct {
	size      int
	evictList *internal.List[K, V]
	items     map[K]internal.Handle
	onEvict   EvictCallback[K, V]
}

// NewLRU constructs an LRU of the given size
func NewLRU[K comparable, V any](size int, onEvict EvictCallback[K, V]) (*LRU[K, V], error) {
	if size <= 0 {
		return nil, fmt.Errorf("size %d: %w", size, ErrInvalidCapacity)
	}
	c := &LRU[K, V]{
		size:      size,
		evictList: internal.NewList[K, V](size),
		items:     make(map[K]internal.Handle),
		onEvict:   onEvict,
	}
	return c, nil
}

// Purge is used to completely clear the cache. The cache is already empty
// when the callback runs for the purged entries, oldest first.
func (c *LRU[K, V]) Purge() {
	if c.onEvict == nil {
		clear(c.items)
		c.evictList.Init()
		return
	}
	old := c.evictList
	c.evictList = internal.NewList[K, V](c.size)
	c.items = make(map[K]internal.Handle)
	for h := old.Back(); h != internal.Nil; h = old.Prev(h) {
		c.onEvict(old.Key(h), old.Value(h))
	}
}

// Add adds a value to the cache. Returns true if an eviction occurred.
//
// Adding a key that is already present replaces its value and marks it most
// recently used; that never evicts.
func (c *LRU[K, V]) Add(key K, value V) (evicted bool) {
	// Check for existing item
	if h, ok := c.items[key]; ok {
		c.evictList.SetValue(h, value)
		c.evictList.MoveToFront(h)
		return false
	}

	// Make room first so the arena never holds more than size entries.
	if c.evictList.Len() >= c.size {
		c.removeOldest()
		evicted = true
	}
	c.items[key] = c.evictList.PushFront(key, value)
	return evicted
}

// Get looks up a key's value from the cache and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (value V, ok bool) {
	h, ok := c.items[key]
	if !ok {
		return value, false
	}
	c.evictList.MoveToFront(h)
	return c.evictList.Value(h), true
}

// Contains checks if a key is in the cache, without updating the recent-ness
// or deleting it for being stale.
func (c *LRU[K, V]) Contains(key K) (ok bool) {
	_, ok = c.items[key]
	return ok
}

// Peek returns the key value (or undefined if not found) without updating
// the "recently used"-ness of the key.
func (c *LRU[K, V]) Peek(key K) (value V, ok bool) {
	h, ok := c.items[key]
	if !ok {
		return value, false
	}
	return c.evictList.Value(h), true
}

// Remove removes the provided key from the cache, returning if the
// key was contained.
func (c *LRU[K, V]) Remove(key K) (present bool) {
	if h, ok := c.items[key]; ok {
		c.removeElement(h)
		return true
	}
	return false
}

// RemoveOldest removes the oldest item from the cache.
func (c *LRU[K, V]) RemoveOldest() (key K, value V, ok bool) {
	if h := c.evictList.Back(); h != internal.Nil {
		key, value = c.removeElement(h)
		return key, value, true
	}
	return key, value, false
}

// GetOldest returns the oldest entry
func (c *LRU[K, V]) GetOldest() (key K, value V, ok bool) {
	if h := c.evictList.Back(); h != internal.Nil {
		return c.evictList.Key(h), c.evictList.Value(h), true
	}
	return key, value, false
}

// GetNewest returns the most recently used entry
func (c *LRU[K, V]) GetNewest() (key K, value V, ok bool) {
	if h := c.evictList.Front(); h != internal.Nil {
		return c.evictList.Key(h), c.evictList.Value(h), true
	}
	return key, value, false
}

// Keys returns a slice of the keys in the cache, from oldest to newest.
func (c *LRU[K, V]) Keys() []K {
	keys := make([]K, 0, c.evictList.Len())
	for h := c.evictList.Back(); h != internal.Nil; h = c.evictList.Prev(h) {
		keys = append(keys, c.evictList.Key(h))
	}
	return keys
}

// Values returns a slice of the values in the cache, from oldest to newest.
func (c *LRU[K, V]) Values() []V {
	values := make([]V, 0, c.evictList.Len())
	for h := c.evictList.Back(); h != internal.Nil; h = c.evictList.Prev(h) {
		values = append(values, c.evictList.Value(h))
	}
	return values
}

// Len returns the number of items in the cache.
func (c *LRU[K, V]) Len() int {
	return c.evictList.Len()
}

// Cap returns the capacity of the cache
func (c *LRU[K, V]) Cap() int {
	return c.size
}

// Check walks the recency list in both directions and verifies it against
// the index. A non-nil result wraps ErrInconsistent.
func (c *LRU[K, V]) Check() error {
	n := c.evictList.Len()
	if n > c.size {
		return fmt.Errorf("%w: %d entries exceed capacity %d", ErrInconsistent, n, c.size)
	}
	if len(c.items) != n {
		return fmt.Errorf("%w: index holds %d keys, list holds %d", ErrInconsistent, len(c.items), n)
	}

	seen := 0
	prev := internal.Nil
	for h := c.evictList.Front(); h != internal.Nil; h = c.evictList.Next(h) {
		if seen == n {
			return fmt.Errorf("%w: forward walk longer than %d, list has a cycle", ErrInconsistent, n)
		}
		if c.evictList.Prev(h) != prev {
			return fmt.Errorf("%w: back link of %v is broken", ErrInconsistent, c.evictList.Key(h))
		}
		k := c.evictList.Key(h)
		if got, ok := c.items[k]; !ok || got != h {
			return fmt.Errorf("%w: key %v not indexed at its list position", ErrInconsistent, k)
		}
		prev = h
		seen++
	}
	if seen != n {
		return fmt.Errorf("%w: forward walk reached %d of %d entries", ErrInconsistent, seen, n)
	}
	if c.evictList.Back() != prev {
		return fmt.Errorf("%w: back of list is not the last entry reached from the front", ErrInconsistent)
	}
	return nil
}

// removeOldest removes the oldest item from the cache.
func (c *LRU[K, V]) removeOldest() {
	if h := c.evictList.Back(); h != internal.Nil {
		c.removeElement(h)
	}
}

// removeElement is used to remove a given list element from the cache
func (c *LRU[K, V]) removeElement(h internal.Handle) (K, V) {
	k, v := c.evictList.Remove(h)
	delete(c.items, k)
	if c.onEvict != nil {
		c.onEvict(k, v)
	}
	return k, v
}
