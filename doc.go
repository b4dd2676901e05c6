// Package lru provides a fixed size, least recently used cache.
//
// Cache holds at most the number of entries it was created with. Get and Add
// mark a key as the most recently used one; when Add has to make room for a
// new key it evicts the entry that has gone untouched the longest. Lookups,
// inserts and evictions are all O(1).
//
// Cache takes a lock around every call and is safe for concurrent use. Get
// reorders entries, so it takes the write lock like Add does. Callers that
// own a cache from a single goroutine can drop the lock with WithoutLocking,
// or use simplelru.LRU directly.
//
// Eviction callbacks registered with WithCallback run after the lock is
// released. Hit, miss, eviction and occupancy counts can be exported to
// Prometheus with WithMetrics.
package lru
