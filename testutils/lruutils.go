// Package testutils holds behavioural suites shared by the tests of every
// cache type that implements simplelru.LRUCache.
package testutils

import (
	"reflect"
	"testing"

	"github.com/venkatsvpr/recencylru/simplelru"
)

// WantKeys fails t unless l holds exactly want, ordered oldest to newest.
func WantKeys[K comparable, V any](t *testing.T, l simplelru.LRUCache[K, V], want []K) {
	t.Helper()
	got := l.Keys()
	if len(got) == 0 && len(want) == 0 {
		return
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("wrong keys got: %v, want: %v ", got, want)
	}
}

func BasicTest(t *testing.T, l simplelru.LRUCache[int, int], capacity int, evictCounter *int) {
	// add twice as much the capacity to check if eviction occurs
	for i := 0; i < 2*capacity; i++ {
		l.Add(i, i)
	}

	if l.Len() != capacity {
		t.Fatalf("bad len: %v", l.Len())
	}
	if l.Cap() != capacity {
		t.Fatalf("bad cap: %v", l.Cap())
	}

	// half of them should be evicted to make room for the incoming ones
	if *evictCounter != capacity {
		t.Fatalf("bad evict count: %v", *evictCounter)
	}

	// cache should contain only the keys from capacity..2*capacity, anything before
	// that should have been evicted
	for i, k := range l.Keys() {
		if v, ok := l.Get(k); !ok || v != k || v != i+capacity {
			t.Fatalf("bad key: %v", k)
		}
	}
	for i, v := range l.Values() {
		if v != i+capacity {
			t.Fatalf("bad value: %v", v)
		}
	}

	for i := 0; i < capacity; i++ {
		if _, ok := l.Get(i); ok {
			t.Fatalf("should be evicted")
		}
	}

	for i := capacity; i < 2*capacity; i++ {
		if _, ok := l.Get(i); !ok {
			t.Fatalf("should not be evicted")
		}
	}

	// delete half the items from cache
	lastIndex := capacity + capacity/2
	for i := capacity; i < lastIndex; i++ {
		if ok := l.Remove(i); !ok {
			t.Fatalf("should be contained")
		}
		if ok := l.Remove(i); ok {
			t.Fatalf("should not be contained")
		}
		if _, ok := l.Get(i); ok {
			t.Fatalf("should be deleted")
		}
	}

	// this makes this item the most recently accessed; moved to the front
	l.Get(lastIndex)

	cacheLen := l.Len()
	if capacity-capacity/2 != cacheLen {
		t.Fatalf("invalid len. expected %v, got %v", capacity-capacity/2, cacheLen)
	}

	// Keys - returns items from oldest to newest.
	for i, k := range l.Keys() {
		// last item should be `lastIndex` and make sure the other items are ordered
		if (i == cacheLen-1 && k != lastIndex) || (i < cacheLen-1 && k != i+lastIndex+1) {
			t.Fatalf("out of order key: %v %v %v", i, k, cacheLen-1)
		}
	}

	l.Purge()
	if l.Len() != 0 {
		t.Fatalf("bad len: %v", l.Len())
	}

	// try to get the random item
	if _, ok := l.Get(200); ok {
		t.Fatalf("should contain nothing")
	}
}

func GetOldestRemoveOldestTest(t *testing.T, l simplelru.LRUCache[int, int], capacity int) {
	if _, _, ok := l.GetOldest(); ok {
		t.Fatalf("empty cache has no oldest entry")
	}
	if _, _, ok := l.RemoveOldest(); ok {
		t.Fatalf("empty cache has nothing to remove")
	}

	// add twice as much the capacity
	for i := 0; i < 2*capacity; i++ {
		l.Add(i, i)
	}

	k, _, ok := l.GetOldest()
	if !ok {
		t.Fatalf("missing")
	}
	if k != capacity {
		t.Fatalf("bad: %v", k)
	}

	k, _, ok = l.RemoveOldest()
	if !ok {
		t.Fatalf("missing")
	}
	if k != capacity {
		t.Fatalf("bad: %v", k)
	}

	k, _, ok = l.RemoveOldest()
	if !ok {
		t.Fatalf("missing")
	}
	if k != capacity+1 {
		t.Fatalf("bad: %v", k)
	}
}

func AddTest(t *testing.T, l simplelru.LRUCache[int, int], capacity int, evictCounter *int) {
	for i := 0; i < capacity; i++ {
		if l.Add(i, i) || *evictCounter != 0 {
			t.Errorf("should not have an eviction")
		}
	}
	// updating a resident key never evicts
	if l.Add(0, 100) || *evictCounter != 0 || l.Len() != capacity {
		t.Errorf("update should not have an eviction")
	}
	if l.Add(capacity, capacity) == false || *evictCounter != 1 {
		t.Errorf("should have an eviction")
	}
	if l.Len() != capacity {
		t.Errorf("bad len: %v", l.Len())
	}
}

func ContainsTest(t *testing.T, l simplelru.LRUCache[int, int], capacity int) {
	for i := 0; i < capacity; i++ {
		l.Add(i, i)
	}

	// contains should not update the recent-ness so this item will remain the oldest
	if !l.Contains(0) {
		t.Errorf("0 should be contained")
	}

	// oldest (0) should have been evicted
	l.Add(capacity, capacity)
	if l.Contains(0) {
		t.Errorf("Contains should not have updated recent-ness of 0")
	}
}

func PeekTest(t *testing.T, l simplelru.LRUCache[int, int], capacity int) {
	for i := 0; i < capacity; i++ {
		l.Add(i, i)
	}

	if v, ok := l.Peek(0); !ok || v != 0 {
		t.Errorf("0 should be set to 0: %v, %v", v, ok)
	}

	l.Add(capacity, capacity)
	if l.Contains(0) {
		t.Errorf("Peek should not have updated recent-ness of 0")
	}
}

// ScenarioTest replays the placeholder lookup walkthrough on a cache of
// capacity 4: fill, touch, then insert past capacity twice.
func ScenarioTest(t *testing.T, l simplelru.LRUCache[int, string]) {
	if l.Cap() != 4 {
		t.Fatalf("scenario needs capacity 4, got %v", l.Cap())
	}

	l.Add(1, "A")
	l.Add(2, "B")
	l.Add(3, "C")
	l.Add(4, "D")
	WantKeys(t, l, []int{1, 2, 3, 4})
	if k, _, _ := l.GetOldest(); k != 1 {
		t.Fatalf("oldest should be 1, got %v", k)
	}

	l.Get(2)
	l.Get(1)
	WantKeys(t, l, []int{3, 4, 2, 1})

	if !l.Add(5, "E") {
		t.Fatalf("5 should have evicted")
	}
	if l.Contains(3) {
		t.Fatalf("3 should have been evicted")
	}
	WantKeys(t, l, []int{4, 2, 1, 5})

	if !l.Add(6, "F") {
		t.Fatalf("6 should have evicted")
	}
	if l.Contains(4) {
		t.Fatalf("4 should have been evicted")
	}
	WantKeys(t, l, []int{2, 1, 5, 6})

	if v, ok := l.Get(1); !ok || v != "A" {
		t.Fatalf("1 should be A: %v, %v", v, ok)
	}
	before := l.Keys()
	if v, ok := l.Get(8); ok || v != "" {
		t.Fatalf("8 should not be found: %v, %v", v, ok)
	}
	WantKeys(t, l, before)
	if l.Len() != 4 {
		t.Fatalf("bad len: %v", l.Len())
	}
}

// CapacityOneTest checks that every new key displaces the single resident.
func CapacityOneTest(t *testing.T, l simplelru.LRUCache[int, int]) {
	if l.Cap() != 1 {
		t.Fatalf("test needs capacity 1, got %v", l.Cap())
	}
	if l.Add(1, 1) {
		t.Fatalf("first add should not evict")
	}
	for i := 2; i < 10; i++ {
		if !l.Add(i, i) {
			t.Fatalf("add %v should evict", i)
		}
		if l.Add(i, i*10) {
			t.Fatalf("update of %v should not evict", i)
		}
		WantKeys(t, l, []int{i})
		if v, _ := l.Peek(i); v != i*10 {
			t.Fatalf("bad value for %v: %v", i, v)
		}
	}
}
