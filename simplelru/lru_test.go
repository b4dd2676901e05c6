// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package simplelru

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/venkatsvpr/recencylru/internal"
)

func TestLRU(t *testing.T) {
	evictCounter := 0
	onEvicted := func(k int, v int) {
		if k != v {
			t.Fatalf("Evict values not equal (%v!=%v)", k, v)
		}
		evictCounter++
	}
	l, err := NewLRU(128, onEvicted)
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	for i := 0; i < 256; i++ {
		l.Add(i, i)
		if err := l.Check(); err != nil {
			t.Fatalf("after add %v: %v", i, err)
		}
	}
	if l.Len() != 128 {
		t.Fatalf("bad len: %v", l.Len())
	}

	if evictCounter != 128 {
		t.Fatalf("bad evict count: %v", evictCounter)
	}

	for i, k := range l.Keys() {
		if v, ok := l.Get(k); !ok || v != k || v != i+128 {
			t.Fatalf("bad key: %v", k)
		}
	}
	for i, v := range l.Values() {
		if v != i+128 {
			t.Fatalf("bad value: %v", v)
		}
	}
	for i := 0; i < 128; i++ {
		if _, ok := l.Get(i); ok {
			t.Fatalf("should be evicted")
		}
	}
	for i := 128; i < 256; i++ {
		if _, ok := l.Get(i); !ok {
			t.Fatalf("should not be evicted")
		}
	}
	for i := 128; i < 192; i++ {
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

	l.Get(192) // expect 192 to be last key in l.Keys()

	for i, k := range l.Keys() {
		if (i < 63 && k != i+193) || (i == 63 && k != 192) {
			t.Fatalf("out of order key: %v", k)
		}
	}

	l.Purge()
	if l.Len() != 0 {
		t.Fatalf("bad len: %v", l.Len())
	}
	if evictCounter != 128+64+64 {
		t.Fatalf("purge should report every entry: %v", evictCounter)
	}
	if _, ok := l.Get(200); ok {
		t.Fatalf("should contain nothing")
	}
	if err := l.Check(); err != nil {
		t.Fatalf("after purge: %v", err)
	}
}

func TestLRU_InvalidCapacity(t *testing.T) {
	for _, size := range []int{0, -1, -128} {
		l, err := NewLRU[int, int](size, nil)
		if !errors.Is(err, ErrInvalidCapacity) {
			t.Fatalf("size %v: expected ErrInvalidCapacity, got %v", size, err)
		}
		if l != nil {
			t.Fatalf("size %v: expected nil cache", size)
		}
	}
}

// Test that a huge capacity is accepted without reserving memory for it
func TestLRU_LargeCapacity(t *testing.T) {
	for _, size := range []int{math.MaxInt, math.MaxInt32} {
		l, err := NewLRU[int, int](size, nil)
		if err != nil {
			t.Fatalf("size %v: err: %v", size, err)
		}
		if l.Cap() != size {
			t.Fatalf("size %v: bad cap: %v", size, l.Cap())
		}
		for i := 0; i < 5; i++ {
			if l.Add(i, i) {
				t.Fatalf("size %v: unexpected eviction", size)
			}
		}
		l.Get(0)
		if err := l.Check(); err != nil {
			t.Fatalf("size %v: %v", size, err)
		}
		l.wantKeys(t, []int{1, 2, 3, 4, 0})
	}
}

// Test that the Purge callback sees an empty cache and may add to it
func TestLRU_PurgeCallbackMayReenter(t *testing.T) {
	var l *LRU[int, int]
	var purged []int
	l, err := NewLRU(4, func(k, v int) {
		if l.Contains(k) {
			t.Errorf("%v still resident during its callback", k)
		}
		purged = append(purged, k)
		l.Add(k+100, v)
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	for i := 0; i < 3; i++ {
		l.Add(i, i)
	}

	l.Purge()
	if want := []int{0, 1, 2}; !reflect.DeepEqual(purged, want) {
		t.Fatalf("purged got: %v want: %v", purged, want)
	}
	if err := l.Check(); err != nil {
		t.Fatalf("after purge: %v", err)
	}
	l.wantKeys(t, []int{100, 101, 102})
}

func TestLRU_GetNewest(t *testing.T) {
	l, err := NewLRU[int, int](3, nil)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if _, _, ok := l.GetNewest(); ok {
		t.Fatalf("empty cache has no newest entry")
	}
	l.Add(1, 1)
	l.Add(2, 2)
	l.Add(3, 3)
	l.Get(1)
	if k, v, ok := l.GetNewest(); !ok || k != 1 || v != 1 {
		t.Fatalf("bad newest: %v %v %v", k, v, ok)
	}
	l.Add(2, 20)
	if k, v, ok := l.GetNewest(); !ok || k != 2 || v != 20 {
		t.Fatalf("bad newest: %v %v %v", k, v, ok)
	}
}

// Test that repeated Get leaves the order alone once the key is newest
func TestLRU_RepeatedGet(t *testing.T) {
	l, err := NewLRU[int, string](3, nil)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	l.Add(1, "a")
	l.Add(2, "b")
	l.Add(3, "c")

	l.Get(1)
	want := l.Keys()
	for i := 0; i < 3; i++ {
		if v, ok := l.Get(1); !ok || v != "a" {
			t.Fatalf("bad value: %v %v", v, ok)
		}
	}
	if got := l.Keys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("repeated get changed order: %v, want %v", got, want)
	}
}

// Test that a miss does not touch the cache
func TestLRU_MissIsSideEffectFree(t *testing.T) {
	evicted := 0
	l, err := NewLRU(2, func(int, int) { evicted++ })
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	l.Add(1, 1)
	l.Add(2, 2)
	l.Remove(1)

	want := l.Keys()
	for _, k := range []int{1, 3, 99} {
		if v, ok := l.Get(k); ok || v != 0 {
			t.Fatalf("get %v: expected miss, got %v %v", k, v, ok)
		}
	}
	if got := l.Keys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("miss changed order: %v, want %v", got, want)
	}
	if l.Len() != 1 || evicted != 1 {
		t.Fatalf("miss changed contents: len %v, evicted %v", l.Len(), evicted)
	}
}

func TestLRU_CheckDetectsCorruption(t *testing.T) {
	newFull := func() *LRU[int, int] {
		l, err := NewLRU[int, int](4, nil)
		if err != nil {
			t.Fatalf("err: %v", err)
		}
		for i := 0; i < 4; i++ {
			l.Add(i, i)
		}
		if err := l.Check(); err != nil {
			t.Fatalf("fresh cache: %v", err)
		}
		return l
	}

	t.Run("missing index entry", func(t *testing.T) {
		l := newFull()
		delete(l.items, 2)
		if err := l.Check(); !errors.Is(err, ErrInconsistent) {
			t.Fatalf("expected ErrInconsistent, got %v", err)
		}
	})

	t.Run("index points elsewhere", func(t *testing.T) {
		l := newFull()
		l.items[1], l.items[2] = l.items[2], l.items[1]
		if err := l.Check(); !errors.Is(err, ErrInconsistent) {
			t.Fatalf("expected ErrInconsistent, got %v", err)
		}
	})

	t.Run("orphaned list entry", func(t *testing.T) {
		l := newFull()
		h := l.items[3]
		l.evictList.Remove(h)
		l.items[3] = internal.Nil
		if err := l.Check(); !errors.Is(err, ErrInconsistent) {
			t.Fatalf("expected ErrInconsistent, got %v", err)
		}
	})

	t.Run("over capacity", func(t *testing.T) {
		l := newFull()
		l.size = 2
		if err := l.Check(); !errors.Is(err, ErrInconsistent) {
			t.Fatalf("expected ErrInconsistent, got %v", err)
		}
	})
}

func TestCache_EvictionSameKey(t *testing.T) {
	var evictedKeys []int

	cache, _ := NewLRU(
		2,
		func(key int, _ struct{}) {
			evictedKeys = append(evictedKeys, key)
		})

	if evicted := cache.Add(1, struct{}{}); evicted {
		t.Error("First 1: got unexpected eviction")
	}
	cache.wantKeys(t, []int{1})

	if evicted := cache.Add(2, struct{}{}); evicted {
		t.Error("2: got unexpected eviction")
	}
	cache.wantKeys(t, []int{1, 2})

	if evicted := cache.Add(1, struct{}{}); evicted {
		t.Error("Second 1: got unexpected eviction")
	}
	cache.wantKeys(t, []int{2, 1})

	if evicted := cache.Add(3, struct{}{}); !evicted {
		t.Error("3: did not get expected eviction")
	}
	cache.wantKeys(t, []int{1, 3})

	want := []int{2}
	if !reflect.DeepEqual(evictedKeys, want) {
		t.Errorf("evictedKeys got: %v want: %v", evictedKeys, want)
	}
}

func (c *LRU[K, V]) wantKeys(t *testing.T, want []K) {
	t.Helper()
	got := c.Keys()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("wrong keys got: %v, want: %v ", got, want)
	}
}
