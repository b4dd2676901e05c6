// Package internal holds the recency list shared by the LRU implementations.
//
// The list is a doubly linked list whose nodes live in a single slice and
// refer to their neighbours by slot index instead of by pointer. Slot 0 is a
// sentinel root: root.next is the front (most recent) and root.prev is the
// back (least recent). Released slots are chained on a free list and reused,
// so a list created for n entries never grows past n+1 slots while it holds
// at most n entries.
package internal

// Handle identifies an element of a List. The zero Handle is Nil.
type Handle int

// maxPrealloc bounds the slots NewList reserves up front; the arena grows
// on demand past it.
const maxPrealloc = 1024

// Nil is returned by Front, Back, Next and Prev when there is no element.
const Nil Handle = 0

type node[K comparable, V any] struct {
	key   K
	value V
	prev  Handle
	next  Handle
}

// List is an arena-backed doubly linked list of key/value pairs.
// It is not safe for concurrent use.
type List[K comparable, V any] struct {
	nodes []node[K, V]
	free  Handle // head of the free list, chained through next
	len   int
}

// NewList returns an empty list with room for up to hint elements, capped at
// maxPrealloc, before the arena has to grow.
func NewList[K comparable, V any](hint int) *List[K, V] {
	if hint < 0 {
		hint = 0
	}
	if hint > maxPrealloc {
		hint = maxPrealloc
	}
	l := &List[K, V]{nodes: make([]node[K, V], 1, hint+1)}
	return l.Init()
}

// Init clears the list, keeping the allocated arena.
func (l *List[K, V]) Init() *List[K, V] {
	var zero node[K, V]
	for i := range l.nodes {
		l.nodes[i] = zero
	}
	l.nodes = l.nodes[:1]
	l.free = Nil
	l.len = 0
	return l
}

// Len returns the number of elements in the list.
func (l *List[K, V]) Len() int { return l.len }

// Front returns the most recently pushed or moved element, or Nil.
func (l *List[K, V]) Front() Handle { return l.nodes[0].next }

// Back returns the element furthest from the front, or Nil.
func (l *List[K, V]) Back() Handle { return l.nodes[0].prev }

// Next returns the element after h (towards the back), or Nil.
func (l *List[K, V]) Next(h Handle) Handle { return l.nodes[h].next }

// Prev returns the element before h (towards the front), or Nil.
func (l *List[K, V]) Prev(h Handle) Handle { return l.nodes[h].prev }

// Key returns the key stored at h.
func (l *List[K, V]) Key(h Handle) K { return l.nodes[h].key }

// Value returns the value stored at h.
func (l *List[K, V]) Value(h Handle) V { return l.nodes[h].value }

// SetValue replaces the value stored at h without moving it.
func (l *List[K, V]) SetValue(h Handle, v V) { l.nodes[h].value = v }

// PushFront inserts a new element at the front and returns its handle.
func (l *List[K, V]) PushFront(k K, v V) Handle {
	h := l.alloc()
	n := &l.nodes[h]
	n.key, n.value = k, v
	l.link(h, 0)
	l.len++
	return h
}

// MoveToFront moves h to the front. h must belong to l.
func (l *List[K, V]) MoveToFront(h Handle) {
	if l.nodes[0].next == h {
		return
	}
	l.unlink(h)
	l.link(h, 0)
}

// Remove unlinks h, releases its slot and returns what it held.
func (l *List[K, V]) Remove(h Handle) (K, V) {
	l.unlink(h)
	n := &l.nodes[h]
	k, v := n.key, n.value
	var zero node[K, V]
	*n = zero
	n.next = l.free
	l.free = h
	l.len--
	return k, v
}

func (l *List[K, V]) alloc() Handle {
	if l.free != Nil {
		h := l.free
		l.free = l.nodes[h].next
		l.nodes[h].next = Nil
		return h
	}
	l.nodes = append(l.nodes, node[K, V]{})
	return Handle(len(l.nodes) - 1)
}

// link inserts h after at.
func (l *List[K, V]) link(h, at Handle) {
	next := l.nodes[at].next
	l.nodes[h].prev = at
	l.nodes[h].next = next
	l.nodes[next].prev = h
	l.nodes[at].next = h
}

func (l *List[K, V]) unlink(h Handle) {
	n := &l.nodes[h]
	l.nodes[n.prev].next = n.next
	l.nodes[n.next].prev = n.prev
	n.prev, n.next = Nil, Nil
}
