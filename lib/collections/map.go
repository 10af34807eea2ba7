package collections

import (
	"cmp"
	"iter"

	"github.com/google/btree"
)

// --------------------------------------------------------------------------
// OrderedMap
// --------------------------------------------------------------------------

type entry[K, V any] struct {
	key K
	val V
}

// OrderedMap maps unique keys to values and iterates in ascending key order
type OrderedMap[K, V any] struct {
	tree *btree.BTreeG[entry[K, V]]
}

// NewOrderedMap creates an empty map with naturally ordered keys
func NewOrderedMap[K cmp.Ordered, V any]() *OrderedMap[K, V] {
	return NewOrderedMapFunc[K, V](cmp.Less[K])
}

// NewOrderedMapFunc creates an empty map with keys ordered by less
func NewOrderedMapFunc[K, V any](less LessFunc[K]) *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		tree: btree.NewG[entry[K, V]](degree, func(a, b entry[K, V]) bool {
			return less(a.key, b.key)
		}),
	}
}

// Put stores v under k, replacing an existing value
func (m *OrderedMap[K, V]) Put(k K, v V) {
	mustInit(m.tree != nil, "OrderedMap")
	m.tree.ReplaceOrInsert(entry[K, V]{key: k, val: v})
}

// PutIfAbsent stores v under k unless k is present and reports whether it stored v
func (m *OrderedMap[K, V]) PutIfAbsent(k K, v V) bool {
	mustInit(m.tree != nil, "OrderedMap")
	if m.tree.Has(entry[K, V]{key: k}) {
		return false
	}
	m.tree.ReplaceOrInsert(entry[K, V]{key: k, val: v})
	return true
}

// Get returns the value stored under k
func (m *OrderedMap[K, V]) Get(k K) (V, bool) {
	if m == nil || m.tree == nil {
		var zero V
		return zero, false
	}
	e, ok := m.tree.Get(entry[K, V]{key: k})
	return e.val, ok
}

// Has reports whether k is present
func (m *OrderedMap[K, V]) Has(k K) bool {
	return m != nil && m.tree != nil && m.tree.Has(entry[K, V]{key: k})
}

// Delete removes k and reports whether it was present
func (m *OrderedMap[K, V]) Delete(k K) bool {
	if m == nil || m.tree == nil {
		return false
	}
	_, found := m.tree.Delete(entry[K, V]{key: k})
	return found
}

// Len returns the number of entries
func (m *OrderedMap[K, V]) Len() int {
	if m == nil || m.tree == nil {
		return 0
	}
	return m.tree.Len()
}

// Clear removes all entries
func (m *OrderedMap[K, V]) Clear() {
	if m.tree != nil {
		m.tree.Clear(false)
	}
}

// All iterates the entries in ascending key order
func (m *OrderedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m == nil || m.tree == nil {
			return
		}
		m.tree.Ascend(func(e entry[K, V]) bool {
			return yield(e.key, e.val)
		})
	}
}

// --------------------------------------------------------------------------
// OrderedMultiMap
// --------------------------------------------------------------------------

type multiEntry[K, V any] struct {
	key K
	seq uint64
	val V
}

// OrderedMultiMap maps keys to any number of values. Entries iterate in ascending key
// order, entries with equal keys in the order they were added.
type OrderedMultiMap[K, V any] struct {
	tree *btree.BTreeG[multiEntry[K, V]]
	less LessFunc[K]
	seq  uint64
}

// NewOrderedMultiMap creates an empty multimap with naturally ordered keys
func NewOrderedMultiMap[K cmp.Ordered, V any]() *OrderedMultiMap[K, V] {
	return NewOrderedMultiMapFunc[K, V](cmp.Less[K])
}

// NewOrderedMultiMapFunc creates an empty multimap with keys ordered by less
func NewOrderedMultiMapFunc[K, V any](less LessFunc[K]) *OrderedMultiMap[K, V] {
	return &OrderedMultiMap[K, V]{
		tree: btree.NewG[multiEntry[K, V]](degree, func(a, b multiEntry[K, V]) bool {
			switch {
			case less(a.key, b.key):
				return true
			case less(b.key, a.key):
				return false
			default:
				return a.seq < b.seq
			}
		}),
		less: less,
	}
}

// Add stores another value under k
func (m *OrderedMultiMap[K, V]) Add(k K, v V) {
	mustInit(m.tree != nil, "OrderedMultiMap")
	m.seq++
	m.tree.ReplaceOrInsert(multiEntry[K, V]{key: k, seq: m.seq, val: v})
}

// entries returns the entries stored under k in insertion order
func (m *OrderedMultiMap[K, V]) entries(k K) []multiEntry[K, V] {
	if m == nil || m.tree == nil {
		return nil
	}
	var found []multiEntry[K, V]
	m.tree.AscendGreaterOrEqual(multiEntry[K, V]{key: k}, func(e multiEntry[K, V]) bool {
		if !m.less.equivalent(e.key, k) {
			return false
		}
		found = append(found, e)
		return true
	})
	return found
}

// GetAll returns the values stored under k in insertion order
func (m *OrderedMultiMap[K, V]) GetAll(k K) []V {
	var vals []V
	for _, e := range m.entries(k) {
		vals = append(vals, e.val)
	}
	return vals
}

// Count returns the number of values stored under k
func (m *OrderedMultiMap[K, V]) Count(k K) int {
	return len(m.entries(k))
}

// DeleteAll removes every value stored under k and returns how many there were
func (m *OrderedMultiMap[K, V]) DeleteAll(k K) int {
	doomed := m.entries(k)
	for _, e := range doomed {
		m.tree.Delete(e)
	}
	return len(doomed)
}

// Len returns the number of entries including duplicates
func (m *OrderedMultiMap[K, V]) Len() int {
	if m == nil || m.tree == nil {
		return 0
	}
	return m.tree.Len()
}

// Clear removes all entries
func (m *OrderedMultiMap[K, V]) Clear() {
	if m.tree != nil {
		m.tree.Clear(false)
	}
	m.seq = 0
}

// All iterates every entry in ascending key order
func (m *OrderedMultiMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m == nil || m.tree == nil {
			return
		}
		m.tree.Ascend(func(e multiEntry[K, V]) bool {
			return yield(e.key, e.val)
		})
	}
}
