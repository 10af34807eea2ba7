package collections

import (
	"cmp"
	"iter"

	"github.com/google/btree"
)

// degree of every B-tree in this package
const degree = 16

// LessFunc reports whether a sorts before b. It must be a strict weak ordering.
type LessFunc[K any] func(a, b K) bool

// equivalent reports whether neither key sorts before the other
func (less LessFunc[K]) equivalent(a, b K) bool {
	return !less(a, b) && !less(b, a)
}

// mustInit panics for containers that were not created by a constructor, since only a
// constructor knows the key order
func mustInit(ok bool, typ string) {
	if !ok {
		panic("collections: " + typ + " must be created with New" + typ + " or New" + typ + "Func")
	}
}

// --------------------------------------------------------------------------
// OrderedSet
// --------------------------------------------------------------------------

// OrderedSet is a set of unique keys iterated in ascending order
type OrderedSet[K any] struct {
	tree *btree.BTreeG[K]
}

// NewOrderedSet creates a set of naturally ordered keys holding keys
func NewOrderedSet[K cmp.Ordered](keys ...K) *OrderedSet[K] {
	return NewOrderedSetFunc(cmp.Less[K], keys...)
}

// NewOrderedSetFunc creates a set ordered by less holding keys
func NewOrderedSetFunc[K any](less LessFunc[K], keys ...K) *OrderedSet[K] {
	s := &OrderedSet[K]{tree: btree.NewG[K](degree, btree.LessFunc[K](less))}
	for _, k := range keys {
		s.Insert(k)
	}
	return s
}

// Insert adds k and reports whether it was not present before
func (s *OrderedSet[K]) Insert(k K) bool {
	mustInit(s.tree != nil, "OrderedSet")
	_, replaced := s.tree.ReplaceOrInsert(k)
	return !replaced
}

// Has reports whether k is in the set
func (s *OrderedSet[K]) Has(k K) bool {
	return s != nil && s.tree != nil && s.tree.Has(k)
}

// Delete removes k and reports whether it was present
func (s *OrderedSet[K]) Delete(k K) bool {
	if s == nil || s.tree == nil {
		return false
	}
	_, found := s.tree.Delete(k)
	return found
}

// Len returns the number of keys
func (s *OrderedSet[K]) Len() int {
	if s == nil || s.tree == nil {
		return 0
	}
	return s.tree.Len()
}

// Clear removes all keys
func (s *OrderedSet[K]) Clear() {
	if s.tree != nil {
		s.tree.Clear(false)
	}
}

// All iterates the keys in ascending order
func (s *OrderedSet[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		if s == nil || s.tree == nil {
			return
		}
		s.tree.Ascend(func(k K) bool {
			return yield(k)
		})
	}
}

// --------------------------------------------------------------------------
// OrderedMultiSet
// --------------------------------------------------------------------------

// multiKey orders equal keys by the sequence number they were inserted with
type multiKey[K any] struct {
	key K
	seq uint64
}

func lessMultiKey[K any](less LessFunc[K]) btree.LessFunc[multiKey[K]] {
	return func(a, b multiKey[K]) bool {
		switch {
		case less(a.key, b.key):
			return true
		case less(b.key, a.key):
			return false
		default:
			return a.seq < b.seq
		}
	}
}

// OrderedMultiSet is a set that keeps duplicate keys. Keys iterate in ascending order,
// equal keys in the order they were inserted.
type OrderedMultiSet[K any] struct {
	tree *btree.BTreeG[multiKey[K]]
	less LessFunc[K]
	seq  uint64
}

// NewOrderedMultiSet creates a multiset of naturally ordered keys holding keys
func NewOrderedMultiSet[K cmp.Ordered](keys ...K) *OrderedMultiSet[K] {
	return NewOrderedMultiSetFunc(cmp.Less[K], keys...)
}

// NewOrderedMultiSetFunc creates a multiset ordered by less holding keys
func NewOrderedMultiSetFunc[K any](less LessFunc[K], keys ...K) *OrderedMultiSet[K] {
	s := &OrderedMultiSet[K]{
		tree: btree.NewG[multiKey[K]](degree, lessMultiKey(less)),
		less: less,
	}
	for _, k := range keys {
		s.Insert(k)
	}
	return s
}

// Insert adds another occurrence of k
func (s *OrderedMultiSet[K]) Insert(k K) {
	mustInit(s.tree != nil, "OrderedMultiSet")
	s.seq++
	s.tree.ReplaceOrInsert(multiKey[K]{key: k, seq: s.seq})
}

// occurrences calls fn for every stored occurrence of k, oldest first, until fn
// returns false
func (s *OrderedMultiSet[K]) occurrences(k K, fn func(item multiKey[K]) bool) {
	if s == nil || s.tree == nil {
		return
	}
	s.tree.AscendGreaterOrEqual(multiKey[K]{key: k}, func(item multiKey[K]) bool {
		if !s.less.equivalent(item.key, k) {
			return false
		}
		return fn(item)
	})
}

// Count returns the number of occurrences of k
func (s *OrderedMultiSet[K]) Count(k K) int {
	n := 0
	s.occurrences(k, func(multiKey[K]) bool {
		n++
		return true
	})
	return n
}

// Has reports whether k occurs at least once
func (s *OrderedMultiSet[K]) Has(k K) bool {
	return s.Count(k) > 0
}

// Delete removes the oldest occurrence of k and reports whether one existed
func (s *OrderedMultiSet[K]) Delete(k K) bool {
	var (
		oldest multiKey[K]
		found  bool
	)
	s.occurrences(k, func(item multiKey[K]) bool {
		oldest, found = item, true
		return false
	})
	if found {
		s.tree.Delete(oldest)
	}
	return found
}

// Len returns the number of keys including duplicates
func (s *OrderedMultiSet[K]) Len() int {
	if s == nil || s.tree == nil {
		return 0
	}
	return s.tree.Len()
}

// Clear removes all keys
func (s *OrderedMultiSet[K]) Clear() {
	if s.tree != nil {
		s.tree.Clear(false)
	}
	s.seq = 0
}

// All iterates every occurrence in ascending key order
func (s *OrderedMultiSet[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		if s == nil || s.tree == nil {
			return
		}
		s.tree.Ascend(func(item multiKey[K]) bool {
			return yield(item.key)
		})
	}
}
