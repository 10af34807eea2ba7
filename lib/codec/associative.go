package codec

import (
	"bytes"
	"cmp"
	"iter"
	"maps"
	"slices"

	"github.com/ValentinKolb/dBin/lib/collections"
)

// assocCodec implements every associative variant. C is the collection type, V is
// struct{} for key-only variants (val is nil then).
type assocCodec[K, V, C any] struct {
	category Category
	key      Codec[K]
	val      Codec[V]

	// sorted makes the iteration order of hash based collections deterministic by
	// ordering the entries on their encoded key bytes
	sorted bool

	size   func(c C) int
	all    func(c C) iter.Seq2[K, V]
	reset  func(c *C)
	insert func(c C, k K, v V)
}

func (c assocCodec[K, V, C]) Category() Category { return c.category }

func (c assocCodec[K, V, C]) Encode(w *BinWriter, v C) {
	w.WriteCount(c.size(v))
	if c.sorted {
		c.encodeSorted(w, v)
		return
	}
	for k, val := range c.all(v) {
		if w.Err != nil {
			return
		}
		c.key.Encode(w, k)
		if c.val != nil {
			c.val.Encode(w, val)
		}
	}
}

// sortedEntry points into the scratch buffer holding the encoded key
type sortedEntry[V any] struct {
	start, end int
	val        V
}

func (c assocCodec[K, V, C]) encodeSorted(w *BinWriter, v C) {
	if w.Err != nil {
		return
	}
	scratch := NewBufBinWriter()
	entries := make([]sortedEntry[V], 0, c.size(v))
	for k, val := range c.all(v) {
		start := scratch.Len()
		c.key.Encode(scratch.BinWriter, k)
		entries = append(entries, sortedEntry[V]{start: start, end: scratch.Len(), val: val})
	}
	if scratch.Err != nil {
		w.Fail(scratch.Err)
		return
	}
	keys := scratch.Bytes()
	slices.SortStableFunc(entries, func(a, b sortedEntry[V]) int {
		return bytes.Compare(keys[a.start:a.end], keys[b.start:b.end])
	})
	for _, e := range entries {
		if w.Err != nil {
			return
		}
		w.WriteBytes(keys[e.start:e.end])
		if c.val != nil {
			c.val.Encode(w, e.val)
		}
	}
}

func (c assocCodec[K, V, C]) Decode(r *BinReader, v *C) {
	c.reset(v)
	n := r.ReadCount()
	for i := 0; i < n && r.Err == nil; i++ {
		var (
			k   K
			val V
		)
		c.key.Decode(r, &k)
		if c.val != nil {
			c.val.Decode(r, &val)
		}
		if r.Err != nil {
			return
		}
		c.insert(*v, k, val)
	}
}

// keysOnly adapts a key iterator to the key/value shape used by assocCodec
func keysOnly[K any](seq iter.Seq[K]) iter.Seq2[K, struct{}] {
	return func(yield func(K, struct{}) bool) {
		for k := range seq {
			if !yield(k, struct{}{}) {
				return
			}
		}
	}
}

// --------------------------------------------------------------------------
// Unordered (built-in maps)
// --------------------------------------------------------------------------

// Set returns the codec for map[K]struct{}, the unique unordered key-only variant
func Set[K comparable](key Codec[K]) Codec[map[K]struct{}] {
	return assocCodec[K, struct{}, map[K]struct{}]{
		category: CategoryAssociative,
		key:      key,
		sorted:   true,
		size:     func(m map[K]struct{}) int { return len(m) },
		all:      func(m map[K]struct{}) iter.Seq2[K, struct{}] { return maps.All(m) },
		reset:    resetMap[K, struct{}],
		insert:   func(m map[K]struct{}, k K, _ struct{}) { m[k] = struct{}{} },
	}
}

// Map returns the codec for map[K]V, the unique unordered key/value variant. When the
// wire holds a key twice the first value is kept.
func Map[K comparable, V any](key Codec[K], val Codec[V]) Codec[map[K]V] {
	return assocCodec[K, V, map[K]V]{
		category: CategoryAssociative | AssocKeyValue,
		key:      key,
		val:      val,
		sorted:   true,
		size:     func(m map[K]V) int { return len(m) },
		all:      func(m map[K]V) iter.Seq2[K, V] { return maps.All(m) },
		reset:    resetMap[K, V],
		insert: func(m map[K]V, k K, v V) {
			if _, ok := m[k]; !ok {
				m[k] = v
			}
		},
	}
}

func resetMap[K comparable, V any](m *map[K]V) {
	if *m == nil {
		*m = make(map[K]V)
		return
	}
	clear(*m)
}

// --------------------------------------------------------------------------
// Ordered (B-tree collections)
// --------------------------------------------------------------------------

// OrderedSet returns the codec for the unique ordered key-only variant
func OrderedSet[K cmp.Ordered](key Codec[K]) Codec[*collections.OrderedSet[K]] {
	return OrderedSetFunc(key, cmp.Less[K])
}

// OrderedSetFunc is OrderedSet for keys ordered by less. A decoded nil set is created
// with less; an existing set keeps its own order.
func OrderedSetFunc[K any](key Codec[K], less collections.LessFunc[K]) Codec[*collections.OrderedSet[K]] {
	return assocCodec[K, struct{}, *collections.OrderedSet[K]]{
		category: CategoryAssociative | AssocOrdered,
		key:      key,
		size:     func(s *collections.OrderedSet[K]) int { return s.Len() },
		all:      func(s *collections.OrderedSet[K]) iter.Seq2[K, struct{}] { return keysOnly(s.All()) },
		reset: func(s **collections.OrderedSet[K]) {
			if *s == nil {
				*s = collections.NewOrderedSetFunc(less)
				return
			}
			(*s).Clear()
		},
		insert: func(s *collections.OrderedSet[K], k K, _ struct{}) {
			if !s.Has(k) {
				s.Insert(k)
			}
		},
	}
}

// OrderedMultiSet returns the codec for the multi ordered key-only variant
func OrderedMultiSet[K cmp.Ordered](key Codec[K]) Codec[*collections.OrderedMultiSet[K]] {
	return OrderedMultiSetFunc(key, cmp.Less[K])
}

// OrderedMultiSetFunc is OrderedMultiSet for keys ordered by less
func OrderedMultiSetFunc[K any](key Codec[K], less collections.LessFunc[K]) Codec[*collections.OrderedMultiSet[K]] {
	return assocCodec[K, struct{}, *collections.OrderedMultiSet[K]]{
		category: CategoryAssociative | AssocOrdered | AssocMulti,
		key:      key,
		size:     func(s *collections.OrderedMultiSet[K]) int { return s.Len() },
		all:      func(s *collections.OrderedMultiSet[K]) iter.Seq2[K, struct{}] { return keysOnly(s.All()) },
		reset: func(s **collections.OrderedMultiSet[K]) {
			if *s == nil {
				*s = collections.NewOrderedMultiSetFunc(less)
				return
			}
			(*s).Clear()
		},
		insert: func(s *collections.OrderedMultiSet[K], k K, _ struct{}) { s.Insert(k) },
	}
}

// OrderedMap returns the codec for the unique ordered key/value variant. When the wire
// holds a key twice the first value is kept.
func OrderedMap[K cmp.Ordered, V any](key Codec[K], val Codec[V]) Codec[*collections.OrderedMap[K, V]] {
	return OrderedMapFunc(key, val, cmp.Less[K])
}

// OrderedMapFunc is OrderedMap for keys ordered by less
func OrderedMapFunc[K, V any](key Codec[K], val Codec[V], less collections.LessFunc[K]) Codec[*collections.OrderedMap[K, V]] {
	return assocCodec[K, V, *collections.OrderedMap[K, V]]{
		category: CategoryAssociative | AssocOrdered | AssocKeyValue,
		key:      key,
		val:      val,
		size:     func(m *collections.OrderedMap[K, V]) int { return m.Len() },
		all:      func(m *collections.OrderedMap[K, V]) iter.Seq2[K, V] { return m.All() },
		reset: func(m **collections.OrderedMap[K, V]) {
			if *m == nil {
				*m = collections.NewOrderedMapFunc[K, V](less)
				return
			}
			(*m).Clear()
		},
		insert: func(m *collections.OrderedMap[K, V], k K, v V) { m.PutIfAbsent(k, v) },
	}
}

// OrderedMultiMap returns the codec for the multi ordered key/value variant
func OrderedMultiMap[K cmp.Ordered, V any](key Codec[K], val Codec[V]) Codec[*collections.OrderedMultiMap[K, V]] {
	return OrderedMultiMapFunc(key, val, cmp.Less[K])
}

// OrderedMultiMapFunc is OrderedMultiMap for keys ordered by less
func OrderedMultiMapFunc[K, V any](key Codec[K], val Codec[V], less collections.LessFunc[K]) Codec[*collections.OrderedMultiMap[K, V]] {
	return assocCodec[K, V, *collections.OrderedMultiMap[K, V]]{
		category: CategoryAssociative | AssocOrdered | AssocMulti | AssocKeyValue,
		key:      key,
		val:      val,
		size:     func(m *collections.OrderedMultiMap[K, V]) int { return m.Len() },
		all:      func(m *collections.OrderedMultiMap[K, V]) iter.Seq2[K, V] { return m.All() },
		reset: func(m **collections.OrderedMultiMap[K, V]) {
			if *m == nil {
				*m = collections.NewOrderedMultiMapFunc[K, V](less)
				return
			}
			(*m).Clear()
		},
		insert: func(m *collections.OrderedMultiMap[K, V], k K, v V) { m.Add(k, v) },
	}
}
