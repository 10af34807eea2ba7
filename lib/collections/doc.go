// Package collections provides ordered associative containers backed by a B-tree
// (github.com/google/btree). They complement Go's built-in maps, which cover the
// unordered unique variants, so that every associative shape has a concrete type:
//
//   - OrderedSet: unique keys, ascending iteration
//   - OrderedMultiSet: duplicate keys allowed, ascending iteration, equal keys in insertion order
//   - OrderedMap: unique keys with values, ascending iteration, Put replaces, PutIfAbsent keeps
//   - OrderedMultiMap: duplicate keys with values, equal keys in insertion order
//
// Keys of a cmp.Ordered type use the New* constructors. Any other key type, a struct or
// an array for example, uses the New*Func constructors with a LessFunc. Containers must
// be created by a constructor before they are modified; a nil or zero container reads
// as empty.
//
// Containers are not safe for concurrent use; callers must synchronize access
// themselves.
package collections
