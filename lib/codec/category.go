package codec

import "strings"

// Category identifies the strategy bound to a type. The low bits hold the kind, the
// high bits refine CategoryAssociative codecs.
type Category uint8

// Kinds, in classification priority order
const (
	CategoryPrimitive Category = iota + 1
	CategoryDelegated
	CategorySequence
	CategoryAssociative
	CategoryFixedArity
	CategoryAlias
)

// Associative refinements
const (
	AssocMulti    Category = 1 << 4 // duplicate keys are kept
	AssocOrdered  Category = 1 << 5 // iteration follows key order
	AssocKeyValue Category = 1 << 6 // every key carries a value
)

const kindMask Category = 0x0f

// Kind strips the associative refinements
func (c Category) Kind() Category {
	return c & kindMask
}

// IsMulti reports whether duplicate keys survive a round trip
func (c Category) IsMulti() bool { return c&AssocMulti != 0 }

// IsOrdered reports whether iteration follows the key order
func (c Category) IsOrdered() bool { return c&AssocOrdered != 0 }

// IsKeyValue reports whether entries are key/value pairs
func (c Category) IsKeyValue() bool { return c&AssocKeyValue != 0 }

func (c Category) String() string {
	switch c.Kind() {
	case CategoryPrimitive:
		return "primitive"
	case CategoryDelegated:
		return "delegated"
	case CategorySequence:
		return "sequence"
	case CategoryAssociative:
		flags := make([]string, 0, 3)
		if c.IsMulti() {
			flags = append(flags, "multi")
		} else {
			flags = append(flags, "unique")
		}
		if c.IsOrdered() {
			flags = append(flags, "ordered")
		} else {
			flags = append(flags, "unordered")
		}
		if c.IsKeyValue() {
			flags = append(flags, "key/value")
		} else {
			flags = append(flags, "key-only")
		}
		return "associative(" + strings.Join(flags, ",") + ")"
	case CategoryFixedArity:
		return "fixed-arity"
	case CategoryAlias:
		return "alias"
	default:
		return "unknown"
	}
}
