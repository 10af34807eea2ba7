package codec

// Ref is a non-owning reference to a value stored elsewhere. Serializing a Ref
// serializes the referenced value; the Ref itself never appears on the wire and never
// allocates storage.
type Ref[T any] struct {
	target *T
}

// NewRef creates a reference to the value at target
func NewRef[T any](target *T) Ref[T] {
	return Ref[T]{target: target}
}

// Get returns the referenced storage
func (r Ref[T]) Get() *T {
	return r.target
}

// Live reports whether the reference points to a value
func (r Ref[T]) Live() bool {
	return r.target != nil
}

type refCodec[T any] struct {
	inner Codec[T]
}

// RefOf returns the codec for Ref[T], forwarding to inner. Reading requires the
// referenced storage to exist already: a dead reference fails the stream with
// ErrDeadRef.
func RefOf[T any](inner Codec[T]) Codec[Ref[T]] {
	return refCodec[T]{inner: inner}
}

func (refCodec[T]) Category() Category { return CategoryAlias }

func (c refCodec[T]) Encode(w *BinWriter, v Ref[T]) {
	if !v.Live() {
		w.Fail(ErrDeadRef)
		return
	}
	c.inner.Encode(w, *v.target)
}

func (c refCodec[T]) Decode(r *BinReader, v *Ref[T]) {
	if !v.Live() {
		r.Fail(ErrDeadRef)
		return
	}
	c.inner.Decode(r, v.target)
}
