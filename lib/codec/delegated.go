package codec

// Encoder is implemented by types that write their own binary form. Implementations may
// call back into this package for their fields; errors are recorded on w.
type Encoder interface {
	EncodeBinary(w *BinWriter)
}

// Decoder is implemented by pointers to types that read their own binary form in place
type Decoder interface {
	DecodeBinary(r *BinReader)
}

// delegatedCodec hands both directions to the type itself, decoding in place
type delegatedCodec[T Encoder, PT interface {
	*T
	Decoder
}] struct{}

// Delegated returns the codec for a type that implements Encoder on its value and
// Decoder on its pointer.
func Delegated[T Encoder, PT interface {
	*T
	Decoder
}]() Codec[T] {
	return delegatedCodec[T, PT]{}
}

func (delegatedCodec[T, PT]) Category() Category { return CategoryDelegated }

func (delegatedCodec[T, PT]) Encode(w *BinWriter, v T) {
	v.EncodeBinary(w)
}

func (delegatedCodec[T, PT]) Decode(r *BinReader, v *T) {
	PT(v).DecodeBinary(r)
}

// constructedCodec decodes by building a new value from the stream
type constructedCodec[T Encoder] struct {
	construct func(r *BinReader) T
}

// Constructed returns the codec for a type that implements Encoder and is read by a
// constructor consuming the stream. The constructed value replaces the destination
// only if the stream is still healthy afterwards.
func Constructed[T Encoder](construct func(r *BinReader) T) Codec[T] {
	return constructedCodec[T]{construct: construct}
}

func (constructedCodec[T]) Category() Category { return CategoryDelegated }

func (constructedCodec[T]) Encode(w *BinWriter, v T) {
	v.EncodeBinary(w)
}

func (c constructedCodec[T]) Decode(r *BinReader, v *T) {
	nv := c.construct(r)
	if r.Err == nil {
		*v = nv
	}
}

// dynamicDelegatedCodec serves types the classifier found to implement Encoder and
// Decoder without static knowledge of the method set. Encoder may sit on the value or
// on the pointer.
type dynamicDelegatedCodec[T any] struct {
	pointerEncoder bool
}

func (dynamicDelegatedCodec[T]) Category() Category { return CategoryDelegated }

func (c dynamicDelegatedCodec[T]) Encode(w *BinWriter, v T) {
	if c.pointerEncoder {
		any(&v).(Encoder).EncodeBinary(w)
		return
	}
	any(v).(Encoder).EncodeBinary(w)
}

func (dynamicDelegatedCodec[T]) Decode(r *BinReader, v *T) {
	any(v).(Decoder).DecodeBinary(r)
}
