package serializer

import (
	"github.com/ValentinKolb/dBin/lib/codec"
)

// NewBinarySerializer creates a new serializer using the dBin binary format. A nil
// codec selects the codec the classifier resolves for T on first use.
func NewBinarySerializer[T any](c codec.Codec[T]) ISerializer[T] {
	return &binarySerializerImpl[T]{codec: c}
}

// binarySerializerImpl implements ISerializer on top of lib/codec
type binarySerializerImpl[T any] struct {
	codec codec.Codec[T]
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ISerializer)
// --------------------------------------------------------------------------

func (b *binarySerializerImpl[T]) Serialize(v T) ([]byte, error) {
	c, err := b.resolve()
	if err != nil {
		return nil, err
	}
	return codec.MarshalWith(v, c)
}

func (b *binarySerializerImpl[T]) Deserialize(data []byte, v *T) error {
	c, err := b.resolve()
	if err != nil {
		return err
	}
	return codec.UnmarshalWith(data, v, c)
}

func (b *binarySerializerImpl[T]) Name() string {
	return NameBinary
}

func (b *binarySerializerImpl[T]) resolve() (codec.Codec[T], error) {
	if b.codec != nil {
		return b.codec, nil
	}
	// Lookup memoizes, so this is a map load after the first call
	return codec.Lookup[T]()
}
