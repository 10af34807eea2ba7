package codec

// Codec encodes and decodes values of type T. Implementations never return errors:
// problems are recorded on the stream and reported by the top-level Read or Write.
// Encode and Decode must do nothing harmful when the stream has already failed.
type Codec[T any] interface {
	// Category returns the strategy this codec implements
	Category() Category
	// Encode appends the binary form of v to w
	Encode(w *BinWriter, v T)
	// Decode replaces *v with the value read from r
	Decode(r *BinReader, v *T)
}

// --------------------------------------------------------------------------
// Top-level entry points
// --------------------------------------------------------------------------

// WriteWith encodes v with c and checks the stream afterwards
func WriteWith[T any](w *BinWriter, v T, c Codec[T]) error {
	c.Encode(w, v)
	if w.Err != nil {
		return &StreamError{Op: "write", Err: w.Err}
	}
	return nil
}

// ReadWith decodes into v with c and checks the stream afterwards
func ReadWith[T any](r *BinReader, v *T, c Codec[T]) error {
	c.Decode(r, v)
	if r.Err != nil {
		return &StreamError{Op: "read", Err: r.Err}
	}
	return nil
}

// Write encodes v with the codec the classifier selects for T
func Write[T any](w *BinWriter, v T) error {
	c, err := Lookup[T]()
	if err != nil {
		return err
	}
	return WriteWith(w, v, c)
}

// Read decodes into v with the codec the classifier selects for T
func Read[T any](r *BinReader, v *T) error {
	c, err := Lookup[T]()
	if err != nil {
		return err
	}
	return ReadWith(r, v, c)
}

// --------------------------------------------------------------------------
// Byte slice helpers
// --------------------------------------------------------------------------

// MarshalWith returns the encoding of v produced by c
func MarshalWith[T any](v T, c Codec[T]) ([]byte, error) {
	w := NewBufBinWriter()
	if err := WriteWith(w.BinWriter, v, c); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// UnmarshalWith decodes data into v with c. Trailing bytes are ignored.
func UnmarshalWith[T any](data []byte, v *T, c Codec[T]) error {
	return ReadWith(NewBinReaderFromBuf(data), v, c)
}

// Marshal returns the encoding of v using the classified codec for T
func Marshal[T any](v T) ([]byte, error) {
	c, err := Lookup[T]()
	if err != nil {
		return nil, err
	}
	return MarshalWith(v, c)
}

// Unmarshal decodes data into v using the classified codec for T
func Unmarshal[T any](data []byte, v *T) error {
	c, err := Lookup[T]()
	if err != nil {
		return err
	}
	return UnmarshalWith(data, v, c)
}
