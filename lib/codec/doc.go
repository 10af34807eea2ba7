// Package codec provides a recursively composable binary codec. A value is written
// to a BinWriter as a deterministic byte sequence and reconstructed from a BinReader
// positioned at the start of that sequence.
//
// The package focuses on:
//   - Selecting exactly one encoding strategy per Go type, based only on the type's shape
//   - Composing strategies generically, so containers of containers need no extra code
//   - Reporting every stream problem as one error kind (ErrStreamOperationFailure)
//
// Key Components:
//
//   - Codec: The interface every strategy implements. A Codec[T] knows its Category and
//     how to encode a T to a BinWriter and decode a T from a BinReader.
//
//   - BinWriter / BinReader: Thin wrappers around io.Writer and io.Reader carrying a
//     sticky error (the stream's health flag). Once the error is set every further
//     operation is a no-op, so nested codecs never need to check errors themselves.
//
//   - Strategies:
//     Primitive (raw native bytes of fixed-layout values), Delegated (types implementing
//     Encoder and Decoder, or a constructor reading from the stream), Sequence (slices,
//     strings, byte slices), Associative (six set/map variants), FixedArity (arrays) and
//     Alias (non-owning references created with NewRef).
//
//   - Classifier: Register, Lookup and Classify bind a Go type to exactly one codec.
//     Priority is Primitive, then Delegated, then composite shapes. Types without a
//     matching strategy are rejected, never copied byte by byte.
//
//   - Write / Read: The top-level entry points. They run the selected codec and check the
//     stream health exactly once afterwards.
//
// Wire Format:
//
//	Primitive      raw native bytes, fixed width, no prefix
//	Delegated      whatever the type writes
//	Sequence       [count u64][count x element]
//	Associative    [count u64][count x key] or [count u64][count x (key, value)]
//	Fixed-arity    [N x element]
//	Alias          forwarded to the referenced value
//
// Counts are 64-bit unsigned integers. Primitives and counts use the byte order and width
// of the running machine; data is only portable between machines sharing that layout.
//
// Thread Safety:
//
//	Codecs are stateless and safe for concurrent use. The registry is populated at
//	startup and only read afterwards. A BinWriter or BinReader must not be shared
//	between goroutines during a call.
//
// Usage:
//
//	scores := codec.Map(codec.String, codec.Int32)
//	w := codec.NewBufBinWriter()
//	if err := codec.WriteWith(w.BinWriter, map[string]int32{"a": 1}, scores); err != nil {
//	    // handle error
//	}
//	var out map[string]int32
//	err := codec.ReadWith(codec.NewBinReaderFromBuf(w.Bytes()), &out, scores)
package codec
