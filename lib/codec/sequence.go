package codec

// maxPrealloc caps the capacity reserved from a count read off the wire
const maxPrealloc = 1024

// Built-in sequence codecs. Both share the layout of a sequence of bytes.
var (
	String Codec[string] = stringCodec{}
	Bytes  Codec[[]byte] = bytesCodec{}
)

// --------------------------------------------------------------------------
// Slices
// --------------------------------------------------------------------------

type sliceCodec[E any] struct {
	elem Codec[E]
}

// Slice returns the codec for []E. Elements keep their order and duplicates.
func Slice[E any](elem Codec[E]) Codec[[]E] {
	return sliceCodec[E]{elem: elem}
}

func (sliceCodec[E]) Category() Category { return CategorySequence }

func (c sliceCodec[E]) Encode(w *BinWriter, v []E) {
	w.WriteCount(len(v))
	for _, e := range v {
		if w.Err != nil {
			return
		}
		c.elem.Encode(w, e)
	}
}

func (c sliceCodec[E]) Decode(r *BinReader, v *[]E) {
	s := (*v)[:0]
	n := r.ReadCount()
	if s == nil || cap(s) < min(n, maxPrealloc) {
		s = make([]E, 0, min(n, maxPrealloc))
	}
	for i := 0; i < n && r.Err == nil; i++ {
		var e E
		c.elem.Decode(r, &e)
		if r.Err != nil {
			break
		}
		s = append(s, e)
	}
	*v = s
}

// --------------------------------------------------------------------------
// Strings and byte slices
// --------------------------------------------------------------------------

type stringCodec struct{}

func (stringCodec) Category() Category { return CategorySequence }

func (stringCodec) Encode(w *BinWriter, v string) {
	w.WriteCount(len(v))
	w.WriteString(v)
}

func (stringCodec) Decode(r *BinReader, v *string) {
	n := r.ReadCount()
	b := r.readChunked(nil, n)
	if r.Err == nil {
		*v = string(b)
	}
}

type bytesCodec struct{}

func (bytesCodec) Category() Category { return CategorySequence }

func (bytesCodec) Encode(w *BinWriter, v []byte) {
	w.WriteCount(len(v))
	w.WriteBytes(v)
}

func (bytesCodec) Decode(r *BinReader, v *[]byte) {
	n := r.ReadCount()
	b := r.readChunked((*v)[:0], n)
	if b == nil {
		b = []byte{}
	}
	*v = b
}
