package codec

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"slices"

	"github.com/pkg/errors"
)

// readChunkSize bounds how much memory a single length-prefixed read allocates ahead of
// the bytes actually arriving.
const readChunkSize = 64 << 10

// --------------------------------------------------------------------------
// BinWriter
// --------------------------------------------------------------------------

// BinWriter wraps an io.Writer and remembers the first error. After the error is set
// all writes are no-ops.
type BinWriter struct {
	w       io.Writer
	written int64
	scratch []byte
	Err     error
}

// NewBinWriter creates a BinWriter writing to w
func NewBinWriter(w io.Writer) *BinWriter {
	return &BinWriter{w: w}
}

// WriteBytes writes b verbatim
func (w *BinWriter) WriteBytes(b []byte) {
	if w.Err != nil {
		return
	}
	n, err := w.w.Write(b)
	w.written += int64(n)
	if err == nil && n < len(b) {
		err = io.ErrShortWrite
	}
	w.Err = err
}

// WriteString writes the bytes of s verbatim
func (w *BinWriter) WriteString(s string) {
	if w.Err != nil {
		return
	}
	n, err := io.WriteString(w.w, s)
	w.written += int64(n)
	if err == nil && n < len(s) {
		err = io.ErrShortWrite
	}
	w.Err = err
}

// writeCopy writes b through the scratch buffer. b may view a stack value: only the
// scratch buffer reaches the io.Writer, so the value does not escape.
func (w *BinWriter) writeCopy(b []byte) {
	if w.Err != nil {
		return
	}
	w.scratch = append(w.scratch[:0], b...)
	w.WriteBytes(w.scratch)
}

// WriteCount writes a collection size as a 64-bit unsigned integer
func (w *BinWriter) WriteCount(n int) {
	if w.Err != nil {
		return
	}
	w.scratch = binary.NativeEndian.AppendUint64(w.scratch[:0], uint64(n))
	w.WriteBytes(w.scratch)
}

// Fail puts the writer into the failed state unless it already failed
func (w *BinWriter) Fail(err error) {
	if w.Err == nil {
		w.Err = err
	}
}

// Written returns the number of bytes handed to the underlying writer
func (w *BinWriter) Written() int64 {
	return w.written
}

// BufBinWriter is a BinWriter backed by an in-memory buffer
type BufBinWriter struct {
	*BinWriter
	buf *bytes.Buffer
}

// NewBufBinWriter creates a BinWriter writing into a fresh buffer
func NewBufBinWriter() *BufBinWriter {
	buf := new(bytes.Buffer)
	return &BufBinWriter{BinWriter: NewBinWriter(buf), buf: buf}
}

// Bytes returns the buffered bytes, or nil if the writer failed
func (bw *BufBinWriter) Bytes() []byte {
	if bw.Err != nil {
		return nil
	}
	return bw.buf.Bytes()
}

// Len returns the number of buffered bytes
func (bw *BufBinWriter) Len() int {
	return bw.buf.Len()
}

// Reset clears the buffer and the error so the writer can be reused
func (bw *BufBinWriter) Reset() {
	bw.buf.Reset()
	bw.written = 0
	bw.Err = nil
}

// --------------------------------------------------------------------------
// BinReader
// --------------------------------------------------------------------------

// BinReader wraps an io.Reader and remembers the first error. After the error is set
// all reads are no-ops and leave their destination untouched.
type BinReader struct {
	r       io.Reader
	read    int64
	scratch []byte
	Err     error
}

// NewBinReader creates a BinReader reading from r
func NewBinReader(r io.Reader) *BinReader {
	return &BinReader{r: r}
}

// NewBinReaderFromBuf creates a BinReader reading from b
func NewBinReaderFromBuf(b []byte) *BinReader {
	return NewBinReader(bytes.NewReader(b))
}

// ReadBytes fills b completely. A short read fails the reader.
func (r *BinReader) ReadBytes(b []byte) {
	if r.Err != nil {
		return
	}
	n, err := io.ReadFull(r.r, b)
	r.read += int64(n)
	if errors.Is(err, io.EOF) && len(b) > 0 {
		err = io.ErrUnexpectedEOF
	}
	r.Err = err
}

// readCopy fills b through the scratch buffer, the counterpart of writeCopy. On
// failure b is left untouched.
func (r *BinReader) readCopy(b []byte) {
	if r.Err != nil {
		return
	}
	if cap(r.scratch) < len(b) {
		r.scratch = make([]byte, len(b))
	}
	buf := r.scratch[:len(b)]
	r.ReadBytes(buf)
	if r.Err == nil {
		copy(b, buf)
	}
}

// ReadCount reads a collection size written by WriteCount
func (r *BinReader) ReadCount() int {
	var b [8]byte
	r.readCopy(b[:])
	if r.Err != nil {
		return 0
	}
	n := binary.NativeEndian.Uint64(b[:])
	if n > math.MaxInt {
		r.Fail(errors.Wrapf(ErrCountOverflow, "count %d", n))
		return 0
	}
	return int(n)
}

// Fail puts the reader into the failed state unless it already failed
func (r *BinReader) Fail(err error) {
	if r.Err == nil {
		r.Err = err
	}
}

// Consumed returns the number of bytes taken from the underlying reader
func (r *BinReader) Consumed() int64 {
	return r.read
}

// readChunked appends n bytes to dst. The buffer grows with the data actually read, so
// a corrupt count runs into EOF instead of a huge allocation.
func (r *BinReader) readChunked(dst []byte, n int) []byte {
	for n > 0 && r.Err == nil {
		step := min(n, readChunkSize)
		off := len(dst)
		dst = slices.Grow(dst, step)[:off+step]
		r.ReadBytes(dst[off:])
		n -= step
	}
	return dst
}
