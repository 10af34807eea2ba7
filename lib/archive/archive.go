package archive

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ValentinKolb/dBin/lib/codec"
	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/pkg/errors"
)

var plog = logger.GetLogger("archive")

const (
	magicNum      = "DBIN"
	formatVersion = 1

	// bufferSize of the buffered reader and writer around the underlying stream
	bufferSize = 256 * 1024
)

// Errors returned when opening or using an archive
var (
	ErrInvalidMagic       = errors.New("invalid file format: magic number mismatch")
	ErrUnsupportedVersion = errors.New("unsupported archive version")
	ErrUnknownCompression = errors.New("unknown compression")
	ErrClosed             = errors.New("archive is closed")
)

// header starts every archive. It is a fixed-layout value and goes through the
// byte-blit codec.
type header struct {
	Magic       [4]byte
	Version     uint8
	Compression Compression
}

var headerCodec = codec.MustPrimitive[header]()

// Options configure a Writer
type Options struct {
	Compression Compression
}

// --------------------------------------------------------------------------
// Writer
// --------------------------------------------------------------------------

// Writer writes a sequence of codec values into an archive. It is not safe for
// concurrent use.
type Writer struct {
	bw     *bufio.Writer
	comp   io.WriteCloser
	bin    *codec.BinWriter
	opts   Options
	closed bool
}

// NewWriter writes the archive header to w and returns a Writer for the payload
func NewWriter(w io.Writer, opts Options) (*Writer, error) {
	bw := bufio.NewWriterSize(w, bufferSize)

	h := header{Version: formatVersion, Compression: opts.Compression}
	copy(h.Magic[:], magicNum)
	if err := codec.WriteWith(codec.NewBinWriter(bw), h, headerCodec); err != nil {
		return nil, errors.Wrap(err, "write archive header")
	}

	comp, err := compressor(bw, opts.Compression)
	if err != nil {
		return nil, err
	}

	plog.Debugf("opened archive for writing (compression %s)", opts.Compression)
	return &Writer{
		bw:   bw,
		comp: comp,
		bin:  codec.NewBinWriter(comp),
		opts: opts,
	}, nil
}

// Write appends v using the codec the classifier resolves for T
func Write[T any](w *Writer, v T) error {
	if w.closed {
		return ErrClosed
	}
	return w.count(codec.Write(w.bin, v))
}

// WriteWith appends v using c
func WriteWith[T any](w *Writer, v T, c codec.Codec[T]) error {
	if w.closed {
		return ErrClosed
	}
	return w.count(codec.WriteWith(w.bin, v, c))
}

func (w *Writer) count(err error) error {
	if err != nil {
		writeErrors.Inc()
		return err
	}
	valuesWritten.Inc()
	return nil
}

// Written returns the number of payload bytes before compression
func (w *Writer) Written() int64 {
	return w.bin.Written()
}

// Close finishes the compressed stream and flushes all buffered data. It does not
// close the underlying writer.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.comp.Close(); err != nil {
		writeErrors.Inc()
		return errors.Wrap(err, "finish compression")
	}
	if err := w.bw.Flush(); err != nil {
		writeErrors.Inc()
		return errors.Wrap(err, "flush archive")
	}

	archivesWritten.Inc()
	payloadCounter("written", w.opts.Compression).Add(int(w.bin.Written()))
	plog.Debugf("closed archive after %d payload bytes", w.bin.Written())

	// a failed stream stays failed, report it again so a caller ignoring Write
	// errors still notices
	if w.bin.Err != nil {
		return &codec.StreamError{Op: "write", Err: w.bin.Err}
	}
	return nil
}

// --------------------------------------------------------------------------
// Reader
// --------------------------------------------------------------------------

// Reader reads codec values from an archive. It is not safe for concurrent use.
type Reader struct {
	bin         *codec.BinReader
	release     func()
	compression Compression
	closed      bool
}

// NewReader reads and validates the archive header from r
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReaderSize(r, bufferSize)

	var h header
	if err := codec.ReadWith(codec.NewBinReader(br), &h, headerCodec); err != nil {
		readErrors.Inc()
		return nil, errors.Wrap(err, "read archive header")
	}
	if string(h.Magic[:]) != magicNum {
		readErrors.Inc()
		return nil, ErrInvalidMagic
	}
	if h.Version != formatVersion {
		readErrors.Inc()
		return nil, errors.Wrapf(ErrUnsupportedVersion, "%d (expected %d)", h.Version, formatVersion)
	}

	payload, release, err := decompressor(br, h.Compression)
	if err != nil {
		readErrors.Inc()
		return nil, err
	}

	plog.Debugf("opened archive for reading (version %d, compression %s)", h.Version, h.Compression)
	return &Reader{
		bin:         codec.NewBinReader(payload),
		release:     release,
		compression: h.Compression,
	}, nil
}

// Compression returns the compression recorded in the header
func (r *Reader) Compression() Compression {
	return r.compression
}

// Read decodes the next value using the codec the classifier resolves for T
func Read[T any](r *Reader, v *T) error {
	if r.closed {
		return ErrClosed
	}
	return r.count(codec.Read(r.bin, v))
}

// ReadWith decodes the next value using c
func ReadWith[T any](r *Reader, v *T, c codec.Codec[T]) error {
	if r.closed {
		return ErrClosed
	}
	return r.count(codec.ReadWith(r.bin, v, c))
}

func (r *Reader) count(err error) error {
	if err != nil {
		readErrors.Inc()
		return err
	}
	valuesRead.Inc()
	return nil
}

// Consumed returns the number of payload bytes read after decompression
func (r *Reader) Consumed() int64 {
	return r.bin.Consumed()
}

// Close releases the decompressor. It does not close the underlying reader.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.release()

	archivesRead.Inc()
	payloadCounter("read", r.compression).Add(int(r.bin.Consumed()))
	return nil
}

// --------------------------------------------------------------------------
// Metrics
// --------------------------------------------------------------------------

var (
	archivesWritten = metrics.NewCounter("dbin_archives_written_total")
	archivesRead    = metrics.NewCounter("dbin_archives_read_total")
	valuesWritten   = metrics.NewCounter("dbin_archive_values_written_total")
	valuesRead      = metrics.NewCounter("dbin_archive_values_read_total")
	writeErrors     = metrics.NewCounter("dbin_archive_write_errors_total")
	readErrors      = metrics.NewCounter("dbin_archive_read_errors_total")
)

// payloadCounter returns the byte counter for one direction and compression
func payloadCounter(direction string, c Compression) *metrics.Counter {
	return metrics.GetOrCreateCounter(fmt.Sprintf(`dbin_archive_payload_bytes_total{direction=%q,compression=%q}`, direction, c))
}
