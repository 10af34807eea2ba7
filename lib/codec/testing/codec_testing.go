package testing

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/ValentinKolb/dBin/lib/codec"
)

// ErrInjected is returned by FailingWriter and FailingReader once their budget is spent
var ErrInjected = errors.New("injected stream failure")

// EqualFunc compares two values after a round trip. A nil EqualFunc means
// reflect.DeepEqual.
type EqualFunc[T any] func(a, b T) bool

// FailingWriter accepts Limit bytes and fails every write after that
type FailingWriter struct {
	Limit int
	buf   bytes.Buffer
}

func (w *FailingWriter) Write(p []byte) (int, error) {
	room := w.Limit - w.buf.Len()
	if room >= len(p) {
		return w.buf.Write(p)
	}
	if room > 0 {
		w.buf.Write(p[:room])
		return room, ErrInjected
	}
	return 0, ErrInjected
}

// Bytes returns what was accepted before the failure
func (w *FailingWriter) Bytes() []byte {
	return w.buf.Bytes()
}

// FailingReader serves Limit bytes of Data and fails afterwards
type FailingReader struct {
	Data  []byte
	Limit int
	pos   int
}

func (r *FailingReader) Read(p []byte) (int, error) {
	end := min(r.Limit, len(r.Data))
	if r.pos >= end {
		if r.pos >= len(r.Data) {
			return 0, io.EOF
		}
		return 0, ErrInjected
	}
	n := copy(p, r.Data[r.pos:end])
	r.pos += n
	return n, nil
}

// RunCodecTests runs the standard suite for c against samples
func RunCodecTests[T any](t *testing.T, name string, c codec.Codec[T], samples []T, equal EqualFunc[T]) {
	if equal == nil {
		equal = func(a, b T) bool { return reflect.DeepEqual(a, b) }
	}

	t.Run(name, func(t *testing.T) {
		t.Run("RoundTrip", func(t *testing.T) {
			testRoundTrip(t, c, samples, equal)
		})

		t.Run("StableEncoding", func(t *testing.T) {
			testStableEncoding(t, c, samples)
		})

		t.Run("Concatenated", func(t *testing.T) {
			testConcatenated(t, c, samples, equal)
		})

		t.Run("Truncated", func(t *testing.T) {
			testTruncated(t, c, samples)
		})

		t.Run("FailingWriter", func(t *testing.T) {
			testFailingWriter(t, c, samples)
		})

		t.Run("FailingReader", func(t *testing.T) {
			testFailingReader(t, c, samples)
		})
	})
}

func testRoundTrip[T any](t *testing.T, c codec.Codec[T], samples []T, equal EqualFunc[T]) {
	for i, sample := range samples {
		data, err := codec.MarshalWith(sample, c)
		if err != nil {
			t.Errorf("Failed to encode sample %d: %v", i, err)
			continue
		}

		var result T
		if err := codec.UnmarshalWith(data, &result, c); err != nil {
			t.Errorf("Failed to decode sample %d: %v", i, err)
			continue
		}

		if !equal(sample, result) {
			t.Errorf("Sample %d doesn't match after round trip:\nOriginal: %+v\nResult: %+v", i, sample, result)
		}
	}
}

// testStableEncoding checks that re-encoding a decoded value yields the same bytes
func testStableEncoding[T any](t *testing.T, c codec.Codec[T], samples []T) {
	for i, sample := range samples {
		first, err := codec.MarshalWith(sample, c)
		if err != nil {
			t.Fatalf("Failed to encode sample %d: %v", i, err)
		}

		var decoded T
		if err := codec.UnmarshalWith(first, &decoded, c); err != nil {
			t.Fatalf("Failed to decode sample %d: %v", i, err)
		}

		second, err := codec.MarshalWith(decoded, c)
		if err != nil {
			t.Fatalf("Failed to re-encode sample %d: %v", i, err)
		}

		if !bytes.Equal(first, second) {
			t.Errorf("Sample %d encodes differently after a round trip:\nFirst:  %x\nSecond: %x", i, first, second)
		}
	}
}

// testConcatenated writes all samples to one stream and reads them back in order
func testConcatenated[T any](t *testing.T, c codec.Codec[T], samples []T, equal EqualFunc[T]) {
	w := codec.NewBufBinWriter()
	for i, sample := range samples {
		if err := codec.WriteWith(w.BinWriter, sample, c); err != nil {
			t.Fatalf("Failed to write sample %d: %v", i, err)
		}
	}

	r := codec.NewBinReaderFromBuf(w.Bytes())
	for i, sample := range samples {
		var result T
		if err := codec.ReadWith(r, &result, c); err != nil {
			t.Fatalf("Failed to read sample %d: %v", i, err)
		}
		if !equal(sample, result) {
			t.Errorf("Sample %d doesn't match after concatenated round trip:\nOriginal: %+v\nResult: %+v", i, sample, result)
		}
	}

	if r.Consumed() != int64(w.Len()) {
		t.Errorf("Expected to consume %d bytes, consumed %d", w.Len(), r.Consumed())
	}
}

// testTruncated cuts the last byte off every encoding and expects the read to fail
func testTruncated[T any](t *testing.T, c codec.Codec[T], samples []T) {
	for i, sample := range samples {
		data, err := codec.MarshalWith(sample, c)
		if err != nil {
			t.Fatalf("Failed to encode sample %d: %v", i, err)
		}
		if len(data) == 0 {
			continue
		}

		var result T
		err = codec.UnmarshalWith(data[:len(data)-1], &result, c)
		if !errors.Is(err, codec.ErrStreamOperationFailure) {
			t.Errorf("Sample %d: expected stream failure on truncated input, got %v", i, err)
		}
	}
}

func testFailingWriter[T any](t *testing.T, c codec.Codec[T], samples []T) {
	for i, sample := range samples {
		data, err := codec.MarshalWith(sample, c)
		if err != nil {
			t.Fatalf("Failed to encode sample %d: %v", i, err)
		}
		if len(data) == 0 {
			continue
		}

		fw := &FailingWriter{Limit: len(data) / 2}
		err = codec.WriteWith(codec.NewBinWriter(fw), sample, c)
		if !errors.Is(err, codec.ErrStreamOperationFailure) {
			t.Errorf("Sample %d: expected stream failure, got %v", i, err)
		}
		if !errors.Is(err, ErrInjected) {
			t.Errorf("Sample %d: expected the injected cause to be reachable, got %v", i, err)
		}
		if len(fw.Bytes()) > fw.Limit {
			t.Errorf("Sample %d: writer accepted %d bytes, limit was %d", i, len(fw.Bytes()), fw.Limit)
		}
	}
}

func testFailingReader[T any](t *testing.T, c codec.Codec[T], samples []T) {
	for i, sample := range samples {
		data, err := codec.MarshalWith(sample, c)
		if err != nil {
			t.Fatalf("Failed to encode sample %d: %v", i, err)
		}
		if len(data) == 0 {
			continue
		}

		fr := &FailingReader{Data: data, Limit: len(data) / 2}
		var result T
		err = codec.ReadWith(codec.NewBinReader(fr), &result, c)
		if !errors.Is(err, ErrInjected) || !errors.Is(err, codec.ErrStreamOperationFailure) {
			t.Errorf("Sample %d: expected injected stream failure, got %v", i, err)
		}
	}
}
