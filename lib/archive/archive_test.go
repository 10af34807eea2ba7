package archive

import (
	"bytes"
	"errors"
	"maps"
	"slices"
	"testing"

	"github.com/ValentinKolb/dBin/lib/codec"
)

var (
	entriesCodec = codec.Map(codec.String, codec.String)
	seriesCodec  = codec.Slice(codec.Float64)
)

func allCompressions() []Compression {
	return []Compression{CompressionNone, CompressionLZ4, CompressionZstd}
}

// TestRoundTrip tests several values through an archive for every compression
func TestRoundTrip(t *testing.T) {
	entries := map[string]string{"HOST": "localhost", "PORT": "8080", "EMPTY": ""}
	series := make([]float64, 4096)
	for i := range series {
		series[i] = float64(i % 17)
	}

	for _, c := range allCompressions() {
		t.Run(c.String(), func(t *testing.T) {
			var buf bytes.Buffer

			w, err := NewWriter(&buf, Options{Compression: c})
			if err != nil {
				t.Fatalf("Failed to create writer: %v", err)
			}
			if err := WriteWith(w, entries, entriesCodec); err != nil {
				t.Fatalf("Failed to write entries: %v", err)
			}
			if err := WriteWith(w, series, seriesCodec); err != nil {
				t.Fatalf("Failed to write series: %v", err)
			}
			if err := Write(w, "trailer"); err != nil {
				t.Fatalf("Failed to write trailer: %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Failed to close writer: %v", err)
			}

			payload := w.Written()
			if payload <= 0 {
				t.Errorf("Expected a positive payload size, got %d", payload)
			}
			if got := buf.String()[:4]; got != magicNum {
				t.Errorf("Expected magic %q, got %q", magicNum, got)
			}

			r, err := NewReader(&buf)
			if err != nil {
				t.Fatalf("Failed to create reader: %v", err)
			}
			if r.Compression() != c {
				t.Errorf("Expected compression %s, got %s", c, r.Compression())
			}

			var (
				gotEntries map[string]string
				gotSeries  []float64
				trailer    string
			)
			if err := ReadWith(r, &gotEntries, entriesCodec); err != nil {
				t.Fatalf("Failed to read entries: %v", err)
			}
			if err := ReadWith(r, &gotSeries, seriesCodec); err != nil {
				t.Fatalf("Failed to read series: %v", err)
			}
			if err := Read(r, &trailer); err != nil {
				t.Fatalf("Failed to read trailer: %v", err)
			}
			if err := r.Close(); err != nil {
				t.Fatalf("Failed to close reader: %v", err)
			}

			if !maps.Equal(entries, gotEntries) {
				t.Errorf("Expected entries %v, got %v", entries, gotEntries)
			}
			if !slices.Equal(series, gotSeries) {
				t.Errorf("Series changed in the round trip")
			}
			if trailer != "trailer" {
				t.Errorf("Expected trailer, got %q", trailer)
			}
			if r.Consumed() != payload {
				t.Errorf("Expected %d consumed payload bytes, got %d", payload, r.Consumed())
			}
		})
	}
}

// TestCompressionShrinksRepetitiveData tests that both codecs beat the raw payload
func TestCompressionShrinksRepetitiveData(t *testing.T) {
	series := make([]float64, 1<<14)

	sizes := make(map[Compression]int)
	for _, c := range allCompressions() {
		var buf bytes.Buffer
		w, err := NewWriter(&buf, Options{Compression: c})
		if err != nil {
			t.Fatalf("%s: failed to create writer: %v", c, err)
		}
		if err := WriteWith(w, series, seriesCodec); err != nil {
			t.Fatalf("%s: failed to write: %v", c, err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("%s: failed to close: %v", c, err)
		}
		sizes[c] = buf.Len()
	}

	if want := 6 + 8 + 8*len(series); sizes[CompressionNone] != want {
		t.Errorf("Expected %d uncompressed bytes, got %d", want, sizes[CompressionNone])
	}
	for _, c := range []Compression{CompressionLZ4, CompressionZstd} {
		if sizes[c] >= sizes[CompressionNone] {
			t.Errorf("%s: %d bytes, not smaller than %d", c, sizes[c], sizes[CompressionNone])
		}
	}
}

// TestInvalidHeader tests that foreign or unsupported headers are rejected
func TestInvalidHeader(t *testing.T) {
	testCases := []struct {
		name     string
		data     string
		expected error
	}{
		{"magic", "NOPE\x01\x00", ErrInvalidMagic},
		{"version", "DBIN\x09\x00", ErrUnsupportedVersion},
		{"compression", "DBIN\x01\x07", ErrUnknownCompression},
		{"short", "DB", codec.ErrStreamOperationFailure},
	}

	for _, tc := range testCases {
		_, err := NewReader(bytes.NewReader([]byte(tc.data)))
		if !errors.Is(err, tc.expected) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.expected, err)
		}
	}

	if _, err := NewWriter(&bytes.Buffer{}, Options{Compression: Compression(42)}); !errors.Is(err, ErrUnknownCompression) {
		t.Errorf("Writer: expected ErrUnknownCompression, got %v", err)
	}
}

// TestTruncatedPayload tests that a cut archive fails to read
func TestTruncatedPayload(t *testing.T) {
	for _, c := range allCompressions() {
		t.Run(c.String(), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewWriter(&buf, Options{Compression: c})
			if err != nil {
				t.Fatalf("Failed to create writer: %v", err)
			}
			if err := WriteWith(w, []float64{1, 2, 3, 4, 5, 6, 7, 8}, seriesCodec); err != nil {
				t.Fatalf("Failed to write: %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Failed to close: %v", err)
			}

			data := buf.Bytes()
			cut := 6 + (len(data)-6)/2
			r, err := NewReader(bytes.NewReader(data[:cut]))
			if err != nil {
				// the decompressor may already reject a cut frame
				return
			}
			var got []float64
			if err := ReadWith(r, &got, seriesCodec); err == nil {
				t.Errorf("Expected an error reading a truncated archive")
			}
		})
	}
}

// TestClosed tests that closed archives refuse further values
func TestClosed(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, Options{})
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close writer: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Second close should be a no-op, got %v", err)
	}
	if err := Write(w, int32(1)); !errors.Is(err, ErrClosed) {
		t.Errorf("Write after close: expected ErrClosed, got %v", err)
	}

	r, err := NewReader(&buf)
	if err != nil {
		t.Fatalf("Failed to create reader: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Failed to close reader: %v", err)
	}
	var v int32
	if err := Read(r, &v); !errors.Is(err, ErrClosed) {
		t.Errorf("Read after close: expected ErrClosed, got %v", err)
	}
}

// TestParseCompression tests the names accepted on the command line
func TestParseCompression(t *testing.T) {
	for _, c := range allCompressions() {
		parsed, err := ParseCompression(c.String())
		if err != nil || parsed != c {
			t.Errorf("%s: parsed as %s (%v)", c, parsed, err)
		}
	}

	if parsed, err := ParseCompression(""); err != nil || parsed != CompressionNone {
		t.Errorf("Empty name: expected none, got %s (%v)", parsed, err)
	}
	if _, err := ParseCompression("brotli"); !errors.Is(err, ErrUnknownCompression) {
		t.Errorf("Expected ErrUnknownCompression, got %v", err)
	}
	if s := Compression(9).String(); s != "unknown(9)" {
		t.Errorf("Expected unknown(9), got %q", s)
	}
}

// TestMetrics tests the archive counters
func TestMetrics(t *testing.T) {
	before := archivesWritten.Get()
	beforeValues := valuesWritten.Get()

	var buf bytes.Buffer
	w, err := NewWriter(&buf, Options{Compression: CompressionLZ4})
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}
	if err := Write(w, uint64(7)); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}
	if err := Write(w, uint64(8)); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close: %v", err)
	}

	if got := archivesWritten.Get(); got != before+1 {
		t.Errorf("Expected %d archives written, got %d", before+1, got)
	}
	if got := valuesWritten.Get(); got != beforeValues+2 {
		t.Errorf("Expected %d values written, got %d", beforeValues+2, got)
	}
	if got := payloadCounter("written", CompressionLZ4).Get(); got < 16 {
		t.Errorf("Expected at least 16 payload bytes counted, got %d", got)
	}
}
