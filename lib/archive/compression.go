package archive

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

// Compression identifies the algorithm the payload of an archive is compressed with.
// The value is stored in the archive header, changing it breaks existing archives.
type Compression uint8

const (
	// CompressionNone stores the payload as written by the codec
	CompressionNone Compression = 0
	// CompressionLZ4 uses the LZ4 frame format, fast with a moderate ratio
	CompressionLZ4 Compression = 1
	// CompressionZstd uses zstd at the default level, slower with a better ratio
	CompressionZstd Compression = 2
)

// String returns the name of the compression
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression parses a compression from its name
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none", "":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, errors.Wrapf(ErrUnknownCompression, "%q", name)
	}
}

// nopWriteCloser turns a writer into a WriteCloser whose Close does nothing
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// compressor wraps w so that everything written is compressed with c. Closing the
// returned writer finishes the compressed stream but does not close w.
func compressor(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, errors.Wrap(err, "zstd encoder")
		}
		return enc, nil
	default:
		return nil, errors.Wrapf(ErrUnknownCompression, "%d", uint8(c))
	}
}

// decompressor wraps r so that reads return the decompressed payload. The returned
// close function releases decoder resources.
func decompressor(r io.Reader, c Compression) (io.Reader, func(), error) {
	switch c {
	case CompressionNone:
		return r, func() {}, nil
	case CompressionLZ4:
		return lz4.NewReader(r), func() {}, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, errors.Wrap(err, "zstd decoder")
		}
		return dec, dec.Close, nil
	default:
		return nil, nil, errors.Wrapf(ErrUnknownCompression, "%d", uint8(c))
	}
}
