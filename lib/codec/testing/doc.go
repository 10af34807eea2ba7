// Package testing provides a standardised test suite for codec.Codec
// implementations.
//
// The package contains:
//   - RunCodecTests: round trips, byte stability, truncated input and failing writers
//   - FailingWriter / FailingReader: streams that break after a fixed number of bytes
//
// This package is particularly useful for:
//   - Types implementing codec.Encoder and codec.Decoder, which own their wire format
//   - Custom Codec implementations composed into the built-in strategies
//
// Example usage:
//
//	func TestPoint(t *testing.T) {
//	    samples := []Point{{1, 2}, {-3, 4}}
//	    codectesting.RunCodecTests(t, "Point", codec.Delegated[Point](), samples, nil)
//	}
package testing
