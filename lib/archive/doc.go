// Package archive stores sequences of dBin encoded values in a self-identifying,
// optionally compressed container.
//
// Format:
//
//	+------+---------+-------------+-----------------------------+
//	| DBIN | version | compression | payload (codec values, ...) |
//	+------+---------+-------------+-----------------------------+
//	  4 B     1 B        1 B
//
// The payload is the plain concatenation of codec encodings, compressed as a whole
// with LZ4 (frame format) or zstd when requested. An archive does not describe its
// own contents: the reader must request the same types in the same order as they
// were written.
//
// Every Writer and Reader updates the dbin_archive_* counters of the default
// VictoriaMetrics set.
//
// Usage:
//
//	w, err := archive.NewWriter(file, archive.Options{Compression: archive.CompressionZstd})
//	err = archive.Write(w, entries)
//	err = w.Close()
//
//	r, err := archive.NewReader(file)
//	err = archive.Read(r, &entries)
//	err = r.Close()
package archive
