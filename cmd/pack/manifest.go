package pack

import (
	"github.com/ValentinKolb/dBin/lib/codec"
)

// manifest precedes the entries in every env archive
type manifest struct {
	Source  string
	Created int64 // unix seconds
	Entries uint64
}

func (m manifest) EncodeBinary(w *codec.BinWriter) {
	codec.String.Encode(w, m.Source)
	codec.Int64.Encode(w, m.Created)
	codec.Uint64.Encode(w, m.Entries)
}

// readManifest constructs a manifest from the stream
func readManifest(r *codec.BinReader) manifest {
	var m manifest
	codec.String.Decode(r, &m.Source)
	codec.Int64.Decode(r, &m.Created)
	codec.Uint64.Decode(r, &m.Entries)
	return m
}

var (
	manifestCodec = codec.Constructed(readManifest)
	entriesCodec  = codec.OrderedMap(codec.String, codec.String)
)
