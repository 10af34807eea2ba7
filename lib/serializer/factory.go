package serializer

import (
	"github.com/ValentinKolb/dBin/lib/codec"
	"github.com/pkg/errors"
)

// Serializer names as used on the command line
const (
	NameBinary = "binary"
	NameGOB    = "gob"
	NameJSON   = "json"
)

// ErrUnknownSerializer is returned by New for names it does not know
var ErrUnknownSerializer = errors.New("unknown serializer")

// Names lists every serializer New can create
func Names() []string {
	return []string{NameBinary, NameGOB, NameJSON}
}

// New creates the serializer called name. c is only used by the binary serializer
// and may be nil there as well.
func New[T any](name string, c codec.Codec[T]) (ISerializer[T], error) {
	switch name {
	case NameBinary:
		return NewBinarySerializer(c), nil
	case NameGOB:
		return NewGOBSerializer[T](), nil
	case NameJSON:
		return NewJSONSerializer[T](), nil
	default:
		return nil, errors.Wrapf(ErrUnknownSerializer, "%q, must be one of %v", name, Names())
	}
}
