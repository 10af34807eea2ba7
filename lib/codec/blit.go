package codec

import (
	"reflect"
	"unsafe"

	"github.com/pkg/errors"
)

// Codecs for the predeclared fixed-layout types
var (
	Bool       = MustPrimitive[bool]()
	Int8       = MustPrimitive[int8]()
	Int16      = MustPrimitive[int16]()
	Int32      = MustPrimitive[int32]()
	Int64      = MustPrimitive[int64]()
	Int        = MustPrimitive[int]()
	Uint8      = MustPrimitive[uint8]()
	Uint16     = MustPrimitive[uint16]()
	Uint32     = MustPrimitive[uint32]()
	Uint64     = MustPrimitive[uint64]()
	Uint       = MustPrimitive[uint]()
	Float32    = MustPrimitive[float32]()
	Float64    = MustPrimitive[float64]()
	Complex64  = MustPrimitive[complex64]()
	Complex128 = MustPrimitive[complex128]()
)

// blitCodec copies the in-memory representation of T
type blitCodec[T any] struct {
	size uintptr
}

// Primitive returns the byte-blit codec for T. T must have a fixed layout without
// indirection: booleans, numbers, and arrays or structs built only from those.
func Primitive[T any]() (Codec[T], error) {
	t := reflect.TypeFor[T]()
	if !blittable(t) {
		return nil, errors.Wrapf(ErrNotSerializable, "%s has no fixed memory layout", t)
	}
	return blitCodec[T]{size: t.Size()}, nil
}

// MustPrimitive is like Primitive but panics if T is not eligible
func MustPrimitive[T any]() Codec[T] {
	c, err := Primitive[T]()
	if err != nil {
		panic(err)
	}
	return c
}

func (c blitCodec[T]) Category() Category { return CategoryPrimitive }

func (c blitCodec[T]) Encode(w *BinWriter, v T) {
	w.writeCopy(bytesOf(&v, c.size))
}

// Decode leaves *v untouched on a short read
func (c blitCodec[T]) Decode(r *BinReader, v *T) {
	r.readCopy(bytesOf(v, c.size))
}

func bytesOf[T any](v *T, size uintptr) []byte {
	if size == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), size)
}

// blittable reports whether values of t are fully described by their memory bytes
func blittable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return blittable(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !blittable(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
