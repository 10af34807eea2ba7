package codec

import (
	"reflect"
	"unsafe"

	"github.com/pkg/errors"
)

// arrayCodec encodes the n elements of the array type A one after another
type arrayCodec[A, E any] struct {
	n    int
	elem Codec[E]
}

// Array returns the codec for the array type A, which must be [N]E for some N. The
// length is fixed by the type, so nothing but the elements is written.
func Array[A, E any](elem Codec[E]) (Codec[A], error) {
	at, et := reflect.TypeFor[A](), reflect.TypeFor[E]()
	if at.Kind() != reflect.Array || at.Elem() != et {
		return nil, errors.Wrapf(ErrArityMismatch, "%s is not [N]%s", at, et)
	}
	return arrayCodec[A, E]{n: at.Len(), elem: elem}, nil
}

// MustArray is like Array but panics if A is not [N]E
func MustArray[A, E any](elem Codec[E]) Codec[A] {
	c, err := Array[A](elem)
	if err != nil {
		panic(err)
	}
	return c
}

func (arrayCodec[A, E]) Category() Category { return CategoryFixedArity }

// elems views the array as a slice without copying
func (c arrayCodec[A, E]) elems(a *A) []E {
	if c.n == 0 {
		return nil
	}
	return unsafe.Slice((*E)(unsafe.Pointer(a)), c.n)
}

func (c arrayCodec[A, E]) Encode(w *BinWriter, v A) {
	for _, e := range c.elems(&v) {
		if w.Err != nil {
			return
		}
		c.elem.Encode(w, e)
	}
}

func (c arrayCodec[A, E]) Decode(r *BinReader, v *A) {
	es := c.elems(v)
	for i := range es {
		if r.Err != nil {
			return
		}
		c.elem.Decode(r, &es[i])
	}
}
