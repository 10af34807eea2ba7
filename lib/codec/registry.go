package codec

import (
	"reflect"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/pkg/errors"
	"github.com/puzpuzpuz/xsync/v3"
)

var (
	plog = logger.GetLogger("codec")

	// registered holds codecs bound explicitly with Register
	registered = xsync.NewMapOf[reflect.Type, any]()
	// derived memoizes the codecs the classifier built on its own
	derived = xsync.NewMapOf[reflect.Type, any]()

	encoderType = reflect.TypeFor[Encoder]()
	decoderType = reflect.TypeFor[Decoder]()
)

func init() {
	MustRegister(String)
	MustRegister(Bytes)
}

// --------------------------------------------------------------------------
// Registration
// --------------------------------------------------------------------------

// Register binds c to T for Write, Read and Lookup. Registration is meant to happen
// during program initialization. It fails if T is already registered or if T's shape
// puts it in a higher priority category than c (a fixed-layout type is always
// Primitive, a type implementing Encoder is always Delegated).
func Register[T any](c Codec[T]) error {
	t := reflect.TypeFor[T]()
	if shape, ok := shapeCategory(t); ok && shape != c.Category().Kind() {
		return errors.Wrapf(ErrCategoryConflict, "%s classifies as %s, codec is %s", t, shape, c.Category())
	}
	if _, loaded := registered.LoadOrStore(t, c); loaded {
		return errors.Wrapf(ErrAlreadyRegistered, "%s", t)
	}
	plog.Debugf("registered %s as %s", t, c.Category())
	return nil
}

// MustRegister is like Register but panics on error
func MustRegister[T any](c Codec[T]) {
	if err := Register(c); err != nil {
		panic(err)
	}
}

// --------------------------------------------------------------------------
// Classification
// --------------------------------------------------------------------------

// Lookup returns the codec for T. Registered codecs come first; otherwise fixed-layout
// types get a Primitive codec and types implementing Encoder and Decoder get a
// Delegated codec. Composite types must be registered.
func Lookup[T any]() (Codec[T], error) {
	t := reflect.TypeFor[T]()
	if c, ok := registered.Load(t); ok {
		return c.(Codec[T]), nil
	}
	if c, ok := derived.Load(t); ok {
		return c.(Codec[T]), nil
	}
	c, err := derive[T](t)
	if err != nil {
		return nil, err
	}
	actual, _ := derived.LoadOrStore(t, c)
	return actual.(Codec[T]), nil
}

// Classify returns the category Lookup resolves T to
func Classify[T any]() (Category, error) {
	c, err := Lookup[T]()
	if err != nil {
		return 0, err
	}
	return c.Category(), nil
}

// ClassifyType is Classify for a type only known at runtime
func ClassifyType(t reflect.Type) (Category, error) {
	if c, ok := registered.Load(t); ok {
		return c.(interface{ Category() Category }).Category(), nil
	}
	category, _, err := classifyShape(t)
	return category, err
}

// derive builds the codec for an unregistered type from its shape alone
func derive[T any](t reflect.Type) (Codec[T], error) {
	category, pointerEncoder, err := classifyShape(t)
	if err != nil {
		return nil, err
	}
	plog.Debugf("classified %s as %s", t, category)
	if category == CategoryPrimitive {
		return blitCodec[T]{size: t.Size()}, nil
	}
	return dynamicDelegatedCodec[T]{pointerEncoder: pointerEncoder}, nil
}

// classifyShape applies the priority order to an unregistered type. pointerEncoder
// reports whether a Delegated type implements Encoder on its pointer only.
func classifyShape(t reflect.Type) (category Category, pointerEncoder bool, err error) {
	if blittable(t) {
		return CategoryPrimitive, false, nil
	}
	valueEncoder := t.Implements(encoderType)
	pointerEncoder = !valueEncoder && reflect.PointerTo(t).Implements(encoderType)
	if !valueEncoder && !pointerEncoder {
		return 0, false, errors.Wrapf(ErrNotSerializable, "%s matches no strategy, register a codec for it", t)
	}
	if !reflect.PointerTo(t).Implements(decoderType) {
		return 0, false, errors.Wrapf(ErrNotSerializable, "%s implements Encoder but not Decoder, register a Constructed codec", t)
	}
	return CategoryDelegated, pointerEncoder, nil
}

// shapeCategory returns the category the shape of t forces, if any
func shapeCategory(t reflect.Type) (Category, bool) {
	switch {
	case blittable(t):
		return CategoryPrimitive, true
	case t.Implements(encoderType) || reflect.PointerTo(t).Implements(encoderType):
		return CategoryDelegated, true
	default:
		return 0, false
	}
}
