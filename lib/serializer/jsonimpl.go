package serializer

import (
	"encoding/json"
)

// NewJSONSerializer creates a new serializer using json encoding
func NewJSONSerializer[T any]() ISerializer[T] {
	return &jsonSerializerImpl[T]{}
}

// jsonSerializerImpl implements the ISerializer interface using json encoding
type jsonSerializerImpl[T any] struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ISerializer)
// --------------------------------------------------------------------------

func (j jsonSerializerImpl[T]) Serialize(v T) ([]byte, error) {
	return json.Marshal(v)
}

func (j jsonSerializerImpl[T]) Deserialize(b []byte, v *T) error {
	return json.Unmarshal(b, v)
}

func (j jsonSerializerImpl[T]) Name() string {
	return NameJSON
}
