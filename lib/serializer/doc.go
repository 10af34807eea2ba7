// Package serializer puts the dBin codec behind the same small interface as Go's gob
// and json encodings, so tools and benchmarks can switch formats by name.
//
// Key Components:
//
//   - ISerializer: Core interface that all serializer implementations must satisfy.
//
//   - binarySerializerImpl: The dBin binary format (lib/codec). Either uses the codec it
//     was created with or the one the classifier resolves for the value type.
//
//   - gobSerializerImpl: Implementation using Go's built-in gob encoding. Self
//     describing and therefore considerably larger for small values.
//
//   - jsonSerializerImpl: Implementation using JSON encoding, useful for debugging.
//
// Thread Safety:
//
//	All serializer implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
//
// Usage:
//
//	s, err := serializer.New[Record]("binary", codec.Delegated[Record]())
//	data, err := s.Serialize(record)
//	// ... store data ...
//	var restored Record
//	err = s.Deserialize(data, &restored)
package serializer
