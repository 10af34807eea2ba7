package codec

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrStreamOperationFailure is the only error a Read or Write call reports at runtime.
// The concrete cause (io error, unexpected EOF, dead reference, ...) stays reachable
// through errors.Is and errors.As.
var ErrStreamOperationFailure = errors.New("stream operation failure")

// Causes recorded on a failed stream
var (
	ErrDeadRef       = errors.New("reference does not point to a value")
	ErrCountOverflow = errors.New("count exceeds addressable size")
)

// Classification errors. They occur when a codec is built or a type is registered,
// never during a Read or Write.
var (
	ErrNotSerializable   = errors.New("type is not serializable")
	ErrCategoryConflict  = errors.New("codec category conflicts with the type's classification")
	ErrAlreadyRegistered = errors.New("type already registered")
	ErrArityMismatch     = errors.New("type is not a fixed-arity array of the element type")
)

// StreamError is returned by Read and Write when the stream is in the failed state
// after the operation.
type StreamError struct {
	Op  string // "read" or "write"
	Err error  // the error recorded on the stream
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("codec: %s: %s: %v", e.Op, ErrStreamOperationFailure, e.Err)
}

// Is reports every StreamError as ErrStreamOperationFailure
func (e *StreamError) Is(target error) bool {
	return target == ErrStreamOperationFailure
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

// Cause lets errors.Cause of github.com/pkg/errors reach the stream's error
func (e *StreamError) Cause() error {
	return e.Err
}
