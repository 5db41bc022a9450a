package adodb

import (
	"github.com/pkg/errors"
)

// Kind classifies stream errors.
type Kind uint8

const (
	// KindNone is reported for errors that don't originate from a stream.
	KindNone Kind = iota
	// KindInvalidArgument indicates a missing, mistyped, or out-of-range
	// argument.
	KindInvalidArgument
	// KindInvalidOperation indicates an operation that is not permitted for
	// the stream's type or state.
	KindInvalidOperation
	// KindResourceNotFound indicates a backing resource that doesn't exist.
	KindResourceNotFound
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid-argument"
	case KindInvalidOperation:
		return "invalid-operation"
	case KindResourceNotFound:
		return "resource-not-found"
	default:
		return "none"
	}
}

// Error is the error type returned by stream operations.
type Error struct {
	// kind is the error classification.
	kind Kind
	// message is the error message.
	message string
}

// Error implements error.Error.
func (e *Error) Error() string {
	return e.message
}

// Kind returns the error classification.
func (e *Error) Kind() Kind {
	return e.kind
}

var (
	// ErrInvalidArgument is returned for invalid arguments.
	ErrInvalidArgument = &Error{KindInvalidArgument, "arguments are of the wrong type, are out of acceptable range, or are in conflict with one another"}
	// ErrInvalidOperation is returned when an operation doesn't match the
	// stream type.
	ErrInvalidOperation = &Error{KindInvalidOperation, "operation is not allowed in this context"}
	// ErrObjectClosed is returned when an operation requires an open stream.
	ErrObjectClosed = &Error{KindInvalidOperation, "operation is not allowed when the object is closed"}
	// ErrFileNotFound is returned by every file load attempt.
	ErrFileNotFound = &Error{KindResourceNotFound, "file could not be opened"}
)

// KindOf returns the classification of a (possibly wrapped) stream error, or
// KindNone if err doesn't wrap an *Error.
func KindOf(err error) Kind {
	var streamErr *Error
	if errors.As(err, &streamErr) {
		return streamErr.kind
	}
	return KindNone
}
