package document

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a DocumentError.
type ErrorKind uint8

const (
	// MalformedBytes: the input is not a recognizable document in any format.
	MalformedBytes ErrorKind = iota + 1
	// KindMismatch: the bytes decode cleanly but describe the other
	// document kind than the caller requested.
	KindMismatch
	// EncodeFailure: the instance tree could not be serialized.
	EncodeFailure
	// WrongKind: a kind-specific accessor or constructor was used on the
	// wrong document kind (e.g. IntoDataModelInstance on a Model).
	WrongKind
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedBytes:
		return "malformed bytes"
	case KindMismatch:
		return "kind mismatch"
	case EncodeFailure:
		return "encode failure"
	case WrongKind:
		return "wrong document kind"
	default:
		return "unknown"
	}
}

// DocumentError is the error type for all document codec failures. It
// keeps the classification and enough context to be actionable.
type DocumentError struct {
	Kind ErrorKind
	msg  string
	err  error
}

func (e *DocumentError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("document: %s: %s: %v", e.Kind, e.msg, e.err)
	}
	return fmt.Sprintf("document: %s: %s", e.Kind, e.msg)
}

func (e *DocumentError) Unwrap() error { return e.err }

func newError(kind ErrorKind, format string, args ...interface{}) *DocumentError {
	return &DocumentError{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

func wrapError(kind ErrorKind, err error, format string, args ...interface{}) *DocumentError {
	return &DocumentError{Kind: kind, msg: fmt.Sprintf(format, args...), err: err}
}

// IsKind reports whether err is a DocumentError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var de *DocumentError
	return errors.As(err, &de) && de.Kind == kind
}
