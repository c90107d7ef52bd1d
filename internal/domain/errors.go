package domain

import (
	"errors"
	"fmt"
)

// Kind is a stable category for programmatic error handling.
// Callers should branch on Kind rather than matching error strings.
type Kind string

const (
	// KindType is a shape or type mismatch: wrong type or wrong fixed length.
	KindType Kind = "Type"
	// KindValue is a numeric or length predicate failure.
	KindValue Kind = "Value"
	// KindFormat is malformed hex text.
	KindFormat Kind = "Format"
	// KindDecode is invalid UTF-8.
	KindDecode Kind = "Decode"
	// KindNotImplemented marks cataloged operations without a backing implementation.
	KindNotImplemented Kind = "NotImplemented"
)

// ErrNilCompletion is the panic value raised when an operation is called
// without a completion. It is a programming error, not a validation failure.
var ErrNilCompletion = errors.New("completion must be a non-nil function")

// Error is the bridge's structured error type.
//
// Param names the offending argument when there is one. Message is intended
// for humans; do not match on it.
type Error struct {
	Kind    Kind
	Param   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// NewError returns an *Error of the given kind.
func NewError(kind Kind, param, format string, args ...any) error {
	return &Error{Kind: kind, Param: param, Message: fmt.Sprintf(format, args...)}
}

// WrapError returns an *Error of the given kind carrying cause.
func WrapError(kind Kind, param string, cause error, format string, args ...any) error {
	return &Error{Kind: kind, Param: param, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// IsKind reports whether err is (or wraps) an *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// ParamOf returns the offending parameter name of a structured error, or "".
func ParamOf(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Param
}
