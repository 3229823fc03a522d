// Package serrors provides semantic errors: sentinel kinds that classify a
// failure (not found, invalid URI, ...) combined with a free-form message and
// an optional wrapped cause. Callers branch on the kind with errors.Is while
// the message and cause keep the detail for logs.
package serrors

import (
	"errors"
	"fmt"
)

// Kind is the marker interface implemented by every sentinel created with
// NewKind. It distinguishes semantic kinds from ordinary errors.
type Kind interface {
	error
	isKind()
}

type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

// NewKind creates a new semantic error kind with the given name. Kinds are
// comparable sentinels; errors.Is/As reach them through the Error wrapper.
func NewKind(name string) Kind { return kind{s: name} }

// The default kinds cover the failure categories of this application.
var (
	// ErrInvalidURI indicates input that the URI grammar rejects.
	ErrInvalidURI = NewKind("INVALID_URI")
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = NewKind("NOT_FOUND")
	// ErrUnauthorized indicates missing or invalid authentication.
	ErrUnauthorized = NewKind("UNAUTHORIZED")
	// ErrForbidden indicates the caller is authenticated but not allowed to perform the operation.
	ErrForbidden = NewKind("FORBIDDEN")
	// ErrBadRequest indicates the client sent invalid data.
	ErrBadRequest = NewKind("BAD_REQUEST")
	// ErrInternal indicates an internal server error.
	ErrInternal = NewKind("INTERNAL")
	// ErrTimeout indicates the operation timed out.
	ErrTimeout = NewKind("TIMEOUT")
	// ErrUnavailable indicates a dependency is temporarily unavailable.
	ErrUnavailable = NewKind("UNAVAILABLE")
)

// Error is a semantic error: a kind sentinel plus an optional message and an
// optional wrapped cause.
//
// errors.Is(err, target) matches when target is the kind sentinel or anything
// in the wrapped chain; errors.As behaves accordingly. The rendered string is
// "<msg>: <cause>" when both are set, falling back to whichever is present,
// and finally to the kind name.
type Error struct {
	kind Kind
	err  error
	msg  string
}

// With constructs a semantic error from a kind and a formatted message. Use
// Wrap to also record a concrete cause.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap constructs a semantic error from a kind, a wrapped cause and a
// formatted message.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

// KindOnly constructs a semantic error carrying only the kind.
func KindOnly(k Kind) *Error { return &Error{kind: k} }

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	default:
		if e.kind != nil {
			return e.kind.Error()
		}

		return "unknown error"
	}
}

// Unwrap exposes the wrapped cause to errors.Unwrap/Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is matches target against the kind sentinel as well as the wrapped chain.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}
	if e.err != nil && errors.Is(e.err, target) {
		return true
	}

	return false
}

// As matches target against the kind sentinel as well as the wrapped chain.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}
	if e.kind != nil && errors.As(e.kind, target) {
		return true
	}
	if e.err != nil && errors.As(e.err, target) {
		return true
	}

	return false
}

// Kind returns the semantic kind sentinel, or nil.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the message attached to this error.
func (e *Error) Message() string { return e.msg }

// Cause returns the wrapped cause (may be nil).
func (e *Error) Cause() error { return e.err }
