// Package apperr defines the error taxonomy shared by all front desk
// services. Every failure a service returns is an *Error carrying one of
// four kinds; handlers translate kinds to HTTP status codes, callers in
// tests and other services branch on KindOf.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a service failure.
type Kind int

const (
	// KindUnknown is the zero value, returned by KindOf for errors that
	// did not originate in a service.
	KindUnknown Kind = iota
	// KindNotFound signals that a referenced patient, doctor, appointment
	// or log does not resolve.
	KindNotFound
	// KindInvalidArgument signals malformed input: bad time ordering, a
	// start time in the past, or a contact field that fails validation.
	KindInvalidArgument
	// KindConflict signals a rejected operation that would violate an
	// invariant: a double-booking overlap or a duplicate identification code.
	KindConflict
	// KindInvalidOperation signals a state transition that is never legal,
	// such as changing the status of a cancelled appointment.
	KindInvalidOperation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindConflict:
		return "conflict"
	case KindInvalidOperation:
		return "invalid_operation"
	default:
		return "unknown"
	}
}

// Error is a typed service failure.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound builds a KindNotFound error.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// InvalidArgument builds a KindInvalidArgument error.
func InvalidArgument(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidArgument, Msg: fmt.Sprintf(format, args...)}
}

// Conflict builds a KindConflict error.
func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// InvalidOperation builds a KindInvalidOperation error.
func InvalidOperation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidOperation, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, k Kind) bool { return KindOf(err) == k }

// HTTPStatus maps an error to the HTTP status the presentation layer
// should respond with. Unknown errors map to 500.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindInvalidOperation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
