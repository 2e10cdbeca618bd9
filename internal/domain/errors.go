package domain

import "errors"

// ErrorKind partitions pipeline failures so the transport layer can map
// them to distinct status codes without string matching.
type ErrorKind int

const (
	// KindUnresolvableLocation: no containing taluka polygon was found.
	// There is no fallback unit, so the request is rejected.
	KindUnresolvableLocation ErrorKind = iota

	// KindMissingReference: land area or registry record not found even
	// after the fuzzy fallback. Recoverable only by better reference data.
	KindMissingReference

	// KindExternalService: transport failure or non-success status from the
	// raster, elevation service, or INGRES business data service.
	KindExternalService

	// KindPrecondition: an internal invariant was violated, e.g. a
	// nonpositive taluka area reaching the calculator.
	KindPrecondition
)

// Error is the terminal failure for one request. Message is safe to show to
// callers; Err carries the internal cause for logs only.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NewUnresolvableLocation(msg string) *Error {
	return &Error{Kind: KindUnresolvableLocation, Message: msg}
}

func NewMissingReference(msg string) *Error {
	return &Error{Kind: KindMissingReference, Message: msg}
}

func NewExternalService(msg string, err error) *Error {
	return &Error{Kind: KindExternalService, Message: msg, Err: err}
}

func NewPrecondition(msg string) *Error {
	return &Error{Kind: KindPrecondition, Message: msg}
}

// KindOf extracts the error kind, if err is (or wraps) a pipeline Error.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// UserMessage returns the caller-safe message for a pipeline Error, or a
// generic message for anything else so internal faults are never exposed
// verbatim.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}
