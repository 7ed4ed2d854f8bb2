// Package domainerrors provides coded errors for the service layer.
//
// Stores report infrastructure facts through pkg/platform/sentinel; services
// translate those into coded errors here, and the HTTP layer maps codes to
// status lines without inspecting error strings.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for transport mapping.
type Code string

const (
	// CodeBadRequest marks a malformed request or a query parameter outside
	// its accepted set (bad order value, non-numeric id).
	CodeBadRequest Code = "bad_request"
	// CodeValidation marks one or more field-level failures on a record body.
	CodeValidation Code = "validation_failed"
	// CodeNotFound marks a reference to an absent record.
	CodeNotFound Code = "not_found"
	// CodeConflict marks a write rejected by a concurrent change.
	CodeConflict Code = "conflict"
	// CodeUnavailable marks a temporarily unusable dependency; clients may
	// retry.
	CodeUnavailable Code = "unavailable"
	// CodeInternal marks an unexpected infrastructure failure.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error, optionally wrapping a cause.
type Error struct {
	Code    Code
	Message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.err }

// New creates a coded error with a human-readable message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, err: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf extracts the code of err, defaulting to CodeInternal for uncoded errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// MessageOf extracts the message of err, empty for uncoded errors.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
