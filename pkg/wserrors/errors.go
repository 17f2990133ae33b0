// Package wserrors provides structured error types for the generation
// kernel and its surrounding tooling.
//
// This package defines error codes that enable:
//   - Consistent handling across the kernel, CLI, and API
//   - Machine-readable codes for programmatic dispatch
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Fatal codes abort generation outright. Recoverable codes are consumed
// locally by the mode generators and never escape package generate.
//
// # Usage
//
//	err := wserrors.New(wserrors.CodeUnknownPossibility, "title %q not in library", title)
//	if wserrors.Is(err, wserrors.CodeUnknownPossibility) {
//	    // handle missing schema
//	}
package wserrors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Fatal codes - these abort the current generation call.
const (
	CodeMissingSettings    Code = "MISSING_SETTINGS"
	CodeUnknownPossibility Code = "UNKNOWN_POSSIBILITY"
	CodeUnknownMode        Code = "UNKNOWN_MODE"
	CodeUnknownChildType   Code = "UNKNOWN_CHILD_TYPE"
	CodeUnknownDirection   Code = "UNKNOWN_DIRECTION"
	CodeMalformedSchema    Code = "MALFORMED_SCHEMA"
)

// Recoverable codes - consumed locally by a mode generator; never
// returned from Generate or GenerateFull.
const (
	CodeNoFit         Code = "NO_FIT"
	CodeLimitExceeded Code = "LIMIT_EXCEEDED"
	CodeDepthExceeded Code = "DEPTH_EXCEEDED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error { return e.Cause }

// New creates an Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the first *Error in err's chain carries the given
// code. Codes of *Errors nested deeper (as a Cause) are not consulted.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from err, or "" if err is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsRecoverable reports whether code is one a mode generator is expected
// to consume locally rather than propagate.
func IsRecoverable(code Code) bool {
	switch code {
	case CodeNoFit, CodeLimitExceeded, CodeDepthExceeded:
		return true
	default:
		return false
	}
}
