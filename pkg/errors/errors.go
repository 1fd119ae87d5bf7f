// Package errors provides structured error types for the ipcraft application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the TUI editor
//   - Machine-readable error codes for programmatic handling
//   - User-friendly diagnostics for rejected layout operations
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Layout diagnostics map to three codes: OUT_OF_BOUNDS (a candidate position
// falls outside the parent's addressable range), OVERLAP (a candidate collides
// with an existing sibling) and NO_SPACE (a repack would push siblings out of
// bounds). All three are recoverable: the collection stays at its
// pre-operation value and the message is shown to the user verbatim.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeOverlap, "bit range [%d:%d] overlaps field %q", msb, lsb, name)
//	if errors.Is(err, errors.ErrCodeOverlap) {
//	    // Show diagnostic, keep previous collection
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Layout diagnostics (recoverable, user-visible)
	ErrCodeOutOfBounds Code = "OUT_OF_BOUNDS"
	ErrCodeOverlap     Code = "OVERLAP"
	ErrCodeNoSpace     Code = "NO_SPACE"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidName   Code = "INVALID_NAME"

	// Resource not found errors
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeSessionNotFound Code = "SESSION_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsDiagnostic reports whether err is a recoverable layout diagnostic,
// i.e. one of OUT_OF_BOUNDS, OVERLAP or NO_SPACE. Diagnostics are shown
// to the user and never abort the editor.
func IsDiagnostic(err error) bool {
	switch GetCode(err) {
	case ErrCodeOutOfBounds, ErrCodeOverlap, ErrCodeNoSpace:
		return true
	}
	return false
}
