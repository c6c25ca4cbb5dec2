// Package errors provides structured error types for the Stackbar chart engine.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP server and the engine
//   - Machine-readable error codes for programmatic handling
//   - User-facing messages that are safe to show inside a chart container
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input or configuration validation failures
//   - UNRESOLVED_*: References that could not be matched against the data
//   - GEOMETRY / MEASURE: Layout-time failures contained by the engine
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "missing category column")
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Abort the render and show the fatal message
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMeasure, origErr, "measure %q", text)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Reference errors
	ErrCodeUnresolvedSelector Code = "UNRESOLVED_SELECTOR"
	ErrCodeFileNotFound       Code = "FILE_NOT_FOUND"

	// Layout errors
	ErrCodeGeometry Code = "GEOMETRY"
	ErrCodeMeasure  Code = "MEASURE"

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

// SelectorError lists the selector entries that matched no category.
type SelectorError struct {
	Selector   string
	Unresolved []string
}

// Error implements the error interface.
func (e *SelectorError) Error() string {
	return fmt.Sprintf("unresolved selector %q: %v", e.Selector, e.Unresolved)
}

// Code returns the error code for this error type.
func (e *SelectorError) Code() Code {
	return ErrCodeUnresolvedSelector
}

// Unresolved returns the selector entries reported by a SelectorError in
// err's chain, or nil.
func Unresolved(err error) []string {
	var se *SelectorError
	if errors.As(err, &se) {
		return se.Unresolved
	}
	return nil
}

// Contained reports whether err is a failure the layout engine absorbs:
// the affected indicators are dropped and a message is shown, but the
// chart is still drawn. Any other error aborts the chart.
func Contained(err error) bool {
	switch GetCode(err) {
	case ErrCodeUnresolvedSelector, ErrCodeGeometry, ErrCodeMeasure:
		return true
	}
	return false
}
