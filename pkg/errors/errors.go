// Package errors provides structured error types for pkgjson.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and the CLI
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes fall into three families:
//   - NOT_LOCATED: a read or write was attempted before a package.json path was known
//   - INVALID_*, MISSING_FIELD: the document is malformed (see [IsMalformed])
//   - IO_ERROR: the underlying file-system primitive failed
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingField, "missing required field %q", "name")
//	if errors.Is(err, errors.ErrCodeMissingField) {
//	    // Handle the malformed document
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Caller errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeNotLocated   Code = "NOT_LOCATED"
	ErrCodeNotFound     Code = "NOT_FOUND"

	// Malformed document errors
	ErrCodeInvalidSyntax   Code = "INVALID_SYNTAX"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeInvalidField    Code = "INVALID_FIELD"
	ErrCodeMissingField    Code = "MISSING_FIELD"

	// File-system errors
	ErrCodeIO Code = "IO_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// IsMalformed reports whether err describes a malformed document: bad JSON
// syntax, a non-object top level, a field of the wrong shape or a missing
// required field.
func IsMalformed(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidSyntax, ErrCodeInvalidDocument, ErrCodeInvalidField, ErrCodeMissingField:
		return true
	}
	return false
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s", e.Message, UserMessage(e.Cause))
		}
		return e.Message
	}
	return err.Error()
}
