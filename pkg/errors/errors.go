// Package errors provides structured error types for the mosaicflow layout engine.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engine, CLI and HTTP service
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Engine errors describe contract violations rather than normal outcomes:
//   - ITEM_NOT_FOUND: an operation referenced an item the engine does not manage
//   - MEASUREMENT: the measurement provider returned a negative or non-finite value
//   - CONVERGENCE: the balancer exceeded its move budget
//   - REENTRANT_CALL: an observer called back into the engine during a notification
//
// # Usage
//
//	err := errors.New(errors.ErrCodeItemNotFound, "item %q is not managed", id)
//	if errors.Is(err, errors.ErrCodeItemNotFound) {
//	    // Handle missing item
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "decode manifest %s", path)
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
	ErrCodeInvalidID     Code = "INVALID_ID"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeItemNotFound Code = "ITEM_NOT_FOUND"

	// Layout errors
	ErrCodeDuplicateItem Code = "DUPLICATE_ITEM"
	ErrCodeMeasurement   Code = "MEASUREMENT"
	ErrCodeConvergence   Code = "CONVERGENCE"
	ErrCodeReentrant     Code = "REENTRANT_CALL"

	// Backend errors
	ErrCodeStorage Code = "STORAGE_ERROR"

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

// MeasurementError describes a value rejected from the measurement provider.
// It is carried as the Cause of an ErrCodeMeasurement error.
type MeasurementError struct {
	Subject string  // "container", "item", or "column"
	ID      string  // item ID or column index, empty for the container
	Value   float64 // the rejected value
}

// Error implements the error interface.
func (e *MeasurementError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("invalid %s measurement %v", e.Subject, e.Value)
	}
	return fmt.Sprintf("invalid %s %s measurement %v", e.Subject, e.ID, e.Value)
}

// Code returns the error code for this error type.
func (e *MeasurementError) Code() Code {
	return ErrCodeMeasurement
}
