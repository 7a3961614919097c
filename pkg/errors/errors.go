/*
Copyright © 2025 Schemaguard Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package errors provides structured, coded errors shared by the CLI and
// HTTP layers. Codes classify failures coarsely (schema vs. decode vs.
// internal) so callers can map them to exit codes and HTTP statuses
// without string matching.
package errors

import (
	stderrors "errors"
	"fmt"
)

// As and Is re-export the standard helpers so callers importing this
// package do not also need the stdlib errors package.
var (
	As = stderrors.As
	Is = stderrors.Is
)

// Error codes as constants
const (
	// ErrCodeSchema marks a schema document that is structurally invalid
	// or internally inconsistent. Nothing is validated against a broken
	// schema.
	ErrCodeSchema = "SCHEMA_ERROR"

	// ErrCodeDecode marks a document that failed to parse into a tree.
	ErrCodeDecode = "DECODE_ERROR"

	ErrCodeInternal          = "INTERNAL_ERROR"
	ErrCodeInvalidRequest    = "INVALID_REQUEST"
	ErrCodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
)

// StructuredError is an error with a machine-readable code.
type StructuredError struct {
	Code    string
	Message string
	Err     error
}

// New creates a StructuredError with the given code and message.
func New(code, message string) *StructuredError {
	return &StructuredError{Code: code, Message: message}
}

// Newf creates a StructuredError with a formatted message.
func Newf(code, format string, args ...any) *StructuredError {
	return &StructuredError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a StructuredError that wraps an underlying cause.
func Wrap(code, message string, err error) *StructuredError {
	return &StructuredError{Code: code, Message: message, Err: err}
}

func (e *StructuredError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *StructuredError) Unwrap() error { return e.Err }

// CodeOf returns the structured code of err, or ErrCodeInternal when err
// carries none.
func CodeOf(err error) string {
	var se *StructuredError
	if As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}
