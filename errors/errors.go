// Package errors provides error handling for freshprobe.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - PII-safe error formatting
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check error kind
//	if errors.Is(err, errors.ErrNotFound) {
//	    // handle missing row/column/key
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is         = crdb.Is
	IsAny      = crdb.IsAny
	As         = crdb.As
	Unwrap     = crdb.Unwrap
	UnwrapOnce = crdb.UnwrapOnce
	UnwrapAll  = crdb.UnwrapAll
	Mark       = crdb.Mark
	Join       = crdb.Join
)

// Error kinds raised by template resolution. Every failure surfaced by the
// engine or the function library is marked with exactly one of these, so
// callers can classify failures with errors.Is without string matching.
var (
	// ErrParse indicates malformed template syntax: unbalanced braces or a
	// call expression that cannot be split into name and arguments.
	ErrParse = New("parse error")

	// ErrUnknownFunction indicates a function name absent from the registry.
	ErrUnknownFunction = New("unknown function")

	// ErrArgument indicates a wrong argument count or an argument that does
	// not parse as the expected type (e.g. a non-integer line number).
	ErrArgument = New("invalid argument")

	// ErrSourceNotFound indicates the referenced file, database or table
	// does not exist at all.
	ErrSourceNotFound = New("source not found")

	// ErrNotFound indicates a row, column, line, word, key or path segment
	// missing from a source that does exist.
	ErrNotFound = New("not found")

	// ErrPathResolution indicates TARGET_FILE or {{artifacts}} was
	// referenced without a binding available for the current entry.
	ErrPathResolution = New("path resolution error")
)

// NewParse creates a parse error with a formatted message.
func NewParse(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrParse)
}

// NewUnknownFunction creates an unknown-function error naming the function.
func NewUnknownFunction(name string) error {
	return Mark(Newf("unknown function %q", name), ErrUnknownFunction)
}

// NewArgument creates an argument error with a formatted message.
func NewArgument(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrArgument)
}

// NewSourceNotFound creates a source-not-found error for a missing file or table.
func NewSourceNotFound(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrSourceNotFound)
}

// NewNotFound creates a not-found error for a missing row/column/key/segment.
func NewNotFound(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrNotFound)
}

// NewPathResolution creates a path-resolution error.
func NewPathResolution(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrPathResolution)
}

// IsNotFoundError checks if an error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsArgumentError checks if an error is or wraps ErrArgument.
func IsArgumentError(err error) bool {
	return err != nil && Is(err, ErrArgument)
}
