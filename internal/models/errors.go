package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEncoding is returned when file content is not valid text.
	ErrInvalidEncoding = errors.New("file is not valid UTF-8 text")

	// ErrFileTooLarge is returned when a file exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file exceeds maximum size")
)

// PatternError means the assembled search expression could not be compiled.
// It is fatal: no file is read once it occurs.
type PatternError struct {
	Pattern    string // Pattern as supplied by the user
	Expression string // Expression handed to the regex engine, empty if never built
	Err        error
}

// Error implements the error interface for PatternError.
func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying error for error wrapping support.
func (e *PatternError) Unwrap() error {
	return e.Err
}

// TraversalError records a path whose metadata or listing could not be read.
type TraversalError struct {
	Path string
	Err  error
}

// Error implements the error interface for TraversalError.
func (e *TraversalError) Error() string {
	return fmt.Sprintf("error reading %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for error wrapping support.
func (e *TraversalError) Unwrap() error {
	return e.Err
}

// ScanError records a file that could not be loaded as text.
type ScanError struct {
	Path string
	Err  error
}

// Error implements the error interface for ScanError.
func (e *ScanError) Error() string {
	return fmt.Sprintf("error loading file %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for error wrapping support.
func (e *ScanError) Unwrap() error {
	return e.Err
}

// IsRecoverable reports whether err only affects a single path.
func IsRecoverable(err error) bool {
	var te *TraversalError
	var se *ScanError
	return errors.As(err, &te) || errors.As(err, &se)
}
