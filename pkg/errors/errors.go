// Package errors provides custom error types for the qbank system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the qbank system
var (
	// ErrNotFound indicates that a requested record was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyCollection indicates that a collection-level operation was
	// given no records to work with
	ErrEmptyCollection = errors.New("empty collection")

	// ErrUnresolvedConflict indicates that a merge could not produce a
	// conflict-free result under the chosen strategy
	ErrUnresolvedConflict = errors.New("unresolved conflict")

	// ErrInvariantViolation indicates a defect inside the core itself:
	// a safety guarantee such as post-renumber ID uniqueness was not met
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrReadOnly indicates an attempt to modify a read-only resource
	ErrReadOnly = errors.New("read only")
)

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// UnresolvedConflictError is returned when a merge strategy cannot produce
// a conflict-free collection. It aborts the merge and carries the IDs of
// the colliding incoming records so the caller can present them and ask
// for a different strategy.
type UnresolvedConflictError struct {
	Strategy    string
	ConflictIDs []string
	Count       int
}

// Error implements the error interface
func (e *UnresolvedConflictError) Error() string {
	if len(e.ConflictIDs) > 0 {
		return fmt.Sprintf("strategy %s left %d unresolved conflicts (ids: %s)",
			e.Strategy, e.Count, strings.Join(e.ConflictIDs, ", "))
	}
	return fmt.Sprintf("strategy %s left %d unresolved conflicts", e.Strategy, e.Count)
}

// Is implements errors.Is support
func (e *UnresolvedConflictError) Is(target error) bool {
	return target == ErrUnresolvedConflict
}

// NewUnresolvedConflictError creates a new UnresolvedConflictError
func NewUnresolvedConflictError(strategy string, conflictIDs []string) *UnresolvedConflictError {
	return &UnresolvedConflictError{
		Strategy:    strategy,
		ConflictIDs: conflictIDs,
		Count:       len(conflictIDs),
	}
}

// InvariantError signals a defect in the core itself, such as the
// renumberer producing IDs the conflict detector still flags. It is never
// degraded to a warning: it means a uniqueness guarantee was not met.
type InvariantError struct {
	Component string
	Message   string
}

// Error implements the error interface
func (e *InvariantError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("invariant violated in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("invariant violated: %s", e.Message)
}

// Is implements errors.Is support
func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariantViolation
}

// NewInvariantError creates a new InvariantError
func NewInvariantError(component, message string) *InvariantError {
	return &InvariantError{Component: component, Message: message}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml", etc.
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "delete", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsUnresolvedConflict checks if an error is an unresolved conflict error
func IsUnresolvedConflict(err error) bool {
	return errors.Is(err, ErrUnresolvedConflict)
}

// IsInvariantViolation checks if an error signals a defect in the core
func IsInvariantViolation(err error) bool {
	return errors.Is(err, ErrInvariantViolation)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
