// Package errors provides the error definitions used across limber. It
// defines sentinel errors, typed errors carrying routine context, and small
// classification helpers so presenters can decide what to show the user.
//
// # Error Types
//
//   - ConfigurationError: a routine cannot be started with the requested
//     parameters (length not allowed, catalog too small)
//   - ValidationError: invalid input such as a malformed catalog file
//
// # Usage
//
//	err := errors.NewConfigurationError("routine length not allowed", errors.ErrLengthNotAllowed).
//		WithLength(4).
//		WithAllowed([]int{3, 5, 7})
//
//	if errors.Is(err, errors.ErrLengthNotAllowed) { ... }
//
//	var cfgErr *errors.ConfigurationError
//	if errors.As(err, &cfgErr) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo Severity = iota
	// SeverityWarning is for errors caused by user input.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Routine sentinel errors
var (
	// ErrLengthNotAllowed indicates the requested routine length is not one of the allowed lengths.
	ErrLengthNotAllowed = New("routine length not allowed")
	// ErrCatalogTooSmall indicates the catalog has fewer exercises than the requested length.
	ErrCatalogTooSmall = New("catalog has too few exercises")
)

// Catalog sentinel errors
var (
	// ErrCatalogInvalid indicates a catalog file could not be parsed or failed validation.
	ErrCatalogInvalid = New("catalog is invalid")
	// ErrDuplicateExercise indicates two catalog entries share the same identity.
	ErrDuplicateExercise = New("duplicate exercise")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// LimberError is the interface implemented by all typed errors in this package.
type LimberError interface {
	error
	Unwrap() error
	Is(target error) bool
	Severity() Severity
	IsUserFacing() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// ConfigurationError
// -----------------------------------------------------------------------------

// ConfigurationError is returned synchronously when a routine cannot be
// started. No session exists after it is returned.
//
// Example:
//
//	err := errors.NewConfigurationError("not enough exercises", errors.ErrCatalogTooSmall).
//		WithLength(7).
//		WithCatalogSize(5)
type ConfigurationError struct {
	baseError
	Length      int
	Allowed     []int
	CatalogSize int
}

// NewConfigurationError creates a new ConfigurationError.
func NewConfigurationError(message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithLength records the requested routine length.
func (e *ConfigurationError) WithLength(n int) *ConfigurationError {
	e.Length = n
	return e
}

// WithAllowed records the allowed routine lengths.
func (e *ConfigurationError) WithAllowed(lengths []int) *ConfigurationError {
	e.Allowed = append([]int(nil), lengths...)
	return e
}

// WithCatalogSize records how many exercises the catalog holds.
func (e *ConfigurationError) WithCatalogSize(n int) *ConfigurationError {
	e.CatalogSize = n
	return e
}

// Error returns the formatted error message.
func (e *ConfigurationError) Error() string {
	var parts []string
	if e.Length != 0 {
		parts = append(parts, fmt.Sprintf("length=%d", e.Length))
	}
	if len(e.Allowed) > 0 {
		parts = append(parts, fmt.Sprintf("allowed=%v", e.Allowed))
	}
	if e.CatalogSize != 0 {
		parts = append(parts, fmt.Sprintf("catalog=%d", e.CatalogSize))
	}

	prefix := "configuration error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("configuration error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ConfigurationError) Is(target error) bool {
	if _, ok := target.(*ConfigurationError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// ValidationError
// -----------------------------------------------------------------------------

// ValidationError represents invalid input.
//
// Example:
//
//	err := errors.NewValidationError("exercise name cannot be empty").
//		WithField("exercises[2].name")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// IsUserFacing returns true if the error message is safe to display to end users.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var limberErr LimberError
	if As(err, &limberErr) {
		return limberErr.IsUserFacing()
	}
	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement LimberError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityInfo
	}

	var limberErr LimberError
	if As(err, &limberErr) {
		return limberErr.Severity()
	}
	return SeverityError
}

// IsConfigurationError reports whether err is or wraps a ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return As(err, &cfgErr)
}

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
