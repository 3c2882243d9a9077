package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrTypeScriptLoad     ErrorType = "script_load"
	ErrTypeSchemaUnavail  ErrorType = "schema_unavailable"
	ErrTypeValidation     ErrorType = "validation"
	ErrTypeQueryExecution ErrorType = "query_execution"
	ErrTypeNotFound       ErrorType = "not_found"
	ErrTypeDatabase       ErrorType = "database"
	ErrTypePersistence    ErrorType = "persistence"
	ErrTypeConfig         ErrorType = "config"
	ErrTypeInternal       ErrorType = "internal"
)

// Error represents a structured error with type and optional suggestions
type Error struct {
	Type        ErrorType
	Message     string
	Cause       error
	Suggestions []string
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}

	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithSuggestion adds a suggestion for resolving the error
func (e *Error) WithSuggestion(suggestion string) *Error {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// New creates a new structured error
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new structured error with formatted message
func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an existing error with formatted message
func Wrapf(err error, errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	var structErr *Error
	if errors.As(err, &structErr) {
		return structErr.Type == errType
	}

	return false
}

// GetType returns the error type if it's a structured error
func GetType(err error) ErrorType {
	var structErr *Error
	if errors.As(err, &structErr) {
		return structErr.Type
	}

	return ErrTypeInternal
}

// NewSchemaUnavailableError creates a schema_unavailable error with the
// standard recovery suggestions shown alongside the schema view.
func NewSchemaUnavailableError(message string, cause error) *Error {
	var err *Error
	if cause != nil {
		err = Wrap(cause, ErrTypeSchemaUnavail, message)
	} else {
		err = New(ErrTypeSchemaUnavail, message)
	}

	return err.
		WithSuggestion("Check that the database path in the configuration points to an existing file").
		WithSuggestion("Run 'querydesk analyze' again once the database is reachable")
}

// NewNotFoundError creates a not_found error for a missing query record
func NewNotFoundError(recordID string) *Error {
	return Newf(ErrTypeNotFound, "query record not found: %s", recordID).
		WithSuggestion("Run 'querydesk list' to see the ids of all stored queries")
}
