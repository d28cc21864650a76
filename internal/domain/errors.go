package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeStorage      ErrorCode = "STORAGE_ERROR"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeInvalidChoice ErrorCode = "INVALID_CHOICE"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Generation and content specific errors
	CodeGenerationFailed     ErrorCode = "GENERATION_FAILED"
	CodeGenerationInProgress ErrorCode = "GENERATION_IN_PROGRESS"
	CodeNoActiveQuiz         ErrorCode = "NO_ACTIVE_QUIZ"
	CodeExportUnavailable    ErrorCode = "EXPORT_UNAVAILABLE"
	CodeSavedQuizNotFound    ErrorCode = "SAVED_QUIZ_NOT_FOUND"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Context map[string]interface{} `json:"context,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Context: e.Context,
	})
}

// WithContext attaches a key/value pair that is rendered in error responses
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewStorageError(message string, err error) *DomainError {
	return NewError(CodeStorage, message, err)
}

func NewGenerationInProgressError() *DomainError {
	return NewError(CodeGenerationInProgress, "Content generation is already in progress", nil)
}

func NewNoActiveQuizError() *DomainError {
	return NewError(CodeNoActiveQuiz, "No quiz is currently loaded", nil)
}

func NewExportUnavailableError() *DomainError {
	return NewError(CodeExportUnavailable, "Export is only available for text content", nil)
}

// NewUnsupportedScriptError reports text the export format cannot encode.
func NewUnsupportedScriptError(format string, r rune) *DomainError {
	return NewError(CodeExportUnavailable, fmt.Sprintf("%s export supports Latin-script text only; use md or txt instead", strings.ToUpper(format)), nil).
		WithContext("format", format).
		WithContext("rune", fmt.Sprintf("%U", r))
}

func NewSavedQuizNotFoundError(id string) *DomainError {
	return NewError(CodeSavedQuizNotFound, fmt.Sprintf("Saved quiz not found with ID: %s", id), nil).
		WithContext("id", id)
}

// ValidationError describes a single invalid form field
type ValidationError struct {
	Field   string    `json:"field"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every field error found in one request
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, 0, len(ve))
	for _, e := range ve {
		msgs = append(msgs, e.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeMissingField,
		Message: fmt.Sprintf("%s is required", field),
	}
}

func NewInvalidFormatError(field, value string) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeInvalidFormat,
		Message: fmt.Sprintf("invalid format for %s: %q", field, value),
	}
}

func NewInvalidChoiceError(field, value string, allowed []string) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeInvalidChoice,
		Message: fmt.Sprintf("%q is not one of [%s]", value, strings.Join(allowed, ", ")),
	}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeOutOfRange,
		Message: fmt.Sprintf("%s must be between %d and %d, got %d", field, min, max, value),
	}
}
