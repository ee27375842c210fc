package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorType defines the category of the error
type ErrorType string

const (
	ErrorTypeEmptyCredential      ErrorType = "EMPTY_CREDENTIAL"
	ErrorTypeInvalidCredential    ErrorType = "INVALID_CREDENTIAL"
	ErrorTypeMissingCredential    ErrorType = "MISSING_CREDENTIAL"
	ErrorTypeIncompleteRequest    ErrorType = "INCOMPLETE_REQUEST"
	ErrorTypeGenerationFailed     ErrorType = "GENERATION_FAILED"
	ErrorTypeGenerationInProgress ErrorType = "GENERATION_IN_PROGRESS"
	ErrorTypeValidation           ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound             ErrorType = "NOT_FOUND_ERROR"
	ErrorTypeInternal             ErrorType = "INTERNAL_ERROR"
)

// AppError represents a structured error for the application
type AppError struct {
	Type          ErrorType `json:"type"`
	Message       string    `json:"message"`
	StatusCode    int       `json:"statusCode"`
	ErrorCode     string    `json:"errorCode"`
	IsOperational bool      `json:"isOperational"`
	Recovery      string    `json:"recoverySuggestion,omitempty"`
	Err           error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *AppError of the same type.
// Any two errors of one kind match regardless of message or cause.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// Code returns the application-specific error code
func (e *AppError) Code() string {
	return e.ErrorCode
}

// RecoverySuggestion returns the suggestion on how to recover from the error
func (e *AppError) RecoverySuggestion() string {
	return e.Recovery
}

// IsType reports whether err, or anything it wraps, is an AppError of type t.
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return false
	}
	return appErr.Type == t
}

// As returns the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return nil, false
	}
	return appErr, true
}

// NewEmptyCredentialError is returned when a blank credential is submitted (400)
func NewEmptyCredentialError() *AppError {
	return &AppError{
		Type:          ErrorTypeEmptyCredential,
		Message:       "API key cannot be empty",
		StatusCode:    http.StatusBadRequest,
		ErrorCode:     "CREDENTIAL_EMPTY",
		IsOperational: true,
		Recovery:      "Paste your API key and save it again.",
	}
}

// NewInvalidCredentialError is returned when a client cannot be built from the credential (400)
func NewInvalidCredentialError(err error) *AppError {
	return &AppError{
		Type:          ErrorTypeInvalidCredential,
		Message:       "API key is invalid",
		StatusCode:    http.StatusBadRequest,
		ErrorCode:     "CREDENTIAL_INVALID",
		IsOperational: true,
		Recovery:      "Check the key with your provider and save it again.",
		Err:           err,
	}
}

// NewMissingCredentialError is returned when generation is attempted before a credential is saved (412)
func NewMissingCredentialError() *AppError {
	return &AppError{
		Type:          ErrorTypeMissingCredential,
		Message:       "Please save your API key first",
		StatusCode:    http.StatusPreconditionFailed,
		ErrorCode:     "CREDENTIAL_MISSING",
		IsOperational: true,
		Recovery:      "Enter your API key in the settings panel.",
	}
}

// NewIncompleteRequestError is returned when one or more recipe fields are empty (400)
func NewIncompleteRequestError(missing []string) *AppError {
	msg := "Please fill in all fields"
	if len(missing) > 0 {
		msg = fmt.Sprintf("%s (missing: %v)", msg, missing)
	}
	return &AppError{
		Type:          ErrorTypeIncompleteRequest,
		Message:       msg,
		StatusCode:    http.StatusBadRequest,
		ErrorCode:     "REQUEST_INCOMPLETE",
		IsOperational: true,
		Recovery:      "Ingredients, meal type, people count and cooking method are all required.",
	}
}

// NewGenerationFailedError wraps a failed call to the text generation service (502)
func NewGenerationFailedError(errorCode string, err error) *AppError {
	return &AppError{
		Type:          ErrorTypeGenerationFailed,
		Message:       "Could not generate the recipe",
		StatusCode:    http.StatusBadGateway,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      "Please try again.",
		Err:           err,
	}
}

// NewGenerationInProgressError is returned when a submission arrives while another is still running (409)
func NewGenerationInProgressError() *AppError {
	return &AppError{
		Type:          ErrorTypeGenerationInProgress,
		Message:       "A recipe is already being generated",
		StatusCode:    http.StatusConflict,
		ErrorCode:     "GENERATION_IN_PROGRESS",
		IsOperational: true,
		Recovery:      "Wait for the current recipe to finish.",
	}
}

// NewValidationError creates a new validation error (400)
func NewValidationError(message string, errorCode string, suggestion string) *AppError {
	return &AppError{
		Type:          ErrorTypeValidation,
		Message:       message,
		StatusCode:    http.StatusBadRequest,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      suggestion,
	}
}

// NewNotFoundError creates a new not found error (404)
func NewNotFoundError(message string, errorCode string, suggestion string) *AppError {
	return &AppError{
		Type:          ErrorTypeNotFound,
		Message:       message,
		StatusCode:    http.StatusNotFound,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      suggestion,
	}
}

// NewInternalError wraps an unexpected failure (500)
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:          ErrorTypeInternal,
		Message:       message,
		StatusCode:    http.StatusInternalServerError,
		ErrorCode:     "INTERNAL",
		IsOperational: false,
		Err:           err,
	}
}
