package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// Authentication errors
	ErrAuthRequired       = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Request errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Console errors
var (
	ErrUnknownModel  = errors.New("model is not registered")
	ErrUnknownAction = errors.New("action is not registered for this model")
	ErrNoSelection   = errors.New("items must be selected in order to perform actions on them")
)

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError gives one of the sentinels above a client-facing message and,
// for request errors, the offending field and extra details.
type CustomError struct {
	Err     error
	Message string
	Field   string
	Details any
}

func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewResourceNotFoundError names the record that does not exist
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewBadRequestError reports a request that could not be decoded at all,
// before any record validation ran.
func NewBadRequestError(field, message string, details any) error {
	return &CustomError{Err: ErrBadRequest, Message: message, Field: field, Details: details}
}

// FieldError is a write rejected because of a single field. Kind is either
// ErrValidationFailed or ErrResourceAlreadyExists.
type FieldError struct {
	Kind    error
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return e.Kind
}

// NewValidationError reports an invalid value for field.
func NewValidationError(field, message string) *FieldError {
	return &FieldError{Kind: ErrValidationFailed, Field: field, Message: message}
}

// NewUniqueViolation reports that the value of field (or the field set it
// names) is already taken by another record.
func NewUniqueViolation(field, message string) *FieldError {
	if message == "" {
		message = "a record with this value already exists"
	}
	return &FieldError{Kind: ErrResourceAlreadyExists, Field: field, Message: message}
}

// FieldOf returns the field named by err, if err carries one.
func FieldOf(err error) (string, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Field, true
	}
	var ce *CustomError
	if errors.As(err, &ce) && ce.Field != "" {
		return ce.Field, true
	}
	return "", false
}
