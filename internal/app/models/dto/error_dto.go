package dto

import "time"

// ErrorCode identifies the kind of failure independently of the message
type ErrorCode string

// Authentication
const (
	ErrorCodeUnauthorized       ErrorCode = "AUTH_001"
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_002"
	ErrorCodeInvalidToken       ErrorCode = "AUTH_003"
	ErrorCodeExpiredToken       ErrorCode = "AUTH_004"
	ErrorCodeAccountDisabled    ErrorCode = "AUTH_005"
)

// Records and requests
const (
	ErrorCodeResourceNotFound      ErrorCode = "RES_001"
	ErrorCodeResourceAlreadyExists ErrorCode = "RES_002"
	ErrorCodeValidationFailed      ErrorCode = "VAL_001"
	ErrorCodeBadRequest            ErrorCode = "VAL_002"
)

// Console
const (
	ErrorCodeUnknownModel  ErrorCode = "ADM_001"
	ErrorCodeUnknownAction ErrorCode = "ADM_002"
	ErrorCodeNoSelection   ErrorCode = "ADM_003"
)

// ErrorCodeInternalServer hides anything the API does not classify
const ErrorCodeInternalServer ErrorCode = "SRV_001"

// ErrorDetail describes one failure. Field is the JSON name of the offending
// input, when there is one.
type ErrorDetail struct {
	Code    ErrorCode   `json:"code" example:"VAL_001"`
	Message string      `json:"message" example:"must be at least 6"`
	Field   string      `json:"field,omitempty" example:"age"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse is the envelope of every failed request
type ErrorResponse struct {
	Success   bool         `json:"success" example:"false"`
	Error     *ErrorDetail `json:"error"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewErrorDetail creates a new error detail
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{Code: code, Message: message}
}

// WithField names the offending input
func (e *ErrorDetail) WithField(field string) *ErrorDetail {
	e.Field = field
	return e
}

// WithDetails attaches extra context for the client
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// NewErrorResponse wraps detail in a failed envelope
func NewErrorResponse(detail *ErrorDetail) *ErrorResponse {
	return &ErrorResponse{Error: detail, Timestamp: time.Now()}
}
