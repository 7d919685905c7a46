package model

import "errors"

// ErrorCode is the stable machine-readable code exposed in error responses
type ErrorCode string

const (
	ErrCodeValidation         ErrorCode = "VALIDATION_ERROR"
	ErrCodeQuotaExceeded      ErrorCode = "QUOTA_EXCEEDED"
	ErrCodeRateLimited        ErrorCode = "RATE_LIMITED"
	ErrCodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeNetwork            ErrorCode = "NETWORK_ERROR"
	ErrCodeUpstreamSchema     ErrorCode = "UPSTREAM_SCHEMA_ERROR"
	ErrCodeTimeout            ErrorCode = "TIMEOUT"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// SearchError is the only error shape that propagates to the HTTP response.
// Storage and data-integrity failures never become a SearchError; they are
// absorbed by the cache layer and reported through the error hook.
type SearchError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	cause     error
}

func (e *SearchError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *SearchError) Unwrap() error { return e.cause }

// NewSearchError builds a typed error with an optional wrapped cause
func NewSearchError(code ErrorCode, message string, retryable bool, cause error) *SearchError {
	return &SearchError{Code: code, Message: message, Retryable: retryable, cause: cause}
}

// NewValidationError builds a non-retryable client-input error
func NewValidationError(message string) *SearchError {
	return &SearchError{Code: ErrCodeValidation, Message: message, Retryable: false}
}

// AsSearchError unwraps err to a *SearchError when one is in the chain
func AsSearchError(err error) (*SearchError, bool) {
	var se *SearchError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
