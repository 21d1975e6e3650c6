package errors

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
)

// APIError is the structured error body returned by the HTTP layer.
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Render implements render.Renderer for chi/render.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// NewAPIError creates a new APIError.
func NewAPIError(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// Predefined API errors for common scenarios.
var (
	ErrInvalidRequest    = NewAPIError(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrMissingFile       = NewAPIError(http.StatusBadRequest, "MISSING_FILE", "Request is missing the report file")
	ErrNotFound          = NewAPIError(http.StatusNotFound, "NOT_FOUND", "Resource not found")
	ErrRateLimitExceeded = NewAPIError(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded")
	ErrInternalServer    = NewAPIError(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
)

// ToAPIError maps an application error onto the HTTP contract. Content and
// structural parse failures surface their message verbatim as 422; validation
// failures as 400; everything else is a generic 500.
func ToAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		return ErrInternalServer
	}

	switch appErr.Type {
	case ErrTypeParsing:
		return NewAPIError(http.StatusUnprocessableEntity, "PARSE_FAILED", appErr.Message)
	case ErrTypeValidation:
		return NewAPIError(http.StatusBadRequest, "VALIDATION_FAILED", appErr.Message)
	case ErrTypeNotFound:
		return NewAPIError(http.StatusNotFound, "NOT_FOUND", appErr.Message)
	default:
		return ErrInternalServer
	}
}
