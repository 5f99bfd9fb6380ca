package api

import "net/http"

// Error categories.
const (
	CategoryValidationError = "VALIDATION_ERROR"
	CategoryObjectNotFound  = "OBJECT_NOT_FOUND"
	CategoryConflict        = "CONFLICT"
	CategoryUnauthorized    = "UNAUTHORIZED"
	CategoryFetchError      = "FETCH_ERROR"
	CategoryInternalError   = "INTERNAL_ERROR"
)

// Error is the JSON error envelope of every failed request.
type Error struct {
	Status        string        `json:"status"`
	Message       string        `json:"message"`
	CorrelationID string        `json:"correlationId"`
	Category      string        `json:"category"`
	Retryable     bool          `json:"retryable,omitempty"`
	RetryURL      string        `json:"retryUrl,omitempty"`
	Errors        []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail represents a single error within an Error.
type ErrorDetail struct {
	Message string `json:"message"`
	In      string `json:"in,omitempty"`
}

// NewNotFoundError creates a 404 error with the OBJECT_NOT_FOUND category.
func NewNotFoundError(message, correlationID string) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryObjectNotFound,
	}
}

// NewValidationError creates a 400 error with the VALIDATION_ERROR category.
func NewValidationError(message, correlationID string, details []ErrorDetail) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryValidationError,
		Errors:        details,
	}
}

// NewFetchError creates a 503 error for a failed catalog load. retryURL is
// the request to repeat.
func NewFetchError(message, correlationID, retryURL string) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryFetchError,
		Retryable:     true,
		RetryURL:      retryURL,
	}
}

// NewInternalError creates a 500 error that hides the cause.
func NewInternalError(correlationID string) *Error {
	return &Error{
		Status:        "error",
		Message:       "Internal Server Error",
		CorrelationID: correlationID,
		Category:      CategoryInternalError,
	}
}

// WriteError writes an Error as a JSON response with the given HTTP status code.
func WriteError(w http.ResponseWriter, statusCode int, apiErr *Error) {
	WriteJSON(w, statusCode, apiErr)
}
