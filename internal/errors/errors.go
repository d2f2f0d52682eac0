package errors

import (
	"errors"
	"net/http"
)

// Kind is the stable machine-readable category carried by every error
// response.
type Kind string

const (
	KindValidation     Kind = "VALIDATION_ERROR"
	KindConflict       Kind = "CONFLICT"
	KindAuthentication Kind = "AUTHENTICATION_ERROR"
	KindAuthorization  Kind = "FORBIDDEN"
	KindNotFound       Kind = "NOT_FOUND"
	KindStorage        Kind = "STORAGE_ERROR"
)

// Error is a classified application error. Details lists every violated rule
// for validation failures. Internal wraps the underlying cause and is only
// surfaced to clients in dev mode.
type Error struct {
	Kind     Kind
	Message  string
	Details  []string
	Internal error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Internal
}

// New builds an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewValidation builds a validation error listing every violated rule.
func NewValidation(details ...string) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Details: details}
}

// NewStorage wraps an unclassified persistence failure. The cause is kept for
// logs and dev mode but never shown to clients otherwise.
func NewStorage(cause error) *Error {
	return &Error{Kind: KindStorage, Message: "internal server error", Internal: cause}
}

// KindOf returns the kind of err, or KindStorage when err is unclassified.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorage
}

// ErrorResponse represents a standardized error response body.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code"`
	Details []string `json:"details,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Details    []string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:   e.Message,
		Code:    e.Code,
		Details: e.Details,
	}
}

// MapErrorToHTTP maps a classified error to its HTTP representation. When dev
// is set, storage errors expose their underlying cause; otherwise clients see
// only the generic message.
func MapErrorToHTTP(err error, dev bool) *HTTPError {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = NewStorage(err)
	}

	status := http.StatusInternalServerError
	switch appErr.Kind {
	case KindValidation:
		status = http.StatusBadRequest
	case KindConflict:
		status = http.StatusConflict
	case KindAuthentication:
		status = http.StatusUnauthorized
	case KindAuthorization:
		status = http.StatusForbidden
	case KindNotFound:
		status = http.StatusNotFound
	case KindStorage:
		status = http.StatusInternalServerError
	}

	message := appErr.Message
	if appErr.Kind == KindStorage && dev && appErr.Internal != nil {
		message = appErr.Internal.Error()
	}

	return &HTTPError{
		StatusCode: status,
		Message:    message,
		Code:       string(appErr.Kind),
		Details:    appErr.Details,
	}
}
