package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "validation",
			err:            NewValidation("title is required"),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "conflict",
			err:            New(KindConflict, "username is already taken"),
			expectedStatus: http.StatusConflict,
			expectedCode:   "CONFLICT",
		},
		{
			name:           "authentication",
			err:            New(KindAuthentication, "invalid username or password"),
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "AUTHENTICATION_ERROR",
		},
		{
			name:           "authorization",
			err:            New(KindAuthorization, "you do not have access to this book"),
			expectedStatus: http.StatusForbidden,
			expectedCode:   "FORBIDDEN",
		},
		{
			name:           "not found",
			err:            New(KindNotFound, "book not found"),
			expectedStatus: http.StatusNotFound,
			expectedCode:   "NOT_FOUND",
		},
		{
			name:           "unclassified error becomes storage",
			err:            errors.New("driver: bad connection"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "STORAGE_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err, false)
			assert.Equal(t, tt.expectedStatus, httpErr.StatusCode)
			assert.Equal(t, tt.expectedCode, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_StorageDetail(t *testing.T) {
	cause := errors.New("driver: bad connection")

	// Production mode hides the cause behind the generic message.
	httpErr := MapErrorToHTTP(NewStorage(cause), false)
	assert.Equal(t, "internal server error", httpErr.Message)

	// Dev mode opts in to the underlying detail.
	httpErr = MapErrorToHTTP(NewStorage(cause), true)
	assert.Equal(t, "driver: bad connection", httpErr.Message)
}

func TestMapErrorToHTTP_CarriesDetails(t *testing.T) {
	err := NewValidation("title is required", "status must be one of to-read, reading, read")

	httpErr := MapErrorToHTTP(err, false)
	resp := httpErr.ToErrorResponse()
	assert.Equal(t, "VALIDATION_ERROR", resp.Code)
	assert.Len(t, resp.Details, 2)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(New(KindNotFound, "book not found")))
	assert.Equal(t, KindStorage, KindOf(errors.New("anything else")))
}
