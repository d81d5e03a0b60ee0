// AngelaMos | 2026
// errors_test.go

package core

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantStatus int
		wantCode   string
		sentinel   error
	}{
		{
			name:       "validation",
			err:        ValidationError("bad input"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
			sentinel:   ErrInvalidInput,
		},
		{
			name:       "email registered",
			err:        EmailRegisteredError(),
			wantStatus: http.StatusConflict,
			wantCode:   "EMAIL_ALREADY_REGISTERED",
			sentinel:   ErrDuplicateKey,
		},
		{
			name:       "bad token",
			err:        BadTokenError(),
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_TOKEN",
			sentinel:   ErrTokenInvalid,
		},
		{
			name:       "unauthorized",
			err:        UnauthorizedError(""),
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
			sentinel:   ErrUnauthorized,
		},
		{
			name:       "forbidden",
			err:        ForbiddenError(""),
			wantStatus: http.StatusForbidden,
			wantCode:   "FORBIDDEN",
			sentinel:   ErrForbidden,
		},
		{
			name:       "not found",
			err:        NotFoundError("project"),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
			sentinel:   ErrNotFound,
		},
		{
			name:       "internal",
			err:        InternalError(errors.New("boom")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
		{
			name:       "unavailable",
			err:        UnavailableError(errors.New("smtp down"), "email could not be sent"),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "UNAVAILABLE",
			sentinel:   ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.Status)
			assert.Equal(t, tt.wantCode, tt.err.Code)
			if tt.sentinel != nil {
				assert.ErrorIs(t, tt.err, tt.sentinel)
			}
		})
	}
}

func TestMissingFieldsError_ListsAllFields(t *testing.T) {
	err := MissingFieldsError([]string{"firstname", "email", "password"})

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "MISSING_FIELDS", err.Code)
	assert.Equal(t, "missing required fields: firstname, email, password", err.Message)
}

func TestAsAppError(t *testing.T) {
	wrapped := NotFoundError("user")

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Status)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}
