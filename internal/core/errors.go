// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrUnavailable  = errors.New("unavailable")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// AppError is the only error shape allowed to cross the handler boundary.
// Lower-level store and infra errors are wrapped into one of these at the
// component edge; the wrapped cause is logged, never serialized.
type AppError struct {
	Err     error
	Message string
	Status  int
	Code    string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(err error, message string, status int, code string) *AppError {
	return &AppError{
		Err:     err,
		Message: message,
		Status:  status,
		Code:    code,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func ValidationError(message string) *AppError {
	return NewAppError(
		ErrInvalidInput,
		message,
		http.StatusBadRequest,
		"VALIDATION_ERROR",
	)
}

// MissingFieldsError lists every absent field, in declaration order, not just
// the first one encountered.
func MissingFieldsError(fields []string) *AppError {
	return NewAppError(
		ErrInvalidInput,
		"missing required fields: "+strings.Join(fields, ", "),
		http.StatusBadRequest,
		"MISSING_FIELDS",
	)
}

func BadTokenError() *AppError {
	return NewAppError(
		ErrTokenInvalid,
		"bad token",
		http.StatusBadRequest,
		"BAD_TOKEN",
	)
}

func ConflictError(message, code string) *AppError {
	return NewAppError(ErrDuplicateKey, message, http.StatusConflict, code)
}

func EmailRegisteredError() *AppError {
	return ConflictError(
		"an account with this email already exists",
		"EMAIL_ALREADY_REGISTERED",
	)
}

func UnauthorizedError(message string) *AppError {
	if message == "" {
		message = "authentication required"
	}
	return NewAppError(
		ErrUnauthorized,
		message,
		http.StatusUnauthorized,
		"UNAUTHORIZED",
	)
}

func ForbiddenError(message string) *AppError {
	if message == "" {
		message = "insufficient permissions"
	}
	return NewAppError(ErrForbidden, message, http.StatusForbidden, "FORBIDDEN")
}

func NotFoundError(resource string) *AppError {
	return NewAppError(
		ErrNotFound,
		resource+" not found",
		http.StatusNotFound,
		"NOT_FOUND",
	)
}

func InternalError(err error) *AppError {
	return NewAppError(
		err,
		"internal server error",
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
	)
}

func UnavailableError(err error, message string) *AppError {
	return NewAppError(
		fmt.Errorf("%w: %w", ErrUnavailable, err),
		message,
		http.StatusServiceUnavailable,
		"UNAVAILABLE",
	)
}
