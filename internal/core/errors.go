// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
	ErrInternal     = errors.New("internal error")
)

const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeWeakPassword    = "WEAK_PASSWORD"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeInvalidCreds    = "INVALID_CREDENTIALS"
	CodePending         = "PENDING_APPROVAL"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeTokenExpired    = "TOKEN_EXPIRED"
	CodeTokenInvalid    = "TOKEN_INVALID"
	CodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
	CodeInternal        = "INTERNAL_ERROR"
)

// AppError carries the HTTP status and client-facing message for a failure.
// Err is kept for errors.Is matching and is never serialized.
type AppError struct {
	Err        error
	Message    string
	StatusCode int
	Code       string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(err error, message string, status int, code string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: status,
		Code:       code,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func ValidationError(message string) *AppError {
	return NewAppError(ErrInvalidInput, message, http.StatusBadRequest, CodeValidation)
}

func UnauthorizedError(message string) *AppError {
	if message == "" {
		message = "authentication required"
	}
	return NewAppError(ErrUnauthorized, message, http.StatusUnauthorized, CodeUnauthenticated)
}

func ForbiddenError(message string) *AppError {
	if message == "" {
		message = "access denied"
	}
	return NewAppError(ErrForbidden, message, http.StatusForbidden, CodeForbidden)
}

func NotFoundError(resource string) *AppError {
	return NewAppError(ErrNotFound, resource+" not found", http.StatusNotFound, CodeNotFound)
}

func DuplicateError(field string) *AppError {
	return NewAppError(ErrDuplicateKey, field+" already registered", http.StatusConflict, CodeConflict)
}

func TokenExpiredError() *AppError {
	return NewAppError(ErrTokenExpired, "token expired", http.StatusUnauthorized, CodeTokenExpired)
}

func TokenInvalidError() *AppError {
	return NewAppError(ErrTokenInvalid, "invalid token", http.StatusUnauthorized, CodeTokenInvalid)
}

func InternalError(err error) *AppError {
	return NewAppError(err, "server error", http.StatusInternalServerError, CodeInternal)
}
