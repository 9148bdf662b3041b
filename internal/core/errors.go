// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidID    = errors.New("invalid object id")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenRevoked = errors.New("token revoked")
)

// FieldError is a single {path, message} record in the error envelope.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// AppError is the one typed error condition every layer normalizes into.
// It carries the HTTP status, a stable machine code, and per-field details.
type AppError struct {
	Err     error
	Message string
	Status  int
	Code    string
	Details []FieldError
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

func ValidationError(details []FieldError) *AppError {
	return &AppError{
		Message: "Validation Error",
		Status:  http.StatusBadRequest,
		Code:    "VALIDATION_ERROR",
		Details: details,
	}
}

func BadRequestError(message string) *AppError {
	return NewAppError(nil, message, http.StatusBadRequest, "BAD_REQUEST")
}

func UnauthorizedError(message string) *AppError {
	if message == "" {
		message = "authentication required"
	}
	return NewAppError(nil, message, http.StatusUnauthorized, "UNAUTHORIZED")
}

func ForbiddenError(message string) *AppError {
	return NewAppError(
		ErrForbidden,
		message,
		http.StatusForbidden,
		"FORBIDDEN",
	)
}

func NotFoundError(resource string) *AppError {
	return NewAppError(
		ErrNotFound,
		resource+" not found",
		http.StatusNotFound,
		"NOT_FOUND",
	)
}

func ConflictError(message string, fields ...string) *AppError {
	appErr := NewAppError(
		ErrDuplicateKey,
		message,
		http.StatusConflict,
		"CONFLICT",
	)
	for _, f := range fields {
		appErr.Details = append(appErr.Details, FieldError{
			Path:    f,
			Message: message,
		})
	}
	return appErr
}

func DuplicateError(field string) *AppError {
	return ConflictError(field+" already exists", field)
}

func TokenExpiredError() *AppError {
	return NewAppError(
		ErrTokenExpired,
		"token expired, please log in again",
		http.StatusUnauthorized,
		"TOKEN_EXPIRED",
	)
}

func TokenInvalidError() *AppError {
	return NewAppError(
		ErrTokenInvalid,
		"invalid token",
		http.StatusUnauthorized,
		"TOKEN_INVALID",
	)
}

func TokenRevokedError() *AppError {
	return NewAppError(
		ErrTokenRevoked,
		"token is blacklisted",
		http.StatusUnauthorized,
		"TOKEN_REVOKED",
	)
}

// Normalize maps sentinel errors onto AppErrors; anything unrecognized
// becomes a generic 500 so internals never leak to the wire.
func Normalize(err error) *AppError {
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}

	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidID):
		return NewAppError(err, "resource not found", http.StatusNotFound, "NOT_FOUND")
	case errors.Is(err, ErrDuplicateKey):
		return NewAppError(err, "duplicate value", http.StatusConflict, "CONFLICT")
	case errors.Is(err, ErrForbidden):
		return NewAppError(err, "forbidden", http.StatusForbidden, "FORBIDDEN")
	case errors.Is(err, ErrTokenExpired):
		return TokenExpiredError()
	case errors.Is(err, ErrTokenRevoked):
		return TokenRevokedError()
	case errors.Is(err, ErrTokenInvalid):
		return TokenInvalidError()
	}

	return NewAppError(
		err,
		"An unexpected error occurred",
		http.StatusInternalServerError,
		"INTERNAL",
	)
}
