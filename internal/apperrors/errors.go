package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidState indicates the resource exists but cannot take part in the requested action
// (inactive account, missing credential artifact).
var ErrInvalidState = errors.New("invalid state")

// ErrInvalidCredentials indicates a password or refresh token did not match the stored hash.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken indicates a token whose signature, algorithm or claims could not be validated.
var ErrInvalidToken = errors.New("invalid token")

// ErrExpiredToken indicates a well-signed token past its expiration.
var ErrExpiredToken = errors.New("token expired")

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal failure")
)

// AppError carries an HTTP status and a message that is safe to show to the caller.
// Err holds the sentinel (and optionally the underlying cause) so errors.Is keeps working.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
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

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

func NewInvalidStateError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrInvalidState)
}

func NewInvalidCredentialsError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrInvalidCredentials)
}

func NewUnauthorizedError(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrUnauthorized)
}

func NewBadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrDuplicate)
}

func NewForbiddenError(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, ErrForbidden)
}

// NewInternalError wraps cause under ErrInternal. The cause is kept for logs only.
func NewInternalError(message string, cause error) *AppError {
	if cause == nil {
		return NewAppError(http.StatusInternalServerError, message, ErrInternal)
	}
	return NewAppError(http.StatusInternalServerError, message, fmt.Errorf("%w: %w", ErrInternal, cause))
}

// HTTPStatus maps an error to the status code the HTTP layer should answer with.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidState), errors.Is(err, ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrExpiredToken), errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
