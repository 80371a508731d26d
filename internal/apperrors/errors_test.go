package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/youssefkhaled23/factory-system-backend/internal/apperrors"
)

func TestAppErrorUnwrapsToSentinel(t *testing.T) {
	err := apperrors.NewNotFoundError("user not found")

	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.False(t, errors.Is(err, apperrors.ErrDuplicate))
	assert.Equal(t, http.StatusNotFound, err.Code)
	assert.Contains(t, err.Error(), "user not found")
}

func TestNewInternalErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperrors.NewInternalError("failed to save user", cause)

	assert.True(t, errors.Is(err, apperrors.ErrInternal))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, http.StatusInternalServerError, err.Code)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error keeps code", apperrors.NewConflictError("email taken"), http.StatusConflict},
		{"wrapped not found", fmt.Errorf("lookup: %w", apperrors.ErrNotFound), http.StatusNotFound},
		{"duplicate", apperrors.ErrDuplicate, http.StatusConflict},
		{"invalid state", apperrors.ErrInvalidState, http.StatusBadRequest},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusBadRequest},
		{"expired token", apperrors.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid token", apperrors.ErrInvalidToken, http.StatusUnauthorized},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden},
		{"forbidden app error", apperrors.NewForbiddenError("not allowed"), http.StatusForbidden},
		{"unauthorized app error", apperrors.NewUnauthorizedError("please log in"), http.StatusUnauthorized},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperrors.HTTPStatus(tt.err))
		})
	}
}
