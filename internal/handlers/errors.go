package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/youssefkhaled23/factory-system-backend/internal/apperrors"
	"github.com/youssefkhaled23/factory-system-backend/internal/dto"
	"github.com/youssefkhaled23/factory-system-backend/internal/middleware"
	"github.com/youssefkhaled23/factory-system-backend/internal/platform/validation"
)

// respondWithError maps a service error to its status and the error envelope.
// Internal causes are logged, never returned.
func respondWithError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromContext(c)
	status := apperrors.HTTPStatus(err)

	message := http.StatusText(status)
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		message = appErr.Message
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("error", err.Error()))
		message = "An internal error occurred"
	} else {
		logger.Warn("Request failed", slog.Int("status", status), slog.String("error", err.Error()))
	}

	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Status:  false,
		Code:    status,
		Error:   errorCode(status),
		Message: message,
	})
}

// respondWithBindError answers 400 for a body or query that failed binding.
func respondWithBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromContext(c).Warn("Invalid request", slog.String("error", err.Error()))
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
		Status:  false,
		Code:    http.StatusBadRequest,
		Error:   errorCode(http.StatusBadRequest),
		Message: "Invalid request",
		Details: validation.FieldErrors(err),
	})
}

func errorCode(status int) string {
	return strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}

// requireUserID reads the admitted caller. The auth middleware guarantees it on
// guarded routes, so a miss is treated as unauthorized.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondWithError(c, apperrors.NewUnauthorizedError("please log in to continue"))
		return "", false
	}
	return userID, true
}
