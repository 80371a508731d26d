package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/youssefkhaled23/factory-system-backend/internal/core/domain"
	portssvc "github.com/youssefkhaled23/factory-system-backend/internal/core/ports/services"
	"github.com/youssefkhaled23/factory-system-backend/internal/dto"
)

// AuthMiddleware admits a request only when the session guard accepts its
// bearer token. Routes whose template is listed in publicRoutes skip the guard.
func AuthMiddleware(guard portssvc.SessionGuardSvc, publicRoutes ...string) gin.HandlerFunc {
	public := make(map[string]struct{}, len(publicRoutes))
	for _, route := range publicRoutes {
		public[route] = struct{}{}
	}

	return func(c *gin.Context) {
		logger := GetLoggerFromContext(c)

		if _, ok := public[c.FullPath()]; ok {
			c.Next()
			return
		}

		identity, err := guard.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			var rejection *domain.Rejection
			if errors.As(err, &rejection) {
				logger.Warn("Request rejected by session guard",
					slog.String("reason", rejection.Kind.String()),
					slog.String("error", err.Error()))
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
					Status:  false,
					Code:    http.StatusUnauthorized,
					Error:   "unauthorized",
					Message: rejection.Message,
				})
				return
			}

			logger.Error("Session guard failed", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
				Status:  false,
				Code:    http.StatusInternalServerError,
				Error:   "internal_error",
				Message: "An internal error occurred",
			})
			return
		}

		setIdentity(c, identity)
		// Add user ID to the logger
		setRequestLogger(c, logger.With(slog.String("user_id", identity.SubjectID)))

		c.Next()
	}
}
