package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/youssefkhaled23/factory-system-backend/internal/core/domain"
)

// identityKey is the key used to store the verified caller in the Gin context.
const identityKey = contextKey("identity")

func setIdentity(c *gin.Context, identity *domain.Identity) {
	c.Set(string(identityKey), identity)
	c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), identityKey, identity))
}

// GetIdentityFromContext retrieves the identity the auth middleware admitted.
func GetIdentityFromContext(c *gin.Context) (*domain.Identity, bool) {
	val, exists := c.Get(string(identityKey))
	if !exists {
		// check in the request context as well
		val = c.Request.Context().Value(identityKey)
		if val == nil {
			return nil, false
		}
	}

	identity, ok := val.(*domain.Identity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	identity, ok := GetIdentityFromContext(c)
	if !ok || identity.SubjectID == "" {
		return "", false
	}
	return identity.SubjectID, true
}
