package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripmind/internal/domain/user"
	"tripmind/internal/utils/platformerrors"
)

const (
	userIDHeader     = "X-User-ID"
	userIDContextKey = "userID"
)

// IdentityMiddleware resolves the caller from the X-User-ID header and
// ensures a user record exists. Auth proper lives in front of this service;
// the header carries the already-verified external identity.
func IdentityMiddleware(users *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		externalID := c.GetHeader(userIDHeader)
		if externalID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"ok":     false,
				"detail": "missing X-User-ID header",
			})
			return
		}

		resolved, err := users.EnsureUser(c.Request.Context(), externalID)
		if err != nil {
			platformErr := platformerrors.GetPlatformError(err)
			status := http.StatusInternalServerError
			if platformErr != nil {
				status = platformerrors.ErrorTypeToHTTPStatus(platformErr.Type)
			}
			c.AbortWithStatusJSON(status, gin.H{
				"ok":     false,
				"detail": "failed to resolve user",
			})
			return
		}

		c.Set(userIDContextKey, resolved.ID)
		c.Next()
	}
}

// UserIDFromContext returns the resolved internal user ID.
func UserIDFromContext(c *gin.Context) (uint, bool) {
	val, ok := c.Get(userIDContextKey)
	if !ok {
		return 0, false
	}
	id, ok := val.(uint)
	return id, ok
}
