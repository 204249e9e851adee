package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextUserKey is the gin context key holding the authenticated username.
const ContextUserKey = "authUser"

// Middleware validates the bearer token and stores the username in the
// request context for downstream handlers.
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := ParseToken(secret, tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextUserKey, claims.Username)
		c.Next()
	}
}

// UserFromContext returns the authenticated username set by Middleware.
func UserFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return "", false
	}
	username, ok := v.(string)
	return username, ok
}
