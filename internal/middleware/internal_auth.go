package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const internalTokenHeader = "X-Internal-Token"

// InternalAuthMiddleware guards the internal API group with a shared
// token. Comparison is constant-time so the token cannot be probed
// byte by byte.
func InternalAuthMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(internalTokenHeader)
		if provided == "" ||
			subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized",
			})
			return
		}

		c.Next()
	}
}
