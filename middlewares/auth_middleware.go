package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"ringback/backend/utils"
)

const userIDKey = "user_id"

func bearer(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	t := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	return t, t != ""
}

// Auth rejects requests without a valid bearer token.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := bearer(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := utils.ParseJWT(secret, t)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

// OptionalAuth sets user_id when a valid token is present and otherwise lets
// the request through anonymously. Zone gating decides what anonymous means.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if t, ok := bearer(c); ok {
			if claims, err := utils.ParseJWT(secret, t); err == nil {
				c.Set(userIDKey, claims.UserID)
			}
		}
		c.Next()
	}
}

// UserID returns the authenticated user id, if any.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
