package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey   = "user_id"
	userRoleKey = "user_role"

	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"

	roleAdmin = "admin"
)

// RequireIdentity resolves the caller from the identity headers supplied by
// the upstream auth layer. Authentication itself lives outside this
// service; requests arriving without a resolved user are rejected.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(headerUserID))
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "missing user identity"},
			})
			return
		}
		c.Set(userIDKey, userID)
		c.Set(userRoleKey, strings.TrimSpace(c.GetHeader(headerUserRole)))
		c.Next()
	}
}

func GetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

func IsAdmin(c *gin.Context) bool {
	v, exists := c.Get(userRoleKey)
	if !exists {
		return false
	}
	role, ok := v.(string)
	return ok && role == roleAdmin
}
