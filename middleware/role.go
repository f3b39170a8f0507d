package middleware

import (
	"net/http"

	"artisly/models"

	"github.com/gin-gonic/gin"
)

// RequireAdmin aborts the request unless the resolved caller has the admin
// role. Must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		val, exists := c.Get("caller")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Insufficient authorization"})
			return
		}
		caller, ok := val.(models.Caller)
		if !ok || !caller.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Admin access required"})
			return
		}
		c.Next()
	}
}
