package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	userRepo "artisly/database/repository/user"
	"artisly/models"
	"artisly/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const sessionCachePrefix = "session:"

// AuthMiddleware resolves the calling identity from a Bearer token. The token
// hash is checked against the auth cache first and falls back to the user
// document when the cache misses or is unavailable. On success the resolved
// models.Caller is stored in the request context under "caller".
func AuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		tokenHash := utils.HashToken(tokenString)
		ctx := context.Background()

		authCache := utils.GetAuthCacheClient()
		if authCache != nil {
			cached, err := authCache.Get(ctx, sessionCachePrefix+tokenHash).Result()
			if err == nil {
				// Cached value is "<userID>:<role>".
				if id, role, ok := strings.Cut(cached, ":"); ok {
					_ = authCache.Expire(ctx, sessionCachePrefix+tokenHash, time.Hour).Err()
					c.Set("caller", models.Caller{ID: id, Role: role})
					c.Next()
					return
				}
			} else if err != redis.Nil {
				utils.GetLogger().Warn("auth cache lookup failed, falling back to DB", zap.Error(err))
			}
		}

		// Cache miss: resolve the subject and verify the stored token hash.
		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		u, err := users.GetByID(userID)
		if err != nil || u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication error"})
			return
		}
		if u.TokenHash == "" || u.TokenHash != tokenHash {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Session is no longer valid"})
			return
		}

		if authCache != nil {
			_ = authCache.Set(ctx, sessionCachePrefix+tokenHash, u.ID+":"+u.Role, time.Hour).Err()
		}

		c.Set("caller", models.Caller{ID: u.ID, Role: u.Role})
		c.Next()
	}
}
