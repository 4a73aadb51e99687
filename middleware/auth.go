package middleware

import (
	"context"
	"net/http"
	"strings"

	"tutorhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// The revocation set is written by the identity service that issues the
// tokens; this engine only consults it.
const revokedTokenPrefix = "revoked:"

// JWTAuthInstructorMiddleware validates the instructor JWT and checks the
// Redis revocation set before setting instructorID in the context. Token
// issuance and revocation live in the identity service; this engine only
// consumes the result.
func JWTAuthInstructorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := zap.L()
		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		instructorID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || instructorID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		// A revoked token hash stays blacklisted until its natural expiry.
		tokenHash := utils.HashToken(tokenString)
		authCache := utils.GetAuthCacheClient()
		if _, err := authCache.Get(ctx, revokedTokenPrefix+tokenHash).Result(); err == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
			return
		} else if err != redis.Nil {
			logger.Error("Error checking token revocation cache", zap.Error(err))
		}

		c.Set("instructorID", instructorID)
		c.Next()
	}
}
