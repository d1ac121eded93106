package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"studiosync/internal/pkg/jwtutil"
	"studiosync/internal/repository"
	"studiosync/internal/transport/http/response"
)

const (
	ContextUserIDKey   = "user_id"
	ContextEmailKey    = "email"
	ContextUsernameKey = "username"
)

// AuthJWT rejects any request that does not carry a valid bearer token for a
// live, active account. It exposes no distinction between a bad token and a
// vanished user beyond the message text, and its only side effect is one
// user lookup.
func AuthJWT(secret string, userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "Unauthorized: missing token")
			c.Abort()
			return
		}

		const prefix = "Bearer "
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		if !strings.HasPrefix(authHeader, prefix) || token == "" {
			response.Error(c, http.StatusUnauthorized, "Unauthorized: invalid token format")
			c.Abort()
			return
		}

		claims, ok := jwtutil.VerifyToken(secret, token)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Unauthorized: invalid or expired token")
			c.Abort()
			return
		}

		user, err := userRepo.GetByID(claims.UserID)
		if err != nil || user == nil || !user.IsActive {
			response.Error(c, http.StatusUnauthorized, "Unauthorized: user not found or inactive")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextEmailKey, user.Email)
		c.Set(ContextUsernameKey, user.Username)
		c.Next()
	}
}

// UserID returns the authenticated user id attached by AuthJWT.
func UserID(c *gin.Context) (string, bool) {
	raw, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", false
	}
	id, ok := raw.(string)
	return id, ok && id != ""
}
