package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bloghub/internal/models"
	"bloghub/internal/repository"
	"bloghub/internal/service"
	"bloghub/internal/store"
)

const currentUserKey = "currentUser"

// Auth validates the bearer token and loads the authenticated user into
// the request context. Soft-deleted accounts fail authentication even with
// a still-valid token.
func Auth(authService service.AuthService, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID, store.Visible)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "account not available"})
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Set("userID", user.ID)
		c.Set("role", user.Role)
		c.Next()
	}
}

// CurrentUser returns the user loaded by Auth, or nil on unauthenticated
// routes.
func CurrentUser(c *gin.Context) *models.User {
	value, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}
