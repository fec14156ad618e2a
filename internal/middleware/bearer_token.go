package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/muhajir-foundation/muhajir-api/internal/services/auth"
)

type BearerTokenMiddleware struct {
	authService *auth.AuthService
}

func NewBearerTokenMiddleware(authService *auth.AuthService) *BearerTokenMiddleware {
	return &BearerTokenMiddleware{authService: authService}
}

// RequireUser validates the bearer token and stores the user in the context
func (m *BearerTokenMiddleware) RequireUser() gin.HandlerFunc {
	return m.handle(false)
}

// RequireAdmin is RequireUser restricted to superusers
func (m *BearerTokenMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.handle(true)
}

func (m *BearerTokenMiddleware) handle(adminOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			unauthorized(c)
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		ctx := c.Request.Context()
		validate := m.authService.ValidateToken
		if adminOnly {
			validate = m.authService.CurrentAdmin
		}
		user, err := validate(ctx, tokenString)
		switch {
		case err == nil:
		case errors.Is(err, auth.ErrForbidden):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Not enough permissions"})
			return
		case errors.Is(err, auth.ErrInactiveUser):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Inactive user"})
			return
		case errors.Is(err, auth.ErrInvalidToken):
			unauthorized(c)
			return
		default:
			logrus.WithError(err).Error("Token validation failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Set("is_admin", user.IsSuperuser)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
}
