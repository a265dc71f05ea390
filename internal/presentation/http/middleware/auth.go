package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/tillpoint/internal/domain/entity"
	"github.com/sangkips/tillpoint/internal/presentation/http/dto/response"
)

// SessionKey is where the authenticated till session is stored on the gin context.
const SessionKey = "session"

// SessionResolver turns a bearer token into a till session.
type SessionResolver interface {
	SessionFromToken(token string) (*entity.Session, error)
}

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		session, err := resolver.SessionFromToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(SessionKey, *session)
		c.Set("cashier_id", session.CashierID)

		c.Next()
	}
}

// RequireAdmin only lets admin sessions through
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(SessionKey)
		if !exists {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		session, ok := value.(entity.Session)
		if !ok || !session.IsAdmin() {
			response.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}
