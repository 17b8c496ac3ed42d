package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hostelmate/marketplace-api/internal/handler"
	"github.com/hostelmate/marketplace-api/internal/model"
	"github.com/hostelmate/marketplace-api/pkg/auth"
)

const (
	ContextUserID   = "userID"
	ContextUserType = "userType"
)

type AuthMiddleware struct {
	tokens auth.JWTService
}

func NewAuthMiddleware(tokens auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate verifies the bearer token and puts the current user's id and
// type into the request context. Downstream code trusts these values.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid authorization format"))
			c.Abort()
			return
		}

		claims, err := m.tokens.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserType, string(claims.UserType))
		c.Next()
	}
}

// RequireType restricts a route to one side of the marketplace.
func (m *AuthMiddleware) RequireType(userType model.UserType) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserType) != string(userType) {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("not allowed for this account type"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser reads the identity set by Authenticate.
func CurrentUser(c *gin.Context) (string, model.UserType) {
	return c.GetString(ContextUserID), model.UserType(c.GetString(ContextUserType))
}
