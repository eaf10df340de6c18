package middleware

import (
	"net/http"
	"strings"

	"content-ledger/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// Context keys populated by AuthMiddleware.
const (
	PrincipalKey = "principal"
	RoleKey      = "role"
)

func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(PrincipalKey, claims.Principal)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}
