package middleware

import (
	"net/http"
	"strings"

	"github.com/darisadam/bankist-server/internal/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware
const (
	ContextSessionID = "session_id"
	ContextUserName  = "user_name"
)

// AuthMiddleware validates the bearer token and stores the session it was
// issued for. Whether that session is still current is up to the handlers.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ContextSessionID, claims.SessionID)
		c.Set(ContextUserName, claims.UserName)
		c.Next()
	}
}
