package middleware

import (
	"net/http"
	"strings"

	"coachpay/config"
	"coachpay/internal/auth"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer token and sets StaffID, Email, Position
// in context. Tokens are issued by the identity service; we only verify.
func AuthRequired(cfg *config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}
		claims, err := auth.ParseAccessToken(cfg, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set("staff_id", claims.StaffID)
		c.Set("email", claims.Email)
		c.Set("position", claims.Position)
		c.Next()
	}
}

// RequirePosition checks that the authenticated staff member holds one of
// the allowed positions.
func RequirePosition(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		position, exists := c.Get("position")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		p := position.(string)
		for _, a := range allowed {
			if p == a {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}

// GetStaffID returns the authenticated staff ID from context (must be used
// after AuthRequired).
func GetStaffID(c *gin.Context) uint {
	v, _ := c.Get("staff_id")
	if v == nil {
		return 0
	}
	return v.(uint)
}
