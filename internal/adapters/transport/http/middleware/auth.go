package middleware

import (
	"net/http"
	"strings"

	appjwt "github.com/Miraines/MoonyAndStarry/bookmark-service/internal/app/auth/jwt"
	"github.com/gin-gonic/gin"
)

const (
	ContextUserID = "userId"
	ContextEmail  = "email"
)

// RequireAuth extracts and validates the bearer access token. A missing
// token is unauthenticated (401), a present but invalid or expired one is
// forbidden (403). On success the decoded identity is attached to the
// request context. No side effects.
func RequireAuth(tokens appjwt.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw := strings.TrimPrefix(header, "Bearer ")
		if header == "" || raw == header || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		claims, err := tokens.ValidateAccessToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}
