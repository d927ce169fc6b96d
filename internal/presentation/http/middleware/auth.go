package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/yumzee-api/internal/presentation/http/dto/response"
	"github.com/sangkips/yumzee-api/pkg/utils"
)

// Context keys and cookie names shared with the handlers
const (
	ContextAccountID    = "account_id"
	ContextAccountEmail = "account_email"

	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// bearerToken returns the token from the Authorization header, falling back
// to the access token cookie set by the OAuth callback.
func bearerToken(c *gin.Context) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return "", false
		}
		return parts[1], true
	}
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextAccountID, claims.AccountID)
		c.Set(ContextAccountEmail, claims.Email)

		c.Next()
	}
}
