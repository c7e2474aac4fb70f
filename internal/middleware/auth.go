package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"Content_Service/internal/pkg"
)

const ContextUserIDKey = "user_id"

// AuthMiddleware requires a valid bearer token and injects its user id. A nil
// issuer means auth is disabled and every request passes through.
func AuthMiddleware(issuer *pkg.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if issuer == nil {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			pkg.Fail(c, fmt.Errorf("%w: missing authorization header", pkg.ErrUnauthorized))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			pkg.Fail(c, fmt.Errorf("%w: invalid authorization format", pkg.ErrUnauthorized))
			return
		}

		claims, err := issuer.Parse(parts[1])
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, pkg.ErrTokenExpired) {
				msg = "token expired"
			}
			pkg.Fail(c, fmt.Errorf("%w: %s", pkg.ErrUnauthorized, msg))
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}

// UserID returns the authenticated user, or "" when auth is disabled.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserIDKey)
}

// MatchUser aborts with 403 when an authenticated caller acts for another user.
// It reports whether the handler may continue.
func MatchUser(c *gin.Context, userID string) bool {
	actor := UserID(c)
	if actor != "" && actor != userID {
		pkg.Fail(c, fmt.Errorf("%w: user_id does not match token", pkg.ErrForbidden))
		return false
	}
	return true
}
