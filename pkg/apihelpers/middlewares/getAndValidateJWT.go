package middlewares

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	jwthandling "github.com/0himanshu3/CiviK-Link/pkg/jwt-handling"
	"github.com/gin-gonic/gin"
)

// extractToken reads the session token from the session cookie or, as a
// fallback for non-browser clients, from the Authorization header.
func extractToken(c *gin.Context) (string, error) {
	if token, err := c.Cookie(jwthandling.SESSION_COOKIE_NAME); err == nil && token != "" {
		return token, nil
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && parts[1] != "" {
			return parts[1], nil
		}
	}
	return "", errors.New("no Authorization token found")
}

// GetAndValidateUserJWT is a middleware that extracts the session token from
// the request and validates it
func GetAndValidateUserJWT(tokenSignKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractToken(c)
		if err != nil {
			slog.Warn("no Authorization token found")
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		// Parse and validate token
		parsedToken, ok, err := jwthandling.ValidateUserToken(token, tokenSignKey)
		if err != nil || !ok {
			slog.Warn("token validation failed")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "error during token validation"})
			c.Abort()
			return
		}
		c.Set("token", token)
		c.Set("validatedToken", parsedToken)
	}
}
