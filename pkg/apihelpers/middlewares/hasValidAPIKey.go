package middlewares

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HasValidAPIKey checks the Api-Key header against the configured keys
func HasValidAPIKey(validKeys []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("Api-Key")
		if apiKey == "" {
			slog.Warn("no Api-Key header found")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "api key missing"})
			return
		}

		for _, key := range validKeys {
			if key == apiKey {
				c.Next()
				return
			}
		}

		slog.Warn("invalid api key used")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
	}
}
