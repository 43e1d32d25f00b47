package v1

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/incident_dispatch/internal/config"
	"github.com/sirupsen/logrus"
)

const (
	apiKeyHeader = "X-API-Key"
	bearerPrefix = "Bearer "
)

// APIKeyAuthMiddleware - middleware для аутентификации по API-ключу.
// Ключ принимается из X-API-Key или из Authorization: Bearer.
func APIKeyAuthMiddleware(cfg *config.Config, log *logrus.Logger) gin.HandlerFunc {
	keys := make([][]byte, 0, len(cfg.APIKeys))
	for _, key := range cfg.APIKeys {
		keys = append(keys, []byte(key))
	}

	return func(c *gin.Context) {
		entry := log.WithFields(logrus.Fields{
			"middleware": "api_key",
			"path":       c.FullPath(),
			"remote":     c.ClientIP(),
		})

		apiKey := requestAPIKey(c)
		if apiKey == "" {
			entry.Warn("API key missing from request")
			unauthorized(c, "API key required")
			return
		}

		if !knownKey(keys, apiKey) {
			entry.Warn("Invalid API key provided")
			unauthorized(c, "Invalid API key")
			return
		}

		c.Next()
	}
}

func requestAPIKey(c *gin.Context) string {
	if key := strings.TrimSpace(c.GetHeader(apiKeyHeader)); key != "" {
		return key
	}
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
	}
	return ""
}

// knownKey сравнивает со всеми ключами за постоянное время
func knownKey(keys [][]byte, candidate string) bool {
	found := 0
	for _, key := range keys {
		found |= subtle.ConstantTimeCompare(key, []byte(candidate))
	}
	return found == 1
}

func unauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", `ApiKey header="`+apiKeyHeader+`"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}
