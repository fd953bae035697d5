package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"imgtext/internal/domain"
)

const (
	// HeaderAPIKey carries the caller's recognition provider key.
	HeaderAPIKey = "X-API-Key"

	ContextKeyCredential = "credential"
)

// RequireCredential aborts with 400 when the request carries no API key. The
// key is stored in the context for the handler and is never logged.
func RequireCredential() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(HeaderAPIKey))
		if key == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   gin.H{"code": "MISSING_API_KEY", "message": domain.ErrMissingCredential.Error()},
			})
			return
		}
		c.Set(ContextKeyCredential, key)
		c.Next()
	}
}

// GetCredential extracts the API key stored by RequireCredential.
func GetCredential(c *gin.Context) (string, error) {
	val, exists := c.Get(ContextKeyCredential)
	if !exists {
		return "", domain.ErrMissingCredential
	}
	key, ok := val.(string)
	if !ok || key == "" {
		return "", domain.ErrMissingCredential
	}
	return key, nil
}
