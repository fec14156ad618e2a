package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/muhajir-foundation/muhajir-api/internal/metrics"
	"github.com/muhajir-foundation/muhajir-api/internal/services/api_key"
)

const (
	HeaderAPIKey       = "x-api-key"
	HeaderAPISignature = "x-api-signature"
)

// APIKeyMiddleware authenticates machine callers by HMAC signature
type APIKeyMiddleware struct {
	apiKeyService *api_key.Service
	metrics       *metrics.Metrics
}

// NewAPIKeyMiddleware creates a new API key middleware. m may be nil.
func NewAPIKeyMiddleware(apiKeyService *api_key.Service, m *metrics.Metrics) *APIKeyMiddleware {
	return &APIKeyMiddleware{
		apiKeyService: apiKeyService,
		metrics:       m,
	}
}

// RequireSignature admits the request only when x-api-signature is the HMAC
// of data under the secret of the active key named by x-api-key. Every
// failure, storage errors included, gets the same 403.
func (m *APIKeyMiddleware) RequireSignature(data string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(HeaderAPIKey)
		signature := c.GetHeader(HeaderAPISignature)

		ok := false
		outcome := "denied"
		if key != "" && signature != "" {
			var err error
			ok, err = m.apiKeyService.Verify(c.Request.Context(), key, signature, data)
			if err != nil {
				logrus.WithError(err).Error("API key verification failed")
				outcome = "error"
			}
		}
		if ok {
			outcome = "accepted"
		}
		if m.metrics != nil {
			m.metrics.ObserveVerification(outcome)
		}

		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid API key or signature"})
			return
		}

		c.Set("auth_type", "api_key")
		c.Next()
	}
}
