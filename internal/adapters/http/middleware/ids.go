// Package middleware provides the gin middleware chain of the blog service.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/blog-service/internal/platform/logging"
)

const (
	// HeaderRequestID carries the per-request id.
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID carries an id shared by every request of one
	// client-side transaction.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyRequestID is the gin context key of the request id.
	ContextKeyRequestID = "request_id"

	// ContextKeyCorrelationID is the gin context key of the correlation id.
	ContextKeyCorrelationID = "correlation_id"
)

// maxIDLength bounds ids accepted from clients; longer ones are replaced.
const maxIDLength = 128

type idConfig struct {
	header   string
	key      string
	enricher func(ctx context.Context, id string) context.Context
}

// RequestID takes X-Request-ID from the request, or generates a UUID, and
// echoes it on the response. The id is added to the request logger.
func RequestID() gin.HandlerFunc {
	return idMiddleware(idConfig{
		header:   HeaderRequestID,
		key:      ContextKeyRequestID,
		enricher: logging.WithRequestID,
	})
}

// CorrelationID does the same as RequestID for X-Correlation-ID.
func CorrelationID() gin.HandlerFunc {
	return idMiddleware(idConfig{
		header:   HeaderCorrelationID,
		key:      ContextKeyCorrelationID,
		enricher: logging.WithCorrelationID,
	})
}

func idMiddleware(cfg idConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(cfg.header)
		if id == "" || len(id) > maxIDLength {
			id = uuid.New().String()
		}

		c.Set(cfg.key, id)
		c.Header(cfg.header, id)

		if cfg.enricher != nil {
			c.Request = c.Request.WithContext(cfg.enricher(c.Request.Context(), id))
		}

		c.Next()
	}
}

// GetRequestID returns the request id, or "" outside the middleware.
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// GetCorrelationID returns the correlation id, or "" outside the middleware.
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(ContextKeyCorrelationID)
}
