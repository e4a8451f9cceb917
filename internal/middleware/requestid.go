package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	HeaderXRequestID = "X-Request-ID"
	ContextRequestID = "request_id"

	maxRequestIDLength = 128
)

// RequestID propagates X-Request-ID, generating one when absent or oversized,
// and attaches a request scoped logger to the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderXRequestID)
		if rid == "" || len(rid) > maxRequestIDLength {
			rid = uuid.New().String()
		}

		c.Set(ContextRequestID, rid)
		c.Header(HeaderXRequestID, rid)

		logger := log.With().Str(ContextRequestID, rid).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))
		c.Next()
	}
}
