package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/doctor-api/pkg/httputil"
)

const DefaultMaxBodySize int64 = 1 << 20

// SizeLimit rejects declared oversize bodies up front and caps the rest while
// they are read.
func SizeLimit(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodySize
	}
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, httputil.ErrorBody{
				Message: "request body too large",
			})
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
