package middleware

import (
	"github.com/gin-gonic/gin"
)

// StaticCacheControl is sent with frontend assets.
const StaticCacheControl = "public, max-age=3600"

// NoStore keeps API responses, which carry patient data, out of every cache.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
