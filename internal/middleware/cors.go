package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type CORSConfig struct {
	AllowOrigins  []string
	AllowMethods  []string
	AllowHeaders  []string
	ExposeHeaders []string
	MaxAge        int
}

func DefaultCORSConfig(origins []string) CORSConfig {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			HeaderXRequestID,
		},
		ExposeHeaders: []string{HeaderXRequestID},
		MaxAge:        86400,
	}
}

// CORS answers preflight requests itself. Requests from origins that are not
// allowed get no CORS headers at all.
func CORS(config CORSConfig) gin.HandlerFunc {
	wildcard := false
	allowed := make(map[string]bool, len(config.AllowOrigins))
	for _, o := range config.AllowOrigins {
		if o == "*" {
			wildcard = true
		}
		allowed[strings.TrimRight(o, "/")] = true
	}

	methods := strings.Join(config.AllowMethods, ", ")
	headers := strings.Join(config.AllowHeaders, ", ")
	expose := strings.Join(config.ExposeHeaders, ", ")
	maxAge := strconv.Itoa(config.MaxAge)

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (wildcard || allowed[origin]) {
			if wildcard {
				c.Header("Access-Control-Allow-Origin", "*")
			} else {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
			}
			c.Header("Access-Control-Allow-Methods", methods)
			c.Header("Access-Control-Allow-Headers", headers)
			c.Header("Access-Control-Expose-Headers", expose)
			c.Header("Access-Control-Max-Age", maxAge)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
