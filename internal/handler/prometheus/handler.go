package prometheus

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/doctor-api/pkg/metrics"
)

type Handler struct {
	metrics *metrics.Metrics
}

func New(m *metrics.Metrics) *Handler {
	return &Handler{metrics: m}
}

// Middleware records request count and latency labelled by route template,
// so /api/patients/:id is one series regardless of the id.
func (h *Handler) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		h.metrics.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		h.metrics.RequestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}

func (h *Handler) Handler() gin.HandlerFunc {
	return gin.WrapH(h.metrics.Handler())
}
