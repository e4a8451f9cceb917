package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/doctor-api/pkg/httputil"
)

type RateLimiterConfig struct {
	Rate  rate.Limit
	Burst int
	// Idle client limiters are dropped after this long.
	TTL time.Duration
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	config   RateLimiterConfig
	mu       sync.Mutex
	limiters *cache.Cache
}

func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.TTL <= 0 {
		config.TTL = 10 * time.Minute
	}
	return &RateLimiter{
		config:   config,
		limiters: cache.New(config.TTL, config.TTL),
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, ok := rl.limiters.Get(key); ok {
		rl.limiters.SetDefault(key, v)
		return v.(*rate.Limiter)
	}
	l := rate.NewLimiter(rl.config.Rate, rl.config.Burst)
	rl.limiters.SetDefault(key, l)
	return l
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiter(c.ClientIP()).Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httputil.ErrorBody{
				Message: "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
