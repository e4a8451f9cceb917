package router

import (
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/doctor-api/internal/handler/prometheus"
	"github.com/jwalitptl/doctor-api/internal/middleware"
	"github.com/jwalitptl/doctor-api/pkg/httputil"
)

type Handler interface {
	RegisterRoutes(gin.IRouter)
}

// Handlers groups everything the router mounts.
type Handlers struct {
	Health      Handler
	Metrics     *prometheus.Handler
	Auth        Handler
	Dashboard   Handler
	Patient     Handler
	Appointment Handler
	Emergency   Handler
}

type RouterConfig struct {
	RateLimit      rate.Limit
	RateBurst      int
	CORSConfig     middleware.CORSConfig
	RequestTimeout time.Duration
	MaxBodySize    int64
	AuthRequired   bool
	// StaticDir holds the built frontend; empty disables static serving.
	StaticDir string
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	handlers Handlers
	config   RouterConfig
}

func NewRouter(auth *middleware.AuthMiddleware, handlers Handlers, config RouterConfig) *Router {
	engine := gin.New()

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		handlers.Metrics.Middleware(),
		middleware.CORS(config.CORSConfig),
	)

	if config.RateLimit > 0 {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	return &Router{
		engine:   engine,
		auth:     auth,
		handlers: handlers,
		config:   config,
	}
}

func (r *Router) Setup() {
	r.handlers.Health.RegisterRoutes(r.engine)
	r.engine.GET("/metrics", r.handlers.Metrics.Handler())

	api := r.engine.Group("/api")
	api.Use(
		middleware.NoStore(),
		middleware.SecurityHeaders(),
		middleware.SizeLimit(r.config.MaxBodySize),
		middleware.Timeout(r.config.RequestTimeout),
	)

	// Public routes
	r.handlers.Auth.RegisterRoutes(api)

	protected := api.Group("")
	if r.config.AuthRequired {
		protected.Use(r.auth.Authenticate())
	}
	r.handlers.Dashboard.RegisterRoutes(protected)
	r.handlers.Patient.RegisterRoutes(protected)
	r.handlers.Appointment.RegisterRoutes(protected)
	r.handlers.Emergency.RegisterRoutes(protected)

	r.engine.NoRoute(r.noRoute())
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// noRoute serves the frontend for unknown GET paths outside /api, falling
// back to index.html so client side routes survive a reload.
func (r *Router) noRoute() gin.HandlerFunc {
	dir := r.config.StaticDir
	fs := http.Dir(dir)

	return func(c *gin.Context) {
		method := c.Request.Method
		if dir == "" || (method != http.MethodGet && method != http.MethodHead) ||
			strings.HasPrefix(c.Request.URL.Path, "/api/") {
			httputil.RespondWithMessage(c, http.StatusNotFound, "not found")
			return
		}

		name := path.Clean("/" + c.Request.URL.Path)
		if f, err := fs.Open(name); err == nil {
			info, statErr := f.Stat()
			f.Close()
			if statErr == nil && !info.IsDir() {
				c.Header("Cache-Control", middleware.StaticCacheControl)
				c.FileFromFS(name, fs)
				return
			}
		}
		c.Header("Cache-Control", "no-cache")
		c.File(filepath.Join(dir, "index.html"))
	}
}
