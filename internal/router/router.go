package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/hostelmate/marketplace-api/internal/middleware"
)

// Handler is anything that can attach its routes to a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimit      rate.Limit
	RateBurst      int
	CORS           middleware.CORSConfig
	MetricsEnabled bool
	MetricsPath    string
}

type Router struct {
	engine  *gin.Engine
	auth    *middleware.AuthMiddleware
	metrics *httpMetrics
}

type httpMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

func newHTTPMetrics(reg prometheus.Registerer) *httpMetrics {
	m := &httpMetrics{
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hostelmate",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hostelmate",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
	}
	reg.MustRegister(m.requestDuration, m.requestTotal)
	return m
}

func New(
	auth *middleware.AuthMiddleware,
	authH Handler,
	healthH Handler,
	requestH Handler,
	notificationH Handler,
	profileH Handler,
	directoryH Handler,
	cfg Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{engine: engine, auth: auth}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger())
	engine.Use(middleware.Recovery())
	engine.Use(middleware.CORS(cfg.CORS))

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
		engine.Use(limiter.RateLimit())
	}

	if cfg.MetricsEnabled {
		r.metrics = newHTTPMetrics(prometheus.DefaultRegisterer)
		engine.Use(r.measure())
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		engine.GET(path, gin.WrapH(promhttp.Handler()))
	}

	public := engine.Group("/api/v1")
	{
		authH.RegisterRoutes(public)
		healthH.RegisterRoutes(public)
	}

	protected := engine.Group("/api/v1")
	protected.Use(auth.Authenticate())
	{
		requestH.RegisterRoutes(protected)
		notificationH.RegisterRoutes(protected)
		profileH.RegisterRoutes(protected)
		directoryH.RegisterRoutes(protected)
	}

	return r
}

func (r *Router) measure() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path,
			strconv.Itoa(c.Writer.Status())).Inc()
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
