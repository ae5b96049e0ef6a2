package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/nekkositon/booking-api/internal/handler"
	adminHandler "github.com/nekkositon/booking-api/internal/handler/admin"
	authHandler "github.com/nekkositon/booking-api/internal/handler/auth"
	bookingHandler "github.com/nekkositon/booking-api/internal/handler/booking"
	catalogHandler "github.com/nekkositon/booking-api/internal/handler/catalog"
	intakeHandler "github.com/nekkositon/booking-api/internal/handler/intake"
	userHandler "github.com/nekkositon/booking-api/internal/handler/user"
	"github.com/nekkositon/booking-api/internal/middleware"
)

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	authH    *authHandler.Handler
	catalogH *catalogHandler.Handler
	intakeH  *intakeHandler.Handler
	bookingH *bookingHandler.Handler
	adminH   *adminHandler.Handler
	userH    *userHandler.Handler
	metrics  *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

type Config struct {
	RateLimit  rate.Limit
	RateBurst  int
	CORSConfig middleware.CORSConfig
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH *authHandler.Handler,
	catalogH *catalogHandler.Handler,
	intakeH *intakeHandler.Handler,
	bookingH *bookingHandler.Handler,
	adminH *adminHandler.Handler,
	userH *userHandler.Handler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{
		engine:   engine,
		auth:     auth,
		authH:    authH,
		catalogH: catalogH,
		intakeH:  intakeH,
		bookingH: bookingH,
		adminH:   adminH,
		userH:    userH,
		metrics:  initRouterMetrics("booking_api"),
	}

	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  config.RateLimit,
		Burst: config.RateBurst,
	})

	engine.Use(
		gin.Recovery(),
		middleware.Logger(),
		middleware.CORS(config.CORSConfig),
		limiter.RateLimit(),
		r.metricsMiddleware(),
	)

	return r
}

func (r *Router) Setup() {
	r.engine.GET("/healthz", handler.Health)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")

	// Public surface
	r.authH.RegisterRoutes(api)
	r.catalogH.RegisterRoutes(api)
	r.intakeH.RegisterRoutes(api)

	// Authenticated client surface
	authed := r.engine.Group("/api/v1", r.auth.Authenticate())
	r.bookingH.RegisterRoutes(authed)
	r.userH.RegisterRoutes(authed)

	// Admin surface
	admin := r.engine.Group("/api/v1", r.auth.Authenticate(), r.auth.RequireAdmin())
	r.adminH.RegisterRoutes(admin)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(namespace string) *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"method", "path", "status"}),
		requestTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}
