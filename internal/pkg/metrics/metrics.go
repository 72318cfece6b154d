package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mapdemo",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mapdemo",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mapdemo",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response size in bytes",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	}, []string{"method", "path"})

	// Map screen metrics
	ModeChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mapdemo",
		Subsystem: "map",
		Name:      "mode_changes_total",
		Help:      "Interaction mode changes by selected mode",
	}, []string{"mode"})

	UnknownModeNotices = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mapdemo",
		Subsystem: "map",
		Name:      "unknown_mode_notices_total",
		Help:      "Mode selections rejected with a user notice",
	})

	LayerToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mapdemo",
		Subsystem: "map",
		Name:      "layer_toggles_total",
		Help:      "Layer visibility toggles by layer",
	}, []string{"layer"})

	ViewResets = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mapdemo",
		Subsystem: "map",
		Name:      "view_resets_total",
		Help:      "Reset view actions",
	})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "mapdemo",
		Subsystem: "session",
		Name:      "active",
		Help:      "Current number of live map sessions",
	})

	SessionsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mapdemo",
		Subsystem: "session",
		Name:      "expired_total",
		Help:      "Sessions removed by the idle sweep",
	})

	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "mapdemo",
		Subsystem: "ws",
		Name:      "active_connections",
		Help:      "Current number of active WebSocket connections",
	})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mapdemo",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits",
	}, []string{"operation"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mapdemo",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses",
	}, []string{"operation"})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		// route pattern keeps session ids out of the label set
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)
		httpResponseSize.WithLabelValues(method, path).Observe(float64(len(c.Response().Body())))

		return err
	}
}

// Handler returns a Fiber handler serving Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}
