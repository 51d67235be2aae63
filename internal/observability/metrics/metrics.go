// Package metrics exposes prometheus instrumentation for the HTTP surface.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smallbiznis/portal/internal/config"
	"go.uber.org/fx"
)

// Module provides the HTTP metrics instruments.
var Module = fx.Module("observability.metrics", fx.Provide(NewHTTPMetrics))

// HTTPMetrics holds the request-level instruments.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the HTTP instruments on the default registerer.
func NewHTTPMetrics(cfg config.Config) (*HTTPMetrics, error) {
	return newHTTPMetrics(prometheus.DefaultRegisterer, cfg)
}

func newHTTPMetrics(registerer prometheus.Registerer, cfg config.Config) (*HTTPMetrics, error) {
	serviceName := strings.TrimSpace(cfg.AppName)
	if serviceName == "" {
		serviceName = "portal"
	}
	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     cfg.Environment,
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "portal_http_requests_total",
		Help:        "HTTP requests by route, method, and status.",
		ConstLabels: constLabels,
	}, []string{"route", "method", "status"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:        "portal_http_request_duration_seconds",
		Help:        "HTTP request latency by route.",
		Buckets:     []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		ConstLabels: constLabels,
	}, []string{"route", "method"})

	for _, collector := range []prometheus.Collector{requests, duration} {
		if err := registerer.Register(collector); err != nil {
			if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
				_ = already
				continue
			}
			return nil, err
		}
	}

	return &HTTPMetrics{requests: requests, duration: duration}, nil
}

// GinMiddleware records request counts and latencies per route template.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		m.requests.WithLabelValues(route, method, status).Inc()
		m.duration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}
