package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dgc_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dgc_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	GenerationJobs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dgc_generation_jobs_total",
		Help: "Generation jobs started, by content type.",
	}, []string{"content_type"})

	WSConnections = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dgc_websocket_connections",
		Help: "Live websocket connections by type.",
	}, []string{"type"})

	Searches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dgc_searches_total",
		Help: "Executed blockchain searches.",
	})
)

// Handler serves the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// HTTPMetrics records request counts and latency per route. Unmatched
// requests collapse into one label so route cardinality stays bounded.
func HTTPMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		httpRequests.WithLabelValues(
			c.Request.Method, route, strconv.Itoa(c.Writer.Status()),
		).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
