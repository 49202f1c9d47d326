package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	opsRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ops_requests_total",
			Help: "Total requests per ops endpoint and status code",
		},
		[]string{"endpoint", "status"},
	)
	opsDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ops_request_duration_seconds",
			Help:    "Latency of ops endpoints",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
	RLRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_requests_total",
			Help: "Total requests seen by the rate limiter",
		},
		[]string{"endpoint"},
	)
	RLBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Total requests blocked by the rate limiter",
		},
		[]string{"endpoint"},
	)
)

func init() {
	prometheus.MustRegister(opsRequests, opsDuration, RLRequests, RLBlocked)
}

// Metrics records request counts and latency per route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		opsRequests.WithLabelValues(endpoint, strconv.Itoa(c.Writer.Status())).Inc()
		opsDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}
}
