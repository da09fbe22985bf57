package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	DiagnosticsCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "diagnostics_completed_total",
			Help: "Number of diagnostic phases driven to completion",
		},
	)

	PlansGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "practice_plans_generated_total",
			Help: "Number of practice plans successfully merged",
		},
	)

	GeneratorFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plan_generator_failures_total",
			Help: "Plan generator failures by kind (no_llm, bad_format, no_questions)",
		},
		[]string{"kind"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DiagnosticsCompleted)
	prometheus.MustRegister(PlansGenerated)
	prometheus.MustRegister(GeneratorFailures)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
