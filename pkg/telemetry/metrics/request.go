package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetrics tracks HTTP requests served by the preview server.
//
// Metrics:
//   - cookbook_http_requests_total: request count by status code and method
//   - cookbook_http_request_duration_seconds: request duration histogram
//
// Paths are not used as labels: a book with hundreds of recipes would give
// every page its own label set.
type RequestMetrics struct {
	// Total request count
	requestsTotal *prometheus.CounterVec

	// Request duration histogram
	requestDuration *prometheus.HistogramVec
}

// NewRequestMetrics creates and registers request metrics with the provided registry.
func NewRequestMetrics(cfg Config, registry *prometheus.Registry) *RequestMetrics {
	rm := &RequestMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests served",
			},
			[]string{"code", "method"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
			},
			[]string{"method"},
		),
	}

	registry.MustRegister(
		rm.requestsTotal,
		rm.requestDuration,
	)

	return rm
}

// RecordRequest records metrics for a served HTTP request.
func (rm *RequestMetrics) RecordRequest(method string, code int, duration time.Duration) {
	rm.requestsTotal.WithLabelValues(strconv.Itoa(code), method).Inc()
	rm.requestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// Middleware wraps an HTTP handler and records request metrics for every
// response it writes. When the collector is disabled the handler is returned
// unchanged.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	if !c.config.Enabled {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		c.requestMetrics.RecordRequest(r.Method, rec.status, time.Since(start))
	})
}

// statusRecorder captures the status code written by the wrapped handler.
// Handlers that never call WriteHeader implicitly return 200.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}
