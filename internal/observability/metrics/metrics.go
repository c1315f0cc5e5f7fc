package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flatdash_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "flatdash_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	fallbackTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flatdash_fallback_total",
		Help: "Count of reads served from demo fixtures by operation and reason",
	}, []string{"operation", "reason"})

	queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "flatdash_query_duration_seconds",
		Help:    "Duration of database queries",
		Buckets: prometheus.DefBuckets,
	}, []string{"query", "result"})

	paymentUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flatdash_payment_updates_total",
		Help: "Count of payment status updates by mode and result",
	}, []string{"mode", "result"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveFallback increments the fallback counter for the given operation and reason
func ObserveFallback(operation, reason string) {
	fallbackTotal.WithLabelValues(operation, reason).Inc()
}

// ObserveQuery records the duration of a database query with a result label
func ObserveQuery(query, result string, duration time.Duration) {
	queryDuration.WithLabelValues(query, result).Observe(duration.Seconds())
}

// ObservePaymentUpdate counts a payment mutation by mode (live or demo) and result
func ObservePaymentUpdate(mode, result string) {
	paymentUpdates.WithLabelValues(mode, result).Inc()
}
