package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"studiodesk/pkg/config"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthErrorsCounter   prometheus.CounterVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Quotation lifecycle metrics
	QuotationOperationsCounter prometheus.CounterVec

	// Room line-item ledger metrics
	LineItemOperationsCounter prometheus.CounterVec

	// Aggregation recompute duration (ledger mutation incl. re-sum)
	AggregationDuration prometheus.Histogram

	// Dashboard read metrics
	DashboardRequestsCounter prometheus.Counter

	initialized bool
)

// InitMetrics initializes Prometheus metrics with configuration.
// Safe to call more than once; registration happens only on the first call.
func InitMetrics(cfg *config.Config) {
	if initialized {
		return
	}
	initialized = true

	prefix := cfg.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
	)

	AuthErrorsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"reason"},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	QuotationOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_quotation_operations_total",
			Help: "Total number of quotation operations",
		},
		[]string{"operation"},
	)

	LineItemOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_line_item_operations_total",
			Help: "Total number of room line-item operations",
		},
		[]string{"operation"},
	)

	AggregationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    prefix + "_aggregation_duration_seconds",
			Help:    "Duration of ledger mutations including total recomputation",
			Buckets: prometheus.DefBuckets,
		},
	)

	DashboardRequestsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_dashboard_requests_total",
			Help: "Total number of dashboard stat reads",
		},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordAuthError increments the counter for a failed authentication
func RecordAuthError(reason string) {
	AuthErrorsCounter.WithLabelValues(reason).Inc()
}

// RecordQuotationOperation increments the counter for quotation operations
func RecordQuotationOperation(operation string) {
	QuotationOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordLineItemOperation increments the counter for line-item operations
func RecordLineItemOperation(operation string) {
	LineItemOperationsCounter.WithLabelValues(operation).Inc()
}

// TrackAggregation records the duration of one ledger mutation
func TrackAggregation() func(startTime time.Time) {
	return func(startTime time.Time) {
		AggregationDuration.Observe(time.Since(startTime).Seconds())
	}
}
