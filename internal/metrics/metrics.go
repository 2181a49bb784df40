package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const prefix = "crm"

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Authentication metrics
	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
	)

	AuthSuccessCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_success_total",
			Help: "Total number of successful authentications",
		},
	)

	AuthErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
	)

	// Entity operation metrics
	EntityOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_entity_operations_total",
			Help: "Total number of entity write operations",
		},
		[]string{"entity", "operation"},
	)

	// Access denial metrics
	AccessDeniedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_access_denied_total",
			Help: "Total number of denied authorization checks",
		},
		[]string{"entity"},
	)

	// Report export metrics
	ExportJobsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_export_jobs_total",
			Help: "Total number of report export jobs by outcome",
		},
		[]string{"status"},
	)
)

// RecordEntityOperation increments the counter for entity write operations
func RecordEntityOperation(entity, operation string) {
	EntityOperationsCounter.WithLabelValues(entity, operation).Inc()
}

// RecordAccessDenied increments the denial counter for an entity
func RecordAccessDenied(entity string) {
	AccessDeniedCounter.WithLabelValues(entity).Inc()
}

// RecordExportJob increments the export job counter for a terminal status
func RecordExportJob(status string) {
	ExportJobsCounter.WithLabelValues(status).Inc()
}
