package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"operation", "table"},
	)

	MutationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resource_mutation_count",
			Help: "Total number of resource mutations handled",
		},
		[]string{"resource", "action"}, // resource: project, task
	)

	ProjectStatusCount = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "project_status_count",
			Help: "Number of projects per status",
		},
		[]string{"status"},
	)
)

// RecordHTTPRequestDuration records HTTP request latency.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordDBQueryDuration records database query latency.
func RecordDBQueryDuration(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// IncrementMutation increases the mutation counter.
func IncrementMutation(resource, action string) {
	MutationCount.WithLabelValues(resource, action).Inc()
}

// SetProjectStatusCount updates the per-status project gauge.
func SetProjectStatusCount(status string, count int) {
	ProjectStatusCount.WithLabelValues(status).Set(float64(count))
}
