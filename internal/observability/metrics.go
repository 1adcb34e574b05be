// Package observability holds Prometheus metrics and OpenTelemetry tracing setup.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orbit_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orbit_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// UploadsProcessed counts processed media uploads by kind.
	UploadsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orbit_uploads_processed_total",
		Help: "Total number of processed media uploads by kind",
	}, []string{"kind"})
)

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
