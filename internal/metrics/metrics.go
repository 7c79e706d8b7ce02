// Package metrics defines Prometheus metrics for the matjar search service.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "matjar_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matjar_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matjar_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "matjar_search_duration_seconds",
			Help:    "Hybrid search duration in seconds by outcome",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	EnrichRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matjar_enrich_runs_total",
			Help: "Enrichment runs by outcome",
		},
		[]string{"outcome"},
	)

	EnrichQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "matjar_enrich_queue_depth",
			Help: "Current enrichment queue depth",
		},
	)

	EnrichDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "matjar_enrich_dropped_total",
			Help: "Enrichment jobs dropped because the queue was full",
		},
	)

	PendingEmbeddings = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "matjar_pending_embeddings",
			Help: "Active products without an embedding",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		SearchDuration, EnrichRuns, EnrichQueueDepth, EnrichDropped,
		PendingEmbeddings,
	)
}
