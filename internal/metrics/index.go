package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Index and cache Prometheus metrics.
var (
	IndexRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "advsearch",
			Name:      "index_requests_total",
			Help:      "Total number of search index requests",
		},
		[]string{"operation", "status"},
	)

	IndexRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "advsearch",
			Name:      "index_request_duration_seconds",
			Help:      "Search index request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	IndexHitsReturned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "advsearch",
			Name:      "index_hits_returned",
			Help:      "Number of hits returned per search request",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100},
		},
		[]string{"operation"},
	)

	CommonValuesCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "advsearch",
			Name:      "common_values_cache_total",
			Help:      "Most-common-values cache hits, misses and errors",
		},
		[]string{"result"}, // "hit" / "miss" / "error"
	)
)

var indexMetricsRegistered bool

// RegisterIndexMetrics registers Prometheus index metrics. Must be called once from main.
func RegisterIndexMetrics() {
	if indexMetricsRegistered {
		return
	}
	prometheus.MustRegister(IndexRequestsTotal)
	prometheus.MustRegister(IndexRequestDuration)
	prometheus.MustRegister(IndexHitsReturned)
	prometheus.MustRegister(CommonValuesCacheTotal)
	indexMetricsRegistered = true
}

// ObserveIndexRequest records the outcome and latency of one index round trip.
func ObserveIndexRequest(operation string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	IndexRequestsTotal.WithLabelValues(operation, status).Inc()
	IndexRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// ObserveCacheResult counts a most-common-values cache lookup.
func ObserveCacheResult(result string) {
	CommonValuesCacheTotal.WithLabelValues(result).Inc()
}
