package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and cache Prometheus metrics.
var (
	CacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "iyisiniye",
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by query kind and outcome",
		},
		[]string{"kind", "outcome"}, // outcome: "hit" / "miss"
	)

	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "iyisiniye",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"sort", "cache"},
	)

	InvalidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "iyisiniye",
			Name:      "cache_invalidations_total",
			Help:      "Cache invalidation requests by trigger",
		},
		[]string{"trigger"},
	)

	StorageQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "iyisiniye",
			Name:      "storage_query_duration_seconds",
			Help:      "Storage query duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"query"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(CacheLookupsTotal)
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(InvalidationsTotal)
	prometheus.MustRegister(StorageQueryDuration)
	searchMetricsRegistered = true
}
