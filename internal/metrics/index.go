package metrics

import "github.com/prometheus/client_golang/prometheus"

// Vector index and search Prometheus metrics.
var (
	IndexWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scoutdex",
			Name:      "index_writes_total",
			Help:      "Total vector index write operations",
		},
		[]string{"entity_type"},
	)

	IndexVerifyAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scoutdex",
			Name:      "index_verify_attempts_total",
			Help:      "Total post-write index visibility checks",
		},
		[]string{"entity_type"},
	)

	IndexDegradedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scoutdex",
			Name:      "index_degraded_total",
			Help:      "Index writes that failed or never became visible",
		},
		[]string{"entity_type"},
	)

	SearchFallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scoutdex",
			Name:      "search_fallback_total",
			Help:      "Searches served by the lexical fallback",
		},
		[]string{"entity_type"},
	)
)

var indexMetricsRegistered bool

// RegisterIndexMetrics registers Prometheus index metrics. Must be called once from main.
func RegisterIndexMetrics() {
	if indexMetricsRegistered {
		return
	}
	prometheus.MustRegister(IndexWritesTotal)
	prometheus.MustRegister(IndexVerifyAttemptsTotal)
	prometheus.MustRegister(IndexDegradedTotal)
	prometheus.MustRegister(SearchFallbackTotal)
	indexMetricsRegistered = true
}
