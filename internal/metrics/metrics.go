package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Mutations counts document mutations by operation and result
	Mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "navboard_mutations_total",
		Help: "Total document mutations by operation and result",
	}, []string{"operation", "result"})

	// MutationDuration tracks the full read-modify-write latency
	MutationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "navboard_mutation_duration_seconds",
		Help:    "Document mutation duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
	}, []string{"operation"})

	// StoreConflicts counts optimistic transactions that lost a race
	StoreConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "navboard_store_conflicts_total",
		Help: "Optimistic document writes aborted because the key changed",
	})

	// RateLimited counts mutation requests rejected by the per-IP limiter
	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "navboard_rate_limited_total",
		Help: "Mutation requests rejected with 429",
	})

	// DocumentSites tracks the number of sites after the last successful write
	DocumentSites = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "navboard_document_sites",
		Help: "Number of sites in the navigation document",
	})

	// DocumentCategories tracks the number of categories after the last successful write
	DocumentCategories = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "navboard_document_categories",
		Help: "Number of categories in the navigation document",
	})
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
