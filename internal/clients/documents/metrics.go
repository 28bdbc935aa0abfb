package documents

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch outcomes
const (
	outcomeMemory   = "memory"
	outcomeSource   = "source"
	outcomeCache    = "cache_fallback"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

var (
	fetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "documents_fetches_total",
			Help: "Total number of document fetches by outcome.",
		},
		[]string{"outcome"},
	)

	collectionLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "documents_collection_loads_total",
			Help: "Total number of collection loads by status.",
		},
		[]string{"status"},
	)

	indexSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "documents_index_size",
		Help: "Number of feature ids in the id to path index.",
	})
)
