package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medisearch_searches_total",
			Help: "Total number of searches processed",
		},
		[]string{"outcome"},
	)

	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "medisearch_search_duration_seconds",
			Help: "Duration of search pipeline runs in seconds",
		},
		[]string{"provider"},
	)

	SearchResultCount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "medisearch_search_results",
			Help:    "Number of stores returned per search",
			Buckets: prometheus.LinearBuckets(0, 5, 10),
		},
	)

	OrdersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medisearch_orders_total",
			Help: "Total number of order attempts",
		},
		[]string{"outcome"},
	)

	OrdersBlockedByGate = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "medisearch_orders_blocked_prescription_total",
			Help: "Orders blocked by the prescription gate",
		},
	)

	StaleSearchesDiscarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "medisearch_stale_searches_discarded_total",
			Help: "Search completions discarded by the session token guard",
		},
	)
)
