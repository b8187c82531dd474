// Package metrics provides Prometheus metrics for the recruiting API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ApplicationsTotal tracks application writes by operation and resulting status
	ApplicationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "srm",
			Subsystem: "applications",
			Name:      "writes_total",
			Help:      "Total number of application create/update/delete operations by status",
		},
		[]string{"operation", "status"},
	)

	// PaymentsTotal tracks payment ledger writes
	PaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "srm",
			Subsystem: "payments",
			Name:      "writes_total",
			Help:      "Total number of payment inserts and deletes",
		},
		[]string{"operation"},
	)

	// CacheRecomputeDuration tracks how long payment cache recomputation takes
	CacheRecomputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "srm",
			Subsystem: "payments",
			Name:      "cache_recompute_duration_seconds",
			Help:      "Duration of payment cache recomputation in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	// ReportQueriesTotal tracks reporting reads by report kind
	ReportQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "srm",
			Subsystem: "reports",
			Name:      "queries_total",
			Help:      "Total number of reporting queries by kind",
		},
		[]string{"kind"},
	)
)
