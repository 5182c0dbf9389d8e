// Package metrics defines and registers all custom Prometheus metrics for the
// POS back office. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pos"

// SalesRecordedTotal counts sales that committed durably.
// Label:
//   - outcome: "recorded" for a fresh sale, "replayed" for an idempotent replay
var SalesRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sales_recorded_total",
		Help:      "Total number of sale recording requests that succeeded.",
	},
	[]string{"outcome"},
)

// SalesErrorsTotal counts sale recording requests that failed.
// Label:
//   - reason: "validation" or "persistence"
var SalesErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sales_errors_total",
		Help:      "Total number of sale recording requests that failed.",
	},
	[]string{"reason"},
)

// SaleItemsPerSale observes how many line items each recorded sale carried.
var SaleItemsPerSale = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "sale_items_per_sale",
		Help:      "Number of line items per recorded sale.",
		Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
	},
)

// SummaryRequestsTotal counts revenue summary computations, by requester role.
var SummaryRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "summary_requests_total",
		Help:      "Total number of revenue summary requests served.",
	},
	[]string{"role"},
)
