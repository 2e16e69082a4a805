package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics, registered on the default registry served at /metrics.
var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jbank_http_requests_total",
			Help: "HTTP requests by method and status code.",
		},
		[]string{"method", "status"},
	)

	transactionsAppliedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jbank_transactions_applied_total",
			Help: "Ledger transactions applied, by type.",
		},
		[]string{"type"},
	)

	groupExpensesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jbank_group_expenses_created_total",
			Help: "Group expenses successfully created.",
		},
	)
)
