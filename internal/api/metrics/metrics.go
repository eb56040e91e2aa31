// Package metrics defines and registers all custom Prometheus metrics for the
// review platform API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry via promauto at
// package init; the /metrics endpoint exposes them alongside the standard
// request metrics collected by echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "reviews"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignupsTotal counts accepted signup requests, including re-issues for an
// existing username/email pair.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup requests that dispatched a confirmation code.",
	},
)

// TokensIssuedTotal counts successfully issued access tokens.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of JWT access tokens issued.",
	},
)

// AuthDenialsTotal counts requests rejected by the permission layer.
// Label:
//   - status: "401" (unauthenticated) or "403" (forbidden)
var AuthDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denials_total",
		Help:      "Total number of requests denied by authorization checks, by status.",
	},
	[]string{"status"},
)

// ── Content metrics ───────────────────────────────────────────────────────────

// ReviewsCreatedTotal counts newly created reviews.
var ReviewsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_created_total",
		Help:      "Total number of reviews created.",
	},
)
