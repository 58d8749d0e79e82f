// Package metrics defines and registers all custom Prometheus metrics for
// the GeoBooks API. It is the single source of truth for metric names,
// labels, and help strings. Metrics self-register with the default registry
// via promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "geobooks"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts credential-verification attempts.
// Label:
//   - result: "ok" or "failed"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SignupsTotal counts account creations that succeeded.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created.",
	},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// BooksCreatedTotal counts catalog entries added.
// Label:
//   - category: the book category, or "uncategorized"
var BooksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "books_created_total",
		Help:      "Total number of books added to the catalog, by category.",
	},
	[]string{"category"},
)

// ── Circulation metrics ───────────────────────────────────────────────────────

// BorrowsTotal counts borrow transactions.
// Label:
//   - result: "ok", "unavailable", "roll_not_found", "book_not_found", "error"
var BorrowsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "borrows_total",
		Help:      "Total number of borrow transactions, by result.",
	},
	[]string{"result"},
)

// ReturnsTotal counts completed return transactions.
var ReturnsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "returns_total",
		Help:      "Total number of borrow records marked returned.",
	},
)

// BorrowsDedupTotal counts idempotency-key decisions on borrow submissions.
// Label:
//   - result: "hit" (replay, skipped) or "miss" (new submission)
var BorrowsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "borrows_dedup_total",
		Help:      "Total number of borrow idempotency checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// BorrowProcessingDuration measures how long a circulation transaction takes
// end-to-end.
// Label:
//   - operation: "borrow" or "return"
var BorrowProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "borrow_processing_duration_seconds",
		Help:      "Duration of borrow/return processing from validation to persistence.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"operation"},
)
