// Package metrics defines and registers all custom Prometheus metrics for the
// GreenNest storefront API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "greennest"

// ── Identity metrics ──────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successfully created accounts.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of user accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersPlacedTotal counts orders committed to the store.
var OrdersPlacedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of orders persisted.",
	},
)

// NotificationsTotal counts confirmation notification outcomes as seen by the
// order service. A "failure" here never fails the order itself.
// Label:
//   - result: "success" (accepted for delivery) or "failure"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_notifications_total",
		Help:      "Total number of order confirmation notifications, labelled by result.",
	},
	[]string{"result"},
)

// NotifyQueueDepth tracks the number of notifications waiting in the
// dispatcher buffer.
var NotifyQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notify_queue_depth",
		Help:      "Current number of notifications pending in the dispatcher queue.",
	},
)

// NotifyDeliveryDuration measures how long a single SMTP delivery takes.
// Label:
//   - result: "success" or "failure"
var NotifyDeliveryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notify_delivery_duration_seconds",
		Help:      "Duration of notification delivery attempts.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
