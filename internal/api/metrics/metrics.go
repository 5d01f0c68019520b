// Package metrics defines and registers all custom Prometheus metrics for
// the evaluation API. It is the single source of truth for metric names,
// labels, and help strings. Metrics are registered with the default registry
// at package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "evaluation"

// ── Workflow metrics ──────────────────────────────────────────────────────────

// WorkflowTransitionsTotal counts completed workflow operations.
// Labels:
//   - operation: "self_evaluate", "evaluate", "approve", "reject",
//     "director_evaluate", "finalize"
var WorkflowTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "workflow_transitions_total",
		Help:      "Total number of workflow operations completed successfully.",
	},
	[]string{"operation"},
)

// WorkflowErrorsTotal counts workflow operations that failed.
// Labels:
//   - operation: as above
//   - reason: "not_found", "invalid_state", "forbidden", "conflict", "internal"
var WorkflowErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "workflow_errors_total",
		Help:      "Total number of workflow operations that failed, by reason.",
	},
	[]string{"operation", "reason"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsDispatchedTotal counts notifications persisted for delivery.
// Label:
//   - type: the notification type tag (e.g. "self_submitted")
var NotificationsDispatchedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dispatched_total",
		Help:      "Total number of notifications dispatched, by type.",
	},
	[]string{"type"},
)

// NotificationsDroppedTotal counts notifications that could not be delivered.
// Label:
//   - reason: "queue_full" or "store_error"
var NotificationsDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dropped_total",
		Help:      "Total number of notifications dropped, by reason.",
	},
	[]string{"reason"},
)

// NotificationQueueDepth tracks pending notifications per dispatcher worker.
// Label:
//   - worker_id: numeric worker index ("0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
