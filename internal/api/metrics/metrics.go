// Package metrics defines and registers all custom Prometheus metrics for the
// hotel admin API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto; /metrics exposes them next to the HTTP
// metrics collected by echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hotel_admin"

// ── Form metrics ──────────────────────────────────────────────────────────────

// FormSubmissionsTotal counts form submissions by outcome.
// Labels:
//   - form_id: the registered form identifier, or "unknown"
//   - result: "success" or the failure code (e.g. "VALIDATION_FAILED")
var FormSubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "form_submissions_total",
		Help:      "Total number of form submissions, by form and result.",
	},
	[]string{"form_id", "result"},
)

// ── Content metrics ───────────────────────────────────────────────────────────

// ContentOperationsTotal counts content API calls.
// Labels:
//   - content_type: the registered content type, or "unknown"
//   - op: "list", "create", "update" or "delete"
//   - result: "success" or the failure code
var ContentOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "content_operations_total",
		Help:      "Total number of content API operations, by type, operation and result.",
	},
	[]string{"content_type", "op", "result"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignInsTotal counts sign-in attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)

// ── Revalidation metrics ──────────────────────────────────────────────────────

// RevalidationsTotal counts revalidate signals leaving the dispatcher.
// Labels:
//   - content_type: the content type whose listings became stale
//   - result: "published", "dropped" or "error"
var RevalidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "revalidations_total",
		Help:      "Total number of listing revalidate signals, by content type and result.",
	},
	[]string{"content_type", "result"},
)

// RevalidateQueueDepth tracks the number of signals waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var RevalidateQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "revalidate_queue_depth",
		Help:      "Current number of revalidate signals pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// Result returns the label value for an outcome: "success" or the failure code.
func Result(ok bool, code string) string {
	if ok {
		return "success"
	}
	if code == "" {
		return "fail"
	}
	return code
}
