// Package metrics defines and registers all custom Prometheus metrics for the
// agency API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register with the default Prometheus registry at package init via
// promauto; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "agency"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - principal: "client" or "admin"
//   - result: "success", "invalid_credentials", "disabled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by principal type and result.",
	},
	[]string{"principal", "result"},
)

// TokenRefreshTotal counts refresh-token exchanges.
// Labels:
//   - principal: "client" or "admin"
//   - result: "success", "invalid", "reused"
var TokenRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refresh_total",
		Help:      "Total number of refresh-token exchanges, by principal type and result.",
	},
	[]string{"principal", "result"},
)

// ── Background work metrics ───────────────────────────────────────────────────

// EmailsSentTotal counts background email deliveries.
// Label:
//   - result: "success" or "error"
var EmailsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Total number of background email deliveries, by result.",
	},
	[]string{"result"},
)

// MediaCleanupTotal counts best-effort media-store deletions.
// Label:
//   - result: "success" or "error"
var MediaCleanupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_cleanup_total",
		Help:      "Total number of media-store cleanup deletions, by result.",
	},
	[]string{"result"},
)

// NotifyQueueDepth tracks the current number of jobs waiting in each notify
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotifyQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notify_queue_depth",
		Help:      "Current number of jobs pending in each notify worker channel.",
	},
	[]string{"worker_id"},
)

// ── Intake metrics ────────────────────────────────────────────────────────────

// ContactSubmissionsTotal counts contact-form submissions.
// Label:
//   - result: "accepted" or "duplicate"
var ContactSubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contact_submissions_total",
		Help:      "Total number of contact-form submissions, by result.",
	},
	[]string{"result"},
)

// RequestsCreatedTotal counts newly created service requests.
var RequestsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "service_requests_created_total",
		Help:      "Total number of service requests created.",
	},
)
