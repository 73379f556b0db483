// Package metrics defines and registers all custom Prometheus metrics for
// the CMS backend. It is the single source of truth for metric names, labels,
// and help strings.
//
// The promauto vars register with the default Prometheus registry at import
// time; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cms"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "bad_credentials", "not_found", "throttled", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// AdminsProvisionedTotal counts admin accounts created through the dashboard
// (superadmin bootstrap registration excluded).
var AdminsProvisionedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admins_provisioned_total",
		Help:      "Total number of admin accounts provisioned with a temporary password.",
	},
)

// HandoversTotal counts superadmin handover attempts by outcome.
// Label:
//   - result: "success" or "failure"
var HandoversTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "superadmin_handovers_total",
		Help:      "Total number of superadmin handover attempts, labelled by result.",
	},
	[]string{"result"},
)

// ── Content metrics ───────────────────────────────────────────────────────────

// ContentWritesTotal counts successful content mutations.
// Labels:
//   - kind: "event", "publication", "gallery_item", "sponsor"
//   - op:   "create", "update", "delete"
var ContentWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "content_writes_total",
		Help:      "Total number of successful content mutations, by kind and operation.",
	},
	[]string{"kind", "op"},
)
