// Package metrics defines the custom Prometheus metrics of the portal API.
// It is the single source of truth for metric names, labels, and help strings.
//
// All metrics register with the default Prometheus registry on import; the
// HTTP request metrics come from echoprometheus and are wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tcmosque"

// ── Authentication ────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid" or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts accounts created through the registration gate.
// Label:
//   - role: the role resolved from the registration code ("user" or "admin")
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_registrations_total",
		Help:      "Total number of registered accounts, by assigned role.",
	},
	[]string{"role"},
)

// ── Session gate ──────────────────────────────────────────────────────────────

// GateRejectionsTotal counts requests short-circuited by the session gate.
// Label:
//   - reason: "missing_credential", "invalid_token", "expired_token",
//     "unknown_identity", "insufficient_role" or "store_error"
var GateRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_gate_rejections_total",
		Help:      "Total number of requests rejected by the session gate, by reason.",
	},
	[]string{"reason"},
)

// ThrottleErrorsTotal counts login throttle backend failures (the check fails open).
var ThrottleErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_throttle_errors_total",
		Help:      "Total number of login throttle backend errors.",
	},
)
