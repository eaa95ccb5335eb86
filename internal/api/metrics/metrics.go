// Package metrics defines all custom Prometheus metrics for the library
// portal. It is the single source of truth for metric names, labels, and
// help strings; metrics register themselves with the default registry via
// promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "library_portal"

// ── Upstream API metrics ─────────────────────────────────────────────────────

// UpstreamRequestsTotal counts calls made to the library backend.
// Labels:
//   - method: HTTP method
//   - route: collapsed request path (e.g. "/api/books")
//   - status: numeric HTTP status, or "network_error" when no response arrived
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests issued to the library backend.",
	},
	[]string{"method", "route", "status"},
)

// UpstreamRequestDuration measures backend round-trip latency.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Latency of requests to the library backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// ── Booking metrics ──────────────────────────────────────────────────────────

// BookingRejectionsTotal counts room-booking requests rejected by the local
// validator before any backend call.
// Label:
//   - rule: the booking rule that failed (e.g. "weekday_only", "min_duration")
var BookingRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_rejections_total",
		Help:      "Room-booking requests rejected client-side, by rule.",
	},
	[]string{"rule"},
)

// BookingsSubmittedTotal counts bookings that passed validation and were
// forwarded to the backend.
var BookingsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_submitted_total",
		Help:      "Room-booking requests forwarded to the library backend.",
	},
)

// ── Payment metrics ──────────────────────────────────────────────────────────

// PaymentsInitiatedTotal counts Snap tokens requested from the backend.
// Label:
//   - kind: "membership" or "room"
var PaymentsInitiatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_initiated_total",
		Help:      "Payment-gateway checkouts initiated, by kind.",
	},
	[]string{"kind"},
)

// PaymentRequiredTotal counts operations the backend answered with 402,
// routing the user into the pay-to-continue flow.
// Label:
//   - operation: the registered route template (e.g. "/rooms/bookings")
var PaymentRequiredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_required_total",
		Help:      "Operations deferred pending a commitment fee, by operation.",
	},
	[]string{"operation"},
)

// ── Session metrics ──────────────────────────────────────────────────────────

// ProfileCacheTotal counts session-profile cache lookups.
// Label:
//   - result: "hit" or "miss"
var ProfileCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_cache_total",
		Help:      "Session-profile cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
