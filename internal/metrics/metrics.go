// Package metrics defines and registers all custom Prometheus metrics for the
// booking API. It is the single source of truth for metric names, labels, and
// help strings. Metrics are registered with the default registry at import
// time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "booking"

// ReservationsCreatedTotal counts committed reservations.
// Label:
//   - category: the normalized room category booked
var ReservationsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reservations_created_total",
		Help:      "Total number of reservations committed, by room category.",
	},
	[]string{"category"},
)

// ReservationRejectionsTotal counts rejected reservation attempts.
// Label:
//   - reason: taxonomy label, e.g. "past_check_in", "already_booked", "no_room_available"
var ReservationRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reservation_rejections_total",
		Help:      "Total number of reservation requests rejected, by reason.",
	},
	[]string{"reason"},
)

// BookingsCancelledTotal counts hard-deleted bookings.
var BookingsCancelledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_cancelled_total",
		Help:      "Total number of bookings cancelled by their owners.",
	},
)

// AvailabilityCacheTotal counts availability cache lookups.
// Label:
//   - result: "hit", "miss", or "error"
var AvailabilityCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "availability_cache_total",
		Help:      "Total number of availability cache lookups, by result.",
	},
	[]string{"result"},
)
