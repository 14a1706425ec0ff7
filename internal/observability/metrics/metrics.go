package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes application-level instruments, served from /metrics.
type Metrics struct {
	ReservationsCreated  prometheus.Counter
	ReservationConflicts prometheus.Counter
	StatusTransitions    *prometheus.CounterVec
	SideEffectFailures   *prometheus.CounterVec
	ReconcilerBackfills  *prometheus.CounterVec
	AvailabilityQueries  prometheus.Counter
}

// New registers the domain instruments on the default prometheus registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the domain instruments on reg. Tests pass a fresh
// prometheus.NewRegistry so repeated construction does not collide.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ReservationsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "lodgera_reservations_created_total",
			Help: "Reservations successfully created.",
		}),
		ReservationConflicts: factory.NewCounter(prometheus.CounterOpts{
			Name: "lodgera_reservation_conflicts_total",
			Help: "Reservation creations rejected by the transactional conflict re-check.",
		}),
		StatusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lodgera_status_transitions_total",
			Help: "Applied reservation status transitions.",
		}, []string{"from", "to"}),
		SideEffectFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lodgera_side_effect_failures_total",
			Help: "Swallowed post-transition side effect failures.",
		}, []string{"effect"}),
		ReconcilerBackfills: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lodgera_reconciler_backfills_total",
			Help: "Records created by the reconciliation sweep.",
		}, []string{"job"}),
		AvailabilityQueries: factory.NewCounter(prometheus.CounterOpts{
			Name: "lodgera_availability_queries_total",
			Help: "Advisory availability checks served.",
		}),
	}
}
