package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Booking lifecycle metrics
	BookingsCreated     prometheus.Counter
	BookingTransitions  *prometheus.CounterVec
	IllegalTransitions  prometheus.Counter
	PaymentProofUploads prometheus.Counter

	// Intake metrics
	IntakeDraftsStarted  prometheus.Counter
	IntakeSubmissions    *prometheus.CounterVec
	IntakeStepRejections *prometheus.CounterVec

	// Admin request metrics
	AdminRequestDecisions *prometheus.CounterVec
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		BookingsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "Total number of bookings created through intake",
		}),
		BookingTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_transitions_total",
			Help:      "Total number of successful booking status transitions",
		}, []string{"from", "to"}),
		IllegalTransitions: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_illegal_transitions_total",
			Help:      "Total number of rejected booking status transitions",
		}),
		PaymentProofUploads: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_proof_uploads_total",
			Help:      "Total number of payment proof uploads",
		}),
		IntakeDraftsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intake_drafts_started_total",
			Help:      "Total number of intake drafts started",
		}),
		IntakeSubmissions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intake_submissions_total",
			Help:      "Total number of intake submissions",
		}, []string{"status"}),
		IntakeStepRejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intake_step_rejections_total",
			Help:      "Total number of intake step advances blocked by validation",
		}, []string{"step"}),
		AdminRequestDecisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_request_decisions_total",
			Help:      "Total number of admin elevation request decisions",
		}, []string{"decision"}),
	}
}
