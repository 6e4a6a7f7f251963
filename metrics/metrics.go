package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dealdesk"

var (
	DealsSubmitted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deals_submitted_total",
		Help:      "Deal submissions by deal type and result.",
	}, []string{"deal_type", "result"})

	BestEffortFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "best_effort_failures_total",
		Help:      "Failed non-fatal side steps (price sync, uploads, activity log, balance).",
	}, []string{"step"})

	BookingsConfirmed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_confirmed_total",
		Help:      "Booking confirmations by booking type and result.",
	}, []string{"booking_type", "result"})

	DocumentsRendered = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_rendered_total",
		Help:      "Rendered bill documents by normalized bill type.",
	}, []string{"bill_type"})
)

func init() {
	prometheus.MustRegister(DealsSubmitted, BestEffortFailures, BookingsConfirmed, DocumentsRendered)
}

const (
	ResultSuccess = "success"
	ResultFailed  = "failed"
	ResultInvalid = "invalid"
)
