package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StatusSent   = "sent"
	StatusFailed = "failed"

	ResultValid   = "valid"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

var (
	ticketsIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickets_issued_total",
			Help: "Tickets written to the ledger",
		},
		[]string{"ticket_type", "source"},
	)

	codeCollisions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ticket_code_collisions_total",
			Help: "Generated ticket codes rejected by the unique constraint",
		},
	)

	qrFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "qr_render_failures_total",
			Help: "QR codes that could not be rendered",
		},
	)

	notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_notifications_total",
			Help: "Ticket confirmation emails by outcome",
		},
		[]string{"status"},
	)

	verifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_verifications_total",
			Help: "Verification page lookups by result",
		},
		[]string{"result"},
	)

	sessionsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sessions_started_total",
			Help: "Sessions started by identity kind",
		},
		[]string{"kind"},
	)
)

// TrackTicketIssued counts a ticket; source is "purchase" or "admin".
func TrackTicketIssued(ticketType, source string) {
	ticketsIssued.WithLabelValues(ticketType, source).Inc()
}

func TrackCodeCollision() {
	codeCollisions.Inc()
}

func TrackQRFailure() {
	qrFailures.Inc()
}

func TrackNotification(status string) {
	notifications.WithLabelValues(status).Inc()
}

func TrackVerification(result string) {
	verifications.WithLabelValues(result).Inc()
}

func TrackSessionStarted(kind string) {
	sessionsStarted.WithLabelValues(kind).Inc()
}
