package message

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"

	"wemender/event"
	"wemender/monitoring"
	"wemender/notify"
)

type QREncoder interface {
	DataURL(code string) (string, error)
	VerifyURL(code string) string
}

type Handler struct {
	notifier notify.Notifier
	qr       QREncoder
}

func NewHandler(notifier notify.Notifier, qr QREncoder) Handler {
	if notifier == nil {
		panic("missing notifier")
	}
	if qr == nil {
		panic("missing qr encoder")
	}

	return Handler{
		notifier: notifier,
		qr:       qr,
	}
}

// SendTicketConfirmation emails the buyer. A QR code that fails to render
// is left out of the email rather than blocking it.
func (h Handler) SendTicketConfirmation(ctx context.Context, e *event.TicketIssued) error {
	confirmation := notify.TicketConfirmation{
		Ticket:    e.Ticket(),
		VerifyURL: h.qr.VerifyURL(e.Code),
	}

	dataURL, err := h.qr.DataURL(e.Code)
	if err != nil {
		monitoring.TrackQRFailure()
		log.FromContext(ctx).WithError(err).Warn("Sending confirmation without QR code")
	} else {
		confirmation.QRDataURL = dataURL
	}

	if err := h.notifier.SendTicketConfirmation(ctx, confirmation); err != nil {
		return fmt.Errorf("sending ticket confirmation: %w", err)
	}
	monitoring.TrackNotification(monitoring.StatusSent)

	return nil
}
