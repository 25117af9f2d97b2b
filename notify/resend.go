package notify

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/resend/resend-go/v2"
)

type ResendNotifier struct {
	client *resend.Client
	from   string
}

func NewResendNotifier(apiKey, from string) *ResendNotifier {
	return &ResendNotifier{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (n *ResendNotifier) SendTicketConfirmation(ctx context.Context, c TicketConfirmation) error {
	email, err := Compose(c)
	if err != nil {
		return err
	}

	sent, err := n.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{email.To},
		Subject: email.Subject,
		Html:    email.HTML,
	})
	if err != nil {
		return fmt.Errorf("sending confirmation for %s: %w", c.Ticket.Code, err)
	}

	log.FromContext(ctx).WithField("email_id", sent.Id).Info("Ticket confirmation sent")

	return nil
}

// LogNotifier stands in when no mail provider is configured.
type LogNotifier struct{}

func (LogNotifier) SendTicketConfirmation(ctx context.Context, c TicketConfirmation) error {
	email, err := Compose(c)
	if err != nil {
		return err
	}

	log.FromContext(ctx).WithFields(map[string]any{
		"to":   email.To,
		"code": c.Ticket.Code,
	}).Info("Mail provider not configured, confirmation not sent")

	return nil
}
