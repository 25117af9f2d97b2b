package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"

	"wemender/entity"
	"wemender/event"
	"wemender/monitoring"
	"wemender/ticketcode"
)

// maxCodeAttempts bounds how many fresh codes are drawn when an insert hits
// the unique constraint on code.
const maxCodeAttempts = 5

const (
	sourcePurchase = "purchase"
	sourceAdmin    = "admin"
)

type TicketRepo interface {
	Add(ctx context.Context, ticket entity.Ticket) (entity.Ticket, error)
	ByCode(ctx context.Context, code string) (entity.Ticket, error)
	ByEmail(ctx context.Context, email string) ([]entity.Ticket, error)
	List(ctx context.Context) ([]entity.Ticket, error)
	Update(ctx context.Context, ticket entity.Ticket) error
	Delete(ctx context.Context, id int64) error
}

type QREncoder interface {
	DataURL(code string) (string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event any) error
}

// Issued is a ticket together with its rendered QR code. QRDataURL is empty
// when rendering failed.
type Issued struct {
	entity.Ticket
	QRDataURL string `json:"qrDataUrl,omitempty"`
}

type TicketLedger struct {
	tickets   TicketRepo
	qr        QREncoder
	publisher EventPublisher

	newCode func() (string, error)
	now     func() time.Time
}

func NewTicketLedger(tickets TicketRepo, qr QREncoder, publisher EventPublisher) *TicketLedger {
	if tickets == nil {
		panic("missing tickets repo")
	}
	if qr == nil {
		panic("missing qr encoder")
	}
	if publisher == nil {
		panic("missing event publisher")
	}

	return &TicketLedger{
		tickets:   tickets,
		qr:        qr,
		publisher: publisher,
		newCode:   ticketcode.Generate,
		now:       time.Now,
	}
}

// Purchase issues a ticket to the signed-in user. The stored email is always
// the session's email.
func (l *TicketLedger) Purchase(ctx context.Context, identity entity.Identity, req TicketRequest) (Issued, error) {
	if !identity.IsUser() {
		return Issued{}, entity.ErrUnauthorized
	}
	if !req.hasRequired() {
		return Issued{}, entity.ErrMissingField
	}
	if req.Email != identity.Email {
		return Issued{}, entity.ErrEmailMismatch
	}

	ticket, err := req.fields()
	if err != nil {
		return Issued{}, err
	}
	ticket.Email = identity.Email

	ticket, err = l.issue(ctx, ticket)
	if err != nil {
		return Issued{}, err
	}
	monitoring.TrackTicketIssued(string(ticket.TicketType), sourcePurchase)

	log.FromContext(ctx).WithFields(map[string]any{
		"ticket_id": ticket.ID,
		"code":      ticket.Code,
	}).Info("Ticket purchased")

	issued := l.render(ctx, ticket)

	err = l.publisher.Publish(ctx, event.NewTicketIssued(ticket))
	if err != nil {
		monitoring.TrackNotification(monitoring.StatusFailed)
		log.FromContext(ctx).WithError(err).WithField("code", ticket.Code).Error("Failed to publish TicketIssued")
	}

	return issued, nil
}

// ListMine returns the signed-in user's tickets, newest first, each with a
// freshly rendered QR code.
func (l *TicketLedger) ListMine(ctx context.Context, identity entity.Identity) ([]Issued, error) {
	if !identity.IsUser() {
		return nil, entity.ErrUnauthorized
	}

	tickets, err := l.tickets.ByEmail(ctx, identity.Email)
	if err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}

	issued := make([]Issued, 0, len(tickets))
	for _, t := range tickets {
		issued = append(issued, l.render(ctx, t))
	}

	return issued, nil
}

func (l *TicketLedger) AdminList(ctx context.Context, identity entity.Identity) ([]entity.Ticket, error) {
	if !identity.IsAdmin() {
		return nil, entity.ErrUnauthorized
	}

	tickets, err := l.tickets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}

	return tickets, nil
}

// AdminCreate writes a ticket for any email. No confirmation is sent.
func (l *TicketLedger) AdminCreate(ctx context.Context, identity entity.Identity, req TicketRequest) (entity.Ticket, error) {
	if !identity.IsAdmin() {
		return entity.Ticket{}, entity.ErrUnauthorized
	}

	ticket, err := adminFields(req)
	if err != nil {
		return entity.Ticket{}, err
	}

	ticket, err = l.issue(ctx, ticket)
	if err != nil {
		return entity.Ticket{}, err
	}
	monitoring.TrackTicketIssued(string(ticket.TicketType), sourceAdmin)

	return ticket, nil
}

// AdminUpdate replaces the editable fields of a ticket. Code and creation
// time are kept.
func (l *TicketLedger) AdminUpdate(ctx context.Context, identity entity.Identity, id int64, req TicketRequest) error {
	if !identity.IsAdmin() {
		return entity.ErrUnauthorized
	}

	ticket, err := adminFields(req)
	if err != nil {
		return err
	}
	ticket.ID = id

	err = l.tickets.Update(ctx, ticket)
	if err != nil {
		return fmt.Errorf("updating ticket %d: %w", id, err)
	}

	return nil
}

func (l *TicketLedger) AdminDelete(ctx context.Context, identity entity.Identity, id int64) error {
	if !identity.IsAdmin() {
		return entity.ErrUnauthorized
	}

	err := l.tickets.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting ticket %d: %w", id, err)
	}

	return nil
}

// Verify looks a code up by exact match. Malformed and unknown codes both
// yield entity.ErrNotFound.
func (l *TicketLedger) Verify(ctx context.Context, code string) (entity.TicketSummary, error) {
	if !ticketcode.Valid(code) {
		monitoring.TrackVerification(monitoring.ResultInvalid)
		return entity.TicketSummary{}, entity.ErrNotFound
	}

	ticket, err := l.tickets.ByCode(ctx, code)
	if errors.Is(err, entity.ErrNotFound) {
		monitoring.TrackVerification(monitoring.ResultInvalid)
		return entity.TicketSummary{}, entity.ErrNotFound
	}
	if err != nil {
		monitoring.TrackVerification(monitoring.ResultError)
		return entity.TicketSummary{}, fmt.Errorf("looking up code: %w", err)
	}

	monitoring.TrackVerification(monitoring.ResultValid)
	return ticket.Summary(), nil
}

func adminFields(req TicketRequest) (entity.Ticket, error) {
	if !req.hasRequired() || blank(req.Email) {
		return entity.Ticket{}, entity.ErrMissingField
	}

	ticket, err := req.fields()
	if err != nil {
		return entity.Ticket{}, err
	}
	ticket.Email = req.Email

	return ticket, nil
}

// issue assigns a fresh code and inserts the ticket, drawing a new code
// whenever the insert collides with an existing one.
func (l *TicketLedger) issue(ctx context.Context, ticket entity.Ticket) (entity.Ticket, error) {
	ticket.CreatedAt = l.now().UTC().Truncate(time.Microsecond)

	for attempt := 1; ; attempt++ {
		code, err := l.newCode()
		if err != nil {
			return entity.Ticket{}, fmt.Errorf("generating ticket code: %w", err)
		}
		ticket.Code = code

		added, err := l.tickets.Add(ctx, ticket)
		if errors.Is(err, entity.ErrDuplicateCode) && attempt < maxCodeAttempts {
			monitoring.TrackCodeCollision()
			log.FromContext(ctx).WithField("attempt", attempt).Warn("Ticket code collision, drawing a new one")
			continue
		}
		if err != nil {
			return entity.Ticket{}, fmt.Errorf("adding ticket: %w", err)
		}

		return added, nil
	}
}

func (l *TicketLedger) render(ctx context.Context, ticket entity.Ticket) Issued {
	dataURL, err := l.qr.DataURL(ticket.Code)
	if err != nil {
		monitoring.TrackQRFailure()
		log.FromContext(ctx).WithError(err).WithField("code", ticket.Code).Error("Failed to render QR code")
		return Issued{Ticket: ticket}
	}

	return Issued{Ticket: ticket, QRDataURL: dataURL}
}
