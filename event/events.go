package event

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/shopspring/decimal"

	"wemender/entity"
)

type header struct {
	ID          string    `json:"id"`
	PublishedAt time.Time `json:"published_at"`
}

func newHeader() header {
	return header{
		ID:          watermill.NewUUID(),
		PublishedAt: time.Now().UTC(),
	}
}

// TicketIssued is published once a purchased ticket has been committed.
type TicketIssued struct {
	Header     header            `json:"header"`
	TicketID   int64             `json:"ticket_id"`
	Code       string            `json:"code"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	TicketType entity.TicketType `json:"ticket_type"`
	Quantity   int               `json:"quantity"`
	TotalPrice decimal.Decimal   `json:"total_price"`
}

func NewTicketIssued(ticket entity.Ticket) TicketIssued {
	return TicketIssued{
		Header:     newHeader(),
		TicketID:   ticket.ID,
		Code:       ticket.Code,
		Name:       ticket.Name,
		Email:      ticket.Email,
		TicketType: ticket.TicketType,
		Quantity:   ticket.Quantity,
		TotalPrice: ticket.TotalPrice,
	}
}

func (e TicketIssued) Ticket() entity.Ticket {
	return entity.Ticket{
		ID:         e.TicketID,
		Name:       e.Name,
		Email:      e.Email,
		TicketType: e.TicketType,
		Quantity:   e.Quantity,
		TotalPrice: e.TotalPrice,
		Code:       e.Code,
	}
}
