package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// total_price goes over the wire as a JSON number, not a string.
	decimal.MarshalJSONWithoutQuotes = true
}

type TicketType string

const (
	TicketTypeNormal TicketType = "normal"
	TicketTypeDinner TicketType = "dinner"
)

func ParseTicketType(s string) (TicketType, bool) {
	switch t := TicketType(s); t {
	case TicketTypeNormal, TicketTypeDinner:
		return t, true
	}
	return "", false
}

// Label is the name printed on confirmation emails and the verification page.
func (t TicketType) Label() string {
	switch t {
	case TicketTypeNormal:
		return "Belépő"
	case TicketTypeDinner:
		return "Belépő + vacsora"
	}
	return string(t)
}

type Ticket struct {
	ID         int64           `json:"id" db:"id"`
	Name       string          `json:"name" db:"name"`
	Email      string          `json:"email" db:"email"`
	TicketType TicketType      `json:"ticket_type" db:"ticket_type"`
	Quantity   int             `json:"quantity" db:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price" db:"total_price"`
	Code       string          `json:"code" db:"code"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

// TicketSummary is what the public verification page is allowed to show.
type TicketSummary struct {
	Name       string
	Email      string
	TicketType TicketType
	Quantity   int
	Code       string
}

func (t Ticket) Summary() TicketSummary {
	return TicketSummary{
		Name:       t.Name,
		Email:      t.Email,
		TicketType: t.TicketType,
		Quantity:   t.Quantity,
		Code:       t.Code,
	}
}
