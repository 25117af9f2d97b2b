package ledger

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"wemender/entity"
)

// Amount is a numeric field exactly as the client sent it. Any JSON scalar
// decodes into it, so 2, "2" and "abc" all reach validation.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
	default:
		*a = Amount(data)
	}
	return nil
}

func (a Amount) String() string {
	return string(a)
}

// TicketRequest carries the client-supplied ticket fields.
type TicketRequest struct {
	Name       string `json:"name" form:"name"`
	Email      string `json:"email" form:"email"`
	TicketType string `json:"ticket_type" form:"ticket_type"`
	Quantity   Amount `json:"quantity" form:"quantity"`
	TotalPrice Amount `json:"total_price" form:"total_price"`
}

type ReservationRequest struct {
	Name   string `json:"name" form:"name"`
	Email  string `json:"email" form:"email"`
	Phone  string `json:"phone" form:"phone"`
	Guests Amount `json:"guests" form:"guests"`
	Notes  string `json:"notes" form:"notes"`
}

var maxCount = decimal.NewFromInt(math.MaxInt32)

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func (r TicketRequest) hasRequired() bool {
	return !blank(r.Name) && !blank(r.TicketType) && !blank(r.Quantity.String()) && !blank(r.TotalPrice.String())
}

// fields checks type and amounts and returns the ticket without email,
// code or timestamps.
func (r TicketRequest) fields() (entity.Ticket, error) {
	ticketType, ok := entity.ParseTicketType(r.TicketType)
	if !ok {
		return entity.Ticket{}, entity.ErrInvalidTicketType
	}

	quantity, ok := positiveCount(r.Quantity)
	if !ok {
		return entity.Ticket{}, entity.ErrInvalidAmount
	}

	price, ok := positiveDecimal(r.TotalPrice)
	if !ok {
		return entity.Ticket{}, entity.ErrInvalidAmount
	}

	return entity.Ticket{
		Name:       strings.TrimSpace(r.Name),
		TicketType: ticketType,
		Quantity:   quantity,
		TotalPrice: price,
	}, nil
}

func (r ReservationRequest) reservation() (entity.Reservation, error) {
	if blank(r.Name) || blank(r.Email) || blank(r.Guests.String()) {
		return entity.Reservation{}, entity.ErrMissingField
	}

	guests, ok := positiveCount(r.Guests)
	if !ok {
		return entity.Reservation{}, entity.ErrInvalidGuestCount
	}

	return entity.Reservation{
		Name:   strings.TrimSpace(r.Name),
		Email:  strings.TrimSpace(r.Email),
		Phone:  optional(r.Phone),
		Guests: guests,
		Notes:  optional(r.Notes),
	}, nil
}

// positiveDecimal parses a as a decimal that also fits a float64 and is above
// zero. The float check runs first so huge exponents are rejected before
// decimal ever expands them.
func positiveDecimal(a Amount) (decimal.Decimal, bool) {
	s := strings.TrimSpace(a.String())
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f <= 0 {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return decimal.Decimal{}, false
	}
	return d, true
}

// positiveCount accepts whole numbers between 1 and the column limit.
func positiveCount(a Amount) (int, bool) {
	d, ok := positiveDecimal(a)
	if !ok || d.GreaterThan(maxCount) || !d.IsInteger() {
		return 0, false
	}
	return int(d.IntPart()), true
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
