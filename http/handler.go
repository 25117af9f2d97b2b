package http

import (
	"context"
	"time"

	"wemender/entity"
	"wemender/ledger"
)

type Credentials interface {
	Register(ctx context.Context, email, password string) (entity.User, error)
	Verify(ctx context.Context, email, password string) (entity.User, error)
}

type AdminGate interface {
	Check(password string) error
}

type Sessions interface {
	StartUserSession(ctx context.Context, user entity.User) (string, error)
	StartAdminSession(ctx context.Context) (string, error)
	Authenticate(ctx context.Context, token string) (entity.Identity, error)
	Destroy(ctx context.Context, token string) error
	TTL() time.Duration
}

type TicketLedger interface {
	Purchase(ctx context.Context, identity entity.Identity, req ledger.TicketRequest) (ledger.Issued, error)
	ListMine(ctx context.Context, identity entity.Identity) ([]ledger.Issued, error)
	AdminList(ctx context.Context, identity entity.Identity) ([]entity.Ticket, error)
	AdminCreate(ctx context.Context, identity entity.Identity, req ledger.TicketRequest) (entity.Ticket, error)
	AdminUpdate(ctx context.Context, identity entity.Identity, id int64, req ledger.TicketRequest) error
	AdminDelete(ctx context.Context, identity entity.Identity, id int64) error
	Verify(ctx context.Context, code string) (entity.TicketSummary, error)
}

type ReservationLedger interface {
	Create(ctx context.Context, req ledger.ReservationRequest) (entity.Reservation, error)
	AdminList(ctx context.Context, identity entity.Identity) ([]entity.Reservation, error)
	AdminCreate(ctx context.Context, identity entity.Identity, req ledger.ReservationRequest) (entity.Reservation, error)
	AdminUpdate(ctx context.Context, identity entity.Identity, id int64, req ledger.ReservationRequest) error
	AdminDelete(ctx context.Context, identity entity.Identity, id int64) error
}

type handler struct {
	credentials  Credentials
	admin        AdminGate
	sessions     Sessions
	tickets      TicketLedger
	reservations ReservationLedger
	cookieSecure bool
}

type messageResponse struct {
	Message string `json:"message"`
}
