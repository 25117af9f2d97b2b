package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"

	"wemender/entity"
)

type ReservationRepo interface {
	Add(ctx context.Context, reservation entity.Reservation) (entity.Reservation, error)
	List(ctx context.Context) ([]entity.Reservation, error)
	Update(ctx context.Context, reservation entity.Reservation) error
	Delete(ctx context.Context, id int64) error
}

type ReservationLedger struct {
	reservations ReservationRepo
	now          func() time.Time
}

func NewReservationLedger(reservations ReservationRepo) *ReservationLedger {
	if reservations == nil {
		panic("missing reservations repo")
	}

	return &ReservationLedger{
		reservations: reservations,
		now:          time.Now,
	}
}

// Create records a table reservation. No account is needed.
func (l *ReservationLedger) Create(ctx context.Context, req ReservationRequest) (entity.Reservation, error) {
	reservation, err := req.reservation()
	if err != nil {
		return entity.Reservation{}, err
	}
	reservation.CreatedAt = l.now().UTC().Truncate(time.Microsecond)

	reservation, err = l.reservations.Add(ctx, reservation)
	if err != nil {
		return entity.Reservation{}, fmt.Errorf("adding reservation: %w", err)
	}

	log.FromContext(ctx).WithField("reservation_id", reservation.ID).Info("Reservation created")

	return reservation, nil
}

func (l *ReservationLedger) AdminList(ctx context.Context, identity entity.Identity) ([]entity.Reservation, error) {
	if !identity.IsAdmin() {
		return nil, entity.ErrUnauthorized
	}

	reservations, err := l.reservations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing reservations: %w", err)
	}

	return reservations, nil
}

func (l *ReservationLedger) AdminCreate(ctx context.Context, identity entity.Identity, req ReservationRequest) (entity.Reservation, error) {
	if !identity.IsAdmin() {
		return entity.Reservation{}, entity.ErrUnauthorized
	}

	return l.Create(ctx, req)
}

func (l *ReservationLedger) AdminUpdate(ctx context.Context, identity entity.Identity, id int64, req ReservationRequest) error {
	if !identity.IsAdmin() {
		return entity.ErrUnauthorized
	}

	reservation, err := req.reservation()
	if err != nil {
		return err
	}
	reservation.ID = id

	err = l.reservations.Update(ctx, reservation)
	if err != nil {
		return fmt.Errorf("updating reservation %d: %w", id, err)
	}

	return nil
}

func (l *ReservationLedger) AdminDelete(ctx context.Context, identity entity.Identity, id int64) error {
	if !identity.IsAdmin() {
		return entity.ErrUnauthorized
	}

	err := l.reservations.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting reservation %d: %w", id, err)
	}

	return nil
}
