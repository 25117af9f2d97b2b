package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"wemender/entity"
)

func CreateReservationsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS reservations (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(64),
		guests INTEGER NOT NULL CHECK (guests > 0),
		notes TEXT,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL
	);`)
	return err
}

type ReservationRepo struct {
	db *sqlx.DB
}

func NewReservationRepo(db *sqlx.DB) ReservationRepo {
	return ReservationRepo{
		db: db,
	}
}

func (r ReservationRepo) Add(ctx context.Context, reservation entity.Reservation) (entity.Reservation, error) {
	err := r.db.QueryRowxContext(ctx, `INSERT INTO reservations
		(name, email, phone, guests, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;`,
		reservation.Name, reservation.Email, reservation.Phone, reservation.Guests, reservation.Notes, reservation.CreatedAt,
	).Scan(&reservation.ID)
	if err != nil {
		return entity.Reservation{}, fmt.Errorf("inserting reservation: %w", err)
	}

	return reservation, nil
}

func (r ReservationRepo) List(ctx context.Context) ([]entity.Reservation, error) {
	reservations := []entity.Reservation{}
	err := r.db.SelectContext(ctx, &reservations, `SELECT id, name, email, phone, guests, notes, created_at
		FROM reservations ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("selecting reservations: %w", err)
	}

	return reservations, nil
}

func (r ReservationRepo) Update(ctx context.Context, reservation entity.Reservation) error {
	res, err := r.db.ExecContext(ctx, `UPDATE reservations
		SET name = $1, email = $2, phone = $3, guests = $4, notes = $5
		WHERE id = $6`,
		reservation.Name, reservation.Email, reservation.Phone, reservation.Guests, reservation.Notes, reservation.ID)
	if err != nil {
		return fmt.Errorf("executing update query: %w", err)
	}

	return checkAffected(res, entity.ErrNotFound)
}

func (r ReservationRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM reservations WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("executing delete query: %w", err)
	}

	return checkAffected(res, entity.ErrNotFound)
}
