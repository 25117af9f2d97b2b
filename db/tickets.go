package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"wemender/entity"
)

const ticketColumns = `id, name, email, ticket_type, quantity, total_price, code, created_at`

func CreateTicketsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS tickets (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email VARCHAR(255) NOT NULL,
		ticket_type VARCHAR(16) NOT NULL CHECK (ticket_type IN ('normal', 'dinner')),
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		total_price NUMERIC NOT NULL CHECK (total_price > 0),
		code CHAR(8) UNIQUE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL
	);
	CREATE INDEX IF NOT EXISTS tickets_email_created_at_idx ON tickets (email, created_at DESC);`)
	return err
}

type TicketRepo struct {
	db *sqlx.DB
}

func NewTicketRepo(db *sqlx.DB) TicketRepo {
	return TicketRepo{
		db: db,
	}
}

// Add inserts the ticket and returns it with its id. A clash on code is
// reported as entity.ErrDuplicateCode so the caller can draw a new one.
func (r TicketRepo) Add(ctx context.Context, ticket entity.Ticket) (entity.Ticket, error) {
	err := r.db.QueryRowxContext(ctx, `INSERT INTO tickets
		(name, email, ticket_type, quantity, total_price, code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;`,
		ticket.Name, ticket.Email, ticket.TicketType, ticket.Quantity, ticket.TotalPrice, ticket.Code, ticket.CreatedAt,
	).Scan(&ticket.ID)
	if isUniqueViolation(err) {
		return entity.Ticket{}, entity.ErrDuplicateCode
	}
	if err != nil {
		return entity.Ticket{}, fmt.Errorf("inserting ticket: %w", err)
	}

	return ticket, nil
}

func (r TicketRepo) ByCode(ctx context.Context, code string) (entity.Ticket, error) {
	var t entity.Ticket
	err := r.db.GetContext(ctx, &t, "SELECT "+ticketColumns+" FROM tickets WHERE code = $1", code)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Ticket{}, entity.ErrNotFound
	}
	if err != nil {
		return entity.Ticket{}, fmt.Errorf("selecting ticket by code: %w", err)
	}

	return t, nil
}

func (r TicketRepo) ByEmail(ctx context.Context, email string) ([]entity.Ticket, error) {
	tickets := []entity.Ticket{}
	err := r.db.SelectContext(ctx, &tickets, "SELECT "+ticketColumns+` FROM tickets
		WHERE email = $1 ORDER BY created_at DESC, id DESC`, email)
	if err != nil {
		return nil, fmt.Errorf("selecting tickets by email: %w", err)
	}

	return tickets, nil
}

func (r TicketRepo) List(ctx context.Context) ([]entity.Ticket, error) {
	tickets := []entity.Ticket{}
	err := r.db.SelectContext(ctx, &tickets, "SELECT "+ticketColumns+" FROM tickets ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("selecting tickets: %w", err)
	}

	return tickets, nil
}

// Update replaces every editable field. Code and created_at never change.
func (r TicketRepo) Update(ctx context.Context, ticket entity.Ticket) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tickets
		SET name = $1, email = $2, ticket_type = $3, quantity = $4, total_price = $5
		WHERE id = $6`,
		ticket.Name, ticket.Email, ticket.TicketType, ticket.Quantity, ticket.TotalPrice, ticket.ID)
	if err != nil {
		return fmt.Errorf("executing update query: %w", err)
	}

	return checkAffected(res, entity.ErrNotFound)
}

func (r TicketRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM tickets WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("executing delete query: %w", err)
	}

	return checkAffected(res, entity.ErrNotFound)
}
