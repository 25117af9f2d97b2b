package ledger_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"wemender/entity"
)

type MockTicketRepo struct {
	lock    sync.Mutex
	nextID  int64
	tickets []entity.Ticket
	err     error
}

func (m *MockTicketRepo) Add(_ context.Context, ticket entity.Ticket) (entity.Ticket, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.err != nil {
		return entity.Ticket{}, m.err
	}
	for _, t := range m.tickets {
		if t.Code == ticket.Code {
			return entity.Ticket{}, entity.ErrDuplicateCode
		}
	}

	m.nextID++
	ticket.ID = m.nextID
	m.tickets = append(m.tickets, ticket)

	return ticket, nil
}

func (m *MockTicketRepo) ByCode(_ context.Context, code string) (entity.Ticket, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.err != nil {
		return entity.Ticket{}, m.err
	}
	for _, t := range m.tickets {
		if t.Code == code {
			return t, nil
		}
	}

	return entity.Ticket{}, entity.ErrNotFound
}

func (m *MockTicketRepo) ByEmail(_ context.Context, email string) ([]entity.Ticket, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	var tickets []entity.Ticket
	for _, t := range m.tickets {
		if t.Email == email {
			tickets = append(tickets, t)
		}
	}

	return newestFirst(tickets), m.err
}

func (m *MockTicketRepo) List(_ context.Context) ([]entity.Ticket, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	return newestFirst(append([]entity.Ticket(nil), m.tickets...)), m.err
}

func (m *MockTicketRepo) Update(_ context.Context, ticket entity.Ticket) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	for i, t := range m.tickets {
		if t.ID == ticket.ID {
			ticket.Code = t.Code
			ticket.CreatedAt = t.CreatedAt
			m.tickets[i] = ticket
			return nil
		}
	}

	return entity.ErrNotFound
}

func (m *MockTicketRepo) Delete(_ context.Context, id int64) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	for i, t := range m.tickets {
		if t.ID == id {
			m.tickets = append(m.tickets[:i], m.tickets[i+1:]...)
			return nil
		}
	}

	return entity.ErrNotFound
}

func (m *MockTicketRepo) All() []entity.Ticket {
	m.lock.Lock()
	defer m.lock.Unlock()

	return append([]entity.Ticket(nil), m.tickets...)
}

func newestFirst(tickets []entity.Ticket) []entity.Ticket {
	sort.SliceStable(tickets, func(i, j int) bool {
		if tickets[i].CreatedAt.Equal(tickets[j].CreatedAt) {
			return tickets[i].ID > tickets[j].ID
		}
		return tickets[i].CreatedAt.After(tickets[j].CreatedAt)
	})
	return tickets
}

type MockReservationRepo struct {
	lock         sync.Mutex
	nextID       int64
	reservations []entity.Reservation
}

func (m *MockReservationRepo) Add(_ context.Context, reservation entity.Reservation) (entity.Reservation, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.nextID++
	reservation.ID = m.nextID
	m.reservations = append(m.reservations, reservation)

	return reservation, nil
}

func (m *MockReservationRepo) List(_ context.Context) ([]entity.Reservation, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	return append([]entity.Reservation(nil), m.reservations...), nil
}

func (m *MockReservationRepo) Update(_ context.Context, reservation entity.Reservation) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	for i, r := range m.reservations {
		if r.ID == reservation.ID {
			reservation.CreatedAt = r.CreatedAt
			m.reservations[i] = reservation
			return nil
		}
	}

	return entity.ErrNotFound
}

func (m *MockReservationRepo) Delete(_ context.Context, id int64) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	for i, r := range m.reservations {
		if r.ID == id {
			m.reservations = append(m.reservations[:i], m.reservations[i+1:]...)
			return nil
		}
	}

	return entity.ErrNotFound
}

type MockQREncoder struct {
	fail bool
}

func (m *MockQREncoder) DataURL(code string) (string, error) {
	if m.fail {
		return "", errors.New("qr encoder unavailable")
	}
	return "data:image/png;base64," + code, nil
}

type MockPublisher struct {
	lock   sync.Mutex
	events []any
	err    error
}

func (m *MockPublisher) Publish(_ context.Context, event any) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)

	return nil
}

func (m *MockPublisher) Events() []any {
	m.lock.Lock()
	defer m.lock.Unlock()

	return append([]any(nil), m.events...)
}
