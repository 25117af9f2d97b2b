package http_test

import (
	"context"
	"sort"
	"sync"

	"wemender/entity"
)

type MockUserRepo struct {
	lock   sync.Mutex
	nextID int64
	users  map[string]entity.User
}

func (m *MockUserRepo) Add(_ context.Context, user entity.User) (entity.User, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.users == nil {
		m.users = map[string]entity.User{}
	}
	if _, ok := m.users[user.Email]; ok {
		return entity.User{}, entity.ErrDuplicateEmail
	}

	m.nextID++
	user.ID = m.nextID
	m.users[user.Email] = user

	return user, nil
}

func (m *MockUserRepo) ByEmail(_ context.Context, email string) (entity.User, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	user, ok := m.users[email]
	if !ok {
		return entity.User{}, entity.ErrNotFound
	}
	return user, nil
}

type MockTicketRepo struct {
	lock    sync.Mutex
	nextID  int64
	tickets []entity.Ticket
	err     error
}

func (m *MockTicketRepo) Add(_ context.Context, ticket entity.Ticket) (entity.Ticket, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

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

	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].ID > tickets[j].ID
	})

	return tickets, nil
}

func (m *MockTicketRepo) List(_ context.Context) ([]entity.Ticket, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	return append([]entity.Ticket{}, m.tickets...), nil
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

func (m *MockTicketRepo) SetErr(err error) {
	m.lock.Lock()
	m.err = err
	m.lock.Unlock()
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

	return append([]entity.Reservation{}, m.reservations...), nil
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

type MockPublisher struct {
	lock   sync.Mutex
	events []any
}

func (m *MockPublisher) Publish(_ context.Context, event any) error {
	m.lock.Lock()
	m.events = append(m.events, event)
	m.lock.Unlock()

	return nil
}

func (m *MockPublisher) Len() int {
	m.lock.Lock()
	defer m.lock.Unlock()

	return len(m.events)
}
