package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"wemender/entity"
)

// MinCost is the lowest bcrypt work factor accepted for stored passwords.
const MinCost = 10

type UserRepo interface {
	Add(ctx context.Context, user entity.User) (entity.User, error)
	ByEmail(ctx context.Context, email string) (entity.User, error)
}

// Credentials registers accounts and checks passwords against their salted
// bcrypt hashes.
type Credentials struct {
	users     UserRepo
	cost      int
	dummyHash []byte
	now       func() time.Time
}

func NewCredentials(users UserRepo, cost int) (*Credentials, error) {
	if cost < MinCost {
		cost = MinCost
	}

	// Compared against when the email is unknown so both failure paths do
	// the same amount of work.
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("generating dummy hash: %w", err)
	}

	return &Credentials{
		users:     users,
		cost:      cost,
		dummyHash: dummyHash,
		now:       time.Now,
	}, nil
}

func (c *Credentials) Register(ctx context.Context, email, password string) (entity.User, error) {
	if email == "" || password == "" {
		return entity.User{}, entity.ErrMissingField
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return entity.User{}, entity.ErrPasswordTooLong
	}
	if err != nil {
		return entity.User{}, fmt.Errorf("hashing password: %w", err)
	}

	user, err := c.users.Add(ctx, entity.User{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    c.now().UTC().Truncate(time.Microsecond),
	})
	if err != nil {
		return entity.User{}, fmt.Errorf("adding user: %w", err)
	}

	return user, nil
}

// Verify returns entity.ErrInvalidCredentials both for unknown emails and for
// wrong passwords.
func (c *Credentials) Verify(ctx context.Context, email, password string) (entity.User, error) {
	if email == "" || password == "" {
		return entity.User{}, entity.ErrMissingField
	}

	user, err := c.users.ByEmail(ctx, email)
	if errors.Is(err, entity.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(c.dummyHash, []byte(password))
		return entity.User{}, entity.ErrInvalidCredentials
	}
	if err != nil {
		return entity.User{}, fmt.Errorf("looking up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return entity.User{}, entity.ErrInvalidCredentials
	}

	return user, nil
}
