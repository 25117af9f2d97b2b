package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"wemender/entity"
	"wemender/monitoring"
)

const DefaultTTL = 2 * time.Hour

var ErrNotFound = errors.New("session not found")

type Session struct {
	Kind      entity.IdentityKind `json:"kind"`
	UserID    int64               `json:"user_id,omitempty"`
	Email     string              `json:"email,omitempty"`
	ExpiresAt time.Time           `json:"expires_at"`
}

func (s Session) Identity() entity.Identity {
	return entity.Identity{
		Kind:   s.Kind,
		UserID: s.UserID,
		Email:  s.Email,
	}
}

// Store keeps sessions by token. Implementations must be safe for concurrent
// use and return ErrNotFound for unknown tokens.
type Store interface {
	Save(ctx context.Context, token string, s Session, ttl time.Duration) error
	Load(ctx context.Context, token string) (Session, error)
	Delete(ctx context.Context, token string) error
}

// Authority maps opaque tokens to identities. Sessions expire a fixed ttl
// after they were started; using one does not extend it.
type Authority struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

func NewAuthority(store Store, ttl time.Duration) *Authority {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Authority{
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (a *Authority) WithClock(now func() time.Time) *Authority {
	a.now = now
	return a
}

func (a *Authority) TTL() time.Duration {
	return a.ttl
}

func (a *Authority) StartUserSession(ctx context.Context, user entity.User) (string, error) {
	return a.start(ctx, entity.UserIdentity(user))
}

func (a *Authority) StartAdminSession(ctx context.Context) (string, error) {
	return a.start(ctx, entity.AdminIdentity())
}

func (a *Authority) start(ctx context.Context, identity entity.Identity) (string, error) {
	token := uuid.NewString()

	s := Session{
		Kind:      identity.Kind,
		UserID:    identity.UserID,
		Email:     identity.Email,
		ExpiresAt: a.now().UTC().Add(a.ttl),
	}
	if err := a.store.Save(ctx, token, s, a.ttl); err != nil {
		return "", fmt.Errorf("saving session: %w", err)
	}

	monitoring.TrackSessionStarted(identity.Kind.String())

	return token, nil
}

// Authenticate resolves a token. Unknown, empty and expired tokens resolve to
// the anonymous identity without an error; an error is only returned when the
// store itself fails, and the identity is anonymous in that case too.
func (a *Authority) Authenticate(ctx context.Context, token string) (entity.Identity, error) {
	if token == "" {
		return entity.AnonymousIdentity(), nil
	}

	s, err := a.store.Load(ctx, token)
	if errors.Is(err, ErrNotFound) {
		return entity.AnonymousIdentity(), nil
	}
	if err != nil {
		return entity.AnonymousIdentity(), fmt.Errorf("loading session: %w", err)
	}

	if !a.now().Before(s.ExpiresAt) {
		_ = a.store.Delete(ctx, token)
		return entity.AnonymousIdentity(), nil
	}

	return s.Identity(), nil
}

func (a *Authority) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := a.store.Delete(ctx, token); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	return nil
}
