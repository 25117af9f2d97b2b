package auth_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"wemender/auth"
	"wemender/entity"
)

type mockUserRepo struct {
	lock   sync.Mutex
	users  map[string]entity.User
	nextID int64
	err    error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]entity.User)}
}

func (m *mockUserRepo) Add(_ context.Context, user entity.User) (entity.User, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.err != nil {
		return entity.User{}, m.err
	}
	if _, ok := m.users[user.Email]; ok {
		return entity.User{}, entity.ErrDuplicateEmail
	}

	m.nextID++
	user.ID = m.nextID
	m.users[user.Email] = user

	return user, nil
}

func (m *mockUserRepo) ByEmail(_ context.Context, email string) (entity.User, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.err != nil {
		return entity.User{}, m.err
	}
	user, ok := m.users[email]
	if !ok {
		return entity.User{}, entity.ErrNotFound
	}

	return user, nil
}

func newCredentials(t *testing.T, repo auth.UserRepo) *auth.Credentials {
	t.Helper()

	c, err := auth.NewCredentials(repo, auth.MinCost)
	require.NoError(t, err)

	return c
}

func TestCredentials_Register(t *testing.T) {
	ctx := context.Background()
	repo := newMockUserRepo()
	c := newCredentials(t, repo)

	user, err := c.Register(ctx, "eva@example.com", "titkos-jelszo")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "eva@example.com", user.Email)
	assert.False(t, user.CreatedAt.IsZero())

	stored := repo.users["eva@example.com"]
	assert.NotEqual(t, "titkos-jelszo", stored.PasswordHash)

	cost, err := bcrypt.Cost([]byte(stored.PasswordHash))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, cost, auth.MinCost)

	_, err = c.Register(ctx, "eva@example.com", "masik-jelszo")
	assert.ErrorIs(t, err, entity.ErrDuplicateEmail)
}

func TestCredentials_Register_validation(t *testing.T) {
	ctx := context.Background()
	c := newCredentials(t, newMockUserRepo())

	_, err := c.Register(ctx, "", "jelszo")
	assert.ErrorIs(t, err, entity.ErrMissingField)

	_, err = c.Register(ctx, "eva@example.com", "")
	assert.ErrorIs(t, err, entity.ErrMissingField)

	_, err = c.Register(ctx, "eva@example.com", strings.Repeat("x", 73))
	assert.ErrorIs(t, err, entity.ErrPasswordTooLong)
}

func TestNewCredentials_clamps_cost(t *testing.T) {
	ctx := context.Background()
	repo := newMockUserRepo()

	c, err := auth.NewCredentials(repo, bcrypt.MinCost)
	require.NoError(t, err)

	_, err = c.Register(ctx, "eva@example.com", "jelszo")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(repo.users["eva@example.com"].PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, auth.MinCost, cost)
}

func TestCredentials_Verify(t *testing.T) {
	ctx := context.Background()
	c := newCredentials(t, newMockUserRepo())

	registered, err := c.Register(ctx, "eva@example.com", "titkos-jelszo")
	require.NoError(t, err)

	user, err := c.Verify(ctx, "eva@example.com", "titkos-jelszo")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, wrongPassword := c.Verify(ctx, "eva@example.com", "rossz-jelszo")
	_, unknownEmail := c.Verify(ctx, "senki@example.com", "titkos-jelszo")
	_, wrongCase := c.Verify(ctx, "Eva@example.com", "titkos-jelszo")

	assert.ErrorIs(t, wrongPassword, entity.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, entity.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongCase, entity.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestCredentials_Verify_storage_error(t *testing.T) {
	repo := newMockUserRepo()
	repo.err = errors.New("connection refused")
	c := newCredentials(t, repo)

	_, err := c.Verify(context.Background(), "eva@example.com", "jelszo")
	require.Error(t, err)
	assert.NotErrorIs(t, err, entity.ErrInvalidCredentials)
}
