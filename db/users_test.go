package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wemender/db"
	"wemender/entity"
)

func TestUserRepo(t *testing.T) {
	ctx := context.Background()
	r := db.NewUserRepo(dbConn)

	user := entity.User{
		Email:        uniqueEmail(),
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	added, err := r.Add(ctx, user)
	require.NoError(t, err)
	assert.NotZero(t, added.ID)

	_, err = r.Add(ctx, user)
	assert.ErrorIs(t, err, entity.ErrDuplicateEmail)

	found, err := r.ByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, added.ID, found.ID)
	assert.Equal(t, user.PasswordHash, found.PasswordHash)

	_, err = r.ByEmail(ctx, "nobody-"+user.Email)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
