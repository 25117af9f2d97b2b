package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"wemender/entity"
)

func CreateUsersTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL
	);`)
	return err
}

type UserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) UserRepo {
	return UserRepo{
		db: db,
	}
}

func (r UserRepo) Add(ctx context.Context, user entity.User) (entity.User, error) {
	err := r.db.QueryRowxContext(ctx, `INSERT INTO users
		(email, password_hash, created_at)
		VALUES ($1, $2, $3)
		RETURNING id;`,
		user.Email, user.PasswordHash, user.CreatedAt).Scan(&user.ID)
	if isUniqueViolation(err) {
		return entity.User{}, entity.ErrDuplicateEmail
	}
	if err != nil {
		return entity.User{}, fmt.Errorf("inserting user: %w", err)
	}

	return user, nil
}

func (r UserRepo) ByEmail(ctx context.Context, email string) (entity.User, error) {
	var user entity.User
	err := r.db.GetContext(ctx, &user, `SELECT id, email, password_hash, created_at
		FROM users WHERE email = $1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.User{}, entity.ErrNotFound
	}
	if err != nil {
		return entity.User{}, fmt.Errorf("selecting user: %w", err)
	}

	return user, nil
}
