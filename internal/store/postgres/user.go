package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	usermodel "readtrack-backend/internal/domains/user/model"
)

const userColumns = `id, username, password, email, avatar, created_at`

func (s *Store) GetUser(ctx context.Context, id int) (*usermodel.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return s.scanUser(s.pool.QueryRow(ctx, query, id))
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*usermodel.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return s.scanUser(s.pool.QueryRow(ctx, query, username))
}

func (s *Store) CreateUser(ctx context.Context, nu usermodel.NewUser) (*usermodel.User, error) {
	query := `
		INSERT INTO users (username, password, email, avatar, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	u, err := s.scanUser(s.pool.QueryRow(ctx, query,
		nu.Username, nu.Password, nu.Email, nu.Avatar, s.clock(),
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == "users_email_key" {
				return nil, usermodel.ErrEmailTaken
			}
			return nil, usermodel.ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

func (s *Store) scanUser(row pgx.Row) (*usermodel.User, error) {
	u := &usermodel.User{}
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Email, &u.Avatar, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, usermodel.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}
