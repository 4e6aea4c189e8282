// Package postgres implements store.Storage on a pgx connection pool,
// with a Redis read-through cache in front of catalog point reads.
// Derived views (library joins, stats, recommendations) always hit the
// database so they never serve stale data.
package postgres

import (
	"context"
	_ "embed"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	usermodel "readtrack-backend/internal/domains/user/model"
	"readtrack-backend/internal/store"
	"readtrack-backend/pkg/cache"
)

//go:embed schema.sql
var schemaSQL string

const (
	bookCacheTTL    = 10 * time.Minute
	bookKeyPrefix   = "book:"
	bookListPattern = "books:*"
	bookListKeyFmt  = "books:%d:%d"
)

type Store struct {
	pool  *pgxpool.Pool
	cache cache.Cache
	clock func() time.Time
}

var _ store.Storage = (*Store)(nil)

// New wires the pool and cache into a Storage. cache may be nil, which
// disables caching entirely.
func New(pool *pgxpool.Pool, c cache.Cache) *Store {
	return &Store{pool: pool, cache: c, clock: time.Now}
}

// EnsureSchema applies the idempotent DDL and seeds the fixed sample
// data when the users table is empty.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return err
	}
	return s.seedIfEmpty(ctx)
}

func (s *Store) seedIfEmpty(ctx context.Context) error {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := s.clock()

	for _, u := range store.SeedUsers(now) {
		if _, err := s.CreateUser(ctx, u); err != nil && !errors.Is(err, usermodel.ErrUsernameTaken) {
			return err
		}
	}

	ratings := store.SeedRatings()
	for i, b := range store.SeedBooks(now) {
		created, err := s.CreateBook(ctx, b)
		if err != nil {
			return err
		}
		if i < len(ratings) {
			_, err = s.pool.Exec(ctx,
				`UPDATE books SET average_rating = $1 WHERE id = $2`,
				ratings[i], created.ID)
			if err != nil {
				return err
			}
		}
	}

	for _, ub := range store.SeedUserBooks(now) {
		if _, err := s.AddUserBook(ctx, ub); err != nil {
			return err
		}
	}

	for _, p := range store.SeedPreferences(now) {
		if _, err := s.CreateUserPreferences(ctx, p); err != nil {
			return err
		}
	}

	log.Info().Msg("postgres store seeded")
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() {
	s.pool.Close()
}

// inTx runs fn inside a transaction, committing on nil error.
func (s *Store) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
