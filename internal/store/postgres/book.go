package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	bookmodel "readtrack-backend/internal/domains/book/model"
)

const bookColumns = `id, title, author, isbn, cover_image, description,
	total_pages, published_year, genres, average_rating, created_at`

func (s *Store) GetBooks(ctx context.Context, limit, offset int) ([]*bookmodel.Book, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	key := fmt.Sprintf(bookListKeyFmt, limit, offset)
	var cached []*bookmodel.Book
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	query := `SELECT ` + bookColumns + ` FROM books ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := s.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books, err := scanBooks(rows)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, key, books)
	return books, nil
}

func (s *Store) GetBook(ctx context.Context, id int) (*bookmodel.Book, error) {
	key := fmt.Sprintf("%s%d", bookKeyPrefix, id)
	cached := &bookmodel.Book{}
	if s.cacheGet(ctx, key, cached) {
		return cached, nil
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`
	b, err := scanBook(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, key, b)
	return b, nil
}

func (s *Store) SearchBooks(ctx context.Context, query string) ([]*bookmodel.Book, error) {
	// ILIKE over title and author plus an unnest over the genres array,
	// mirroring the substring semantics of the in-memory backend.
	sql := `
		SELECT ` + bookColumns + `
		FROM books
		WHERE title ILIKE '%' || $1 || '%'
		   OR author ILIKE '%' || $1 || '%'
		   OR EXISTS (
			SELECT 1 FROM unnest(genres) AS g
			WHERE g ILIKE '%' || $1 || '%'
		   )
		ORDER BY id
	`

	rows, err := s.pool.Query(ctx, sql, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	defer rows.Close()

	return scanBooks(rows)
}

func (s *Store) CreateBook(ctx context.Context, nb bookmodel.NewBook) (*bookmodel.Book, error) {
	query := `
		INSERT INTO books (
			title, author, isbn, cover_image, description,
			total_pages, published_year, genres, average_rating, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, $9)
		RETURNING ` + bookColumns

	b, err := scanBook(s.pool.QueryRow(ctx, query,
		nb.Title, nb.Author, nb.ISBN, nb.CoverImage, nb.Description,
		nb.TotalPages, nb.PublishedYear, pq.Array(nb.Genres), s.clock(),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	s.invalidateBookLists(ctx)
	return b, nil
}

func (s *Store) UpdateBook(ctx context.Context, id int, patch bookmodel.BookPatch) (*bookmodel.Book, error) {
	var updated *bookmodel.Book

	err := s.inTx(ctx, func(tx pgx.Tx) error {
		query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1 FOR UPDATE`
		b, err := scanBook(tx.QueryRow(ctx, query, id))
		if err != nil {
			return err
		}

		if patch.Title != nil {
			b.Title = *patch.Title
		}
		if patch.Author != nil {
			b.Author = *patch.Author
		}
		if patch.ISBN != nil {
			b.ISBN = patch.ISBN
		}
		if patch.CoverImage != nil {
			b.CoverImage = patch.CoverImage
		}
		if patch.Description != nil {
			b.Description = patch.Description
		}
		if patch.TotalPages != nil {
			b.TotalPages = *patch.TotalPages
		}
		if patch.PublishedYear != nil {
			b.PublishedYear = patch.PublishedYear
		}
		if patch.Genres != nil {
			b.Genres = *patch.Genres
		}
		if patch.AverageRating != nil {
			b.AverageRating = *patch.AverageRating
		}

		_, err = tx.Exec(ctx, `
			UPDATE books
			SET title = $1, author = $2, isbn = $3, cover_image = $4,
			    description = $5, total_pages = $6, published_year = $7,
			    genres = $8, average_rating = $9
			WHERE id = $10`,
			b.Title, b.Author, b.ISBN, b.CoverImage, b.Description,
			b.TotalPages, b.PublishedYear, pq.Array(b.Genres),
			b.AverageRating, b.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update book: %w", err)
		}

		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateBook(ctx, id)
	return updated, nil
}

func scanBook(row pgx.Row) (*bookmodel.Book, error) {
	b := &bookmodel.Book{}
	var genres []string

	err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.ISBN, &b.CoverImage, &b.Description,
		&b.TotalPages, &b.PublishedYear, pq.Array(&genres),
		&b.AverageRating, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, bookmodel.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	b.Genres = genres
	return b, nil
}

func scanBooks(rows pgx.Rows) ([]*bookmodel.Book, error) {
	books := []*bookmodel.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// Cache plumbing. Failures degrade to database reads and are only
// logged; a broken Redis must not break the catalog.

func (s *Store) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		return false
	}
	return found
}

func (s *Store) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, bookCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func (s *Store) invalidateBook(ctx context.Context, id int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, fmt.Sprintf("%s%d", bookKeyPrefix, id)); err != nil {
		log.Warn().Err(err).Int("book_id", id).Msg("cache invalidation failed")
	}
	s.invalidateBookLists(ctx)
}

func (s *Store) invalidateBookLists(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, bookListPattern); err != nil {
		log.Warn().Err(err).Msg("cache invalidation failed")
	}
}
