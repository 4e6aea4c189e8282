package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	librarymodel "readtrack-backend/internal/domains/library/model"
)

const userBookColumns = `id, user_id, book_id, status, current_page,
	started_at, completed_at, rating, created_at`

// GetUserBooks joins library entries to their catalog books. The inner
// join drops entries whose book id no longer resolves.
func (s *Store) GetUserBooks(ctx context.Context, userID int, status librarymodel.Status) ([]*librarymodel.BookWithUserData, error) {
	query := `
		SELECT
			b.id, b.title, b.author, b.isbn, b.cover_image, b.description,
			b.total_pages, b.published_year, b.genres, b.average_rating, b.created_at,
			ub.id, ub.user_id, ub.book_id, ub.status, ub.current_page,
			ub.started_at, ub.completed_at, ub.rating, ub.created_at
		FROM user_books ub
		JOIN books b ON b.id = ub.book_id
		WHERE ub.user_id = $1 AND ($2 = '' OR ub.status = $2)
		ORDER BY ub.id
	`

	rows, err := s.pool.Query(ctx, query, userID, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to list user books: %w", err)
	}
	defer rows.Close()

	result := []*librarymodel.BookWithUserData{}
	for rows.Next() {
		item := &librarymodel.BookWithUserData{UserBook: &librarymodel.UserBook{}}
		ub := item.UserBook
		var genres []string
		var status string

		err := rows.Scan(
			&item.ID, &item.Title, &item.Author, &item.ISBN, &item.CoverImage,
			&item.Description, &item.TotalPages, &item.PublishedYear,
			pq.Array(&genres), &item.AverageRating, &item.Book.CreatedAt,
			&ub.ID, &ub.UserID, &ub.BookID, &status, &ub.CurrentPage,
			&ub.StartedAt, &ub.CompletedAt, &ub.Rating, &ub.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user book: %w", err)
		}

		ub.Status = librarymodel.Status(status)
		item.Genres = genres
		item.UserRating = ub.Rating
		item.Progress = librarymodel.ProgressPercent(ub.CurrentPage, item.TotalPages)
		result = append(result, item)
	}
	return result, rows.Err()
}

func (s *Store) GetUserBook(ctx context.Context, userID, bookID int) (*librarymodel.UserBook, error) {
	query := `SELECT ` + userBookColumns + ` FROM user_books WHERE user_id = $1 AND book_id = $2`
	return scanUserBook(s.pool.QueryRow(ctx, query, userID, bookID))
}

func (s *Store) AddUserBook(ctx context.Context, nub librarymodel.NewUserBook) (*librarymodel.UserBook, error) {
	query := `
		INSERT INTO user_books (
			user_id, book_id, status, current_page,
			started_at, completed_at, rating, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + userBookColumns

	ub, err := scanUserBook(s.pool.QueryRow(ctx, query,
		nub.UserID, nub.BookID, string(nub.Status), nub.CurrentPage,
		nub.StartedAt, nub.CompletedAt, nub.Rating, s.clock(),
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, librarymodel.ErrAlreadyInLibrary
		}
		return nil, fmt.Errorf("failed to add user book: %w", err)
	}
	return ub, nil
}

func (s *Store) UpdateUserBook(ctx context.Context, userID, bookID int, patch librarymodel.UserBookPatch) (*librarymodel.UserBook, error) {
	var updated *librarymodel.UserBook

	err := s.inTx(ctx, func(tx pgx.Tx) error {
		query := `SELECT ` + userBookColumns + ` FROM user_books
			WHERE user_id = $1 AND book_id = $2 FOR UPDATE`
		ub, err := scanUserBook(tx.QueryRow(ctx, query, userID, bookID))
		if err != nil {
			return err
		}

		if patch.Status != nil {
			ub.Status = *patch.Status
		}
		if patch.CurrentPage != nil {
			ub.CurrentPage = *patch.CurrentPage
		}
		if patch.StartedAt != nil {
			ub.StartedAt = patch.StartedAt
		}
		if patch.CompletedAt != nil {
			ub.CompletedAt = patch.CompletedAt
		}
		if patch.Rating != nil {
			ub.Rating = patch.Rating
		}

		_, err = tx.Exec(ctx, `
			UPDATE user_books
			SET status = $1, current_page = $2, started_at = $3,
			    completed_at = $4, rating = $5
			WHERE id = $6`,
			string(ub.Status), ub.CurrentPage, ub.StartedAt,
			ub.CompletedAt, ub.Rating, ub.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update user book: %w", err)
		}

		updated = ub
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func scanUserBook(row pgx.Row) (*librarymodel.UserBook, error) {
	ub := &librarymodel.UserBook{}
	var status string

	err := row.Scan(
		&ub.ID, &ub.UserID, &ub.BookID, &status, &ub.CurrentPage,
		&ub.StartedAt, &ub.CompletedAt, &ub.Rating, &ub.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, librarymodel.ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get user book: %w", err)
	}

	ub.Status = librarymodel.Status(status)
	return ub, nil
}
