package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	reviewmodel "readtrack-backend/internal/domains/review/model"
)

const reviewColumns = `id, user_id, book_id, rating, title, content,
	is_trailer_style, likes_count, created_at`

// GetReviews joins reviews to their author and book. Filters are
// conjunctive; Limit truncates the filtered set.
func (s *Store) GetReviews(ctx context.Context, filter reviewmodel.ReviewFilter) ([]*reviewmodel.ReviewWithUser, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filter.BookID != nil {
		conditions = append(conditions, fmt.Sprintf("r.book_id = $%d", argPos))
		args = append(args, *filter.BookID)
		argPos++
	}
	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("r.user_id = $%d", argPos))
		args = append(args, *filter.UserID)
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT
			r.id, r.user_id, r.book_id, r.rating, r.title, r.content,
			r.is_trailer_style, r.likes_count, r.created_at,
			u.id, u.username, u.avatar,
			b.id, b.title, b.author, b.cover_image
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		JOIN books b ON b.id = r.book_id
		%s
		ORDER BY r.id
		LIMIT $%d
	`, whereClause, argPos)
	args = append(args, limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	result := []*reviewmodel.ReviewWithUser{}
	for rows.Next() {
		rw := &reviewmodel.ReviewWithUser{}
		err := rows.Scan(
			&rw.ID, &rw.UserID, &rw.BookID, &rw.Rating, &rw.Title,
			&rw.Content, &rw.IsTrailerStyle, &rw.LikesCount, &rw.CreatedAt,
			&rw.User.ID, &rw.User.Username, &rw.User.Avatar,
			&rw.Book.ID, &rw.Book.Title, &rw.Book.Author, &rw.Book.CoverImage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		result = append(result, rw)
	}
	return result, rows.Err()
}

func (s *Store) GetReview(ctx context.Context, id int) (*reviewmodel.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	return scanReview(s.pool.QueryRow(ctx, query, id))
}

func (s *Store) CreateReview(ctx context.Context, nr reviewmodel.NewReview) (*reviewmodel.Review, error) {
	query := `
		INSERT INTO reviews (
			user_id, book_id, rating, title, content,
			is_trailer_style, likes_count, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, 0, $7)
		RETURNING ` + reviewColumns

	r, err := scanReview(s.pool.QueryRow(ctx, query,
		nr.UserID, nr.BookID, nr.Rating, nr.Title, nr.Content,
		nr.IsTrailerStyle, s.clock(),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return r, nil
}

func (s *Store) UpdateReview(ctx context.Context, id int, patch reviewmodel.ReviewPatch) (*reviewmodel.Review, error) {
	var updated *reviewmodel.Review

	err := s.inTx(ctx, func(tx pgx.Tx) error {
		query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1 FOR UPDATE`
		r, err := scanReview(tx.QueryRow(ctx, query, id))
		if err != nil {
			return err
		}

		if patch.Rating != nil {
			r.Rating = *patch.Rating
		}
		if patch.Title != nil {
			r.Title = patch.Title
		}
		if patch.Content != nil {
			r.Content = *patch.Content
		}
		if patch.IsTrailerStyle != nil {
			r.IsTrailerStyle = *patch.IsTrailerStyle
		}
		if patch.LikesCount != nil {
			r.LikesCount = *patch.LikesCount
		}

		_, err = tx.Exec(ctx, `
			UPDATE reviews
			SET rating = $1, title = $2, content = $3,
			    is_trailer_style = $4, likes_count = $5
			WHERE id = $6`,
			r.Rating, r.Title, r.Content, r.IsTrailerStyle, r.LikesCount, r.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update review: %w", err)
		}

		updated = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Store) DeleteReview(ctx context.Context, id int) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete review: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanReview(row pgx.Row) (*reviewmodel.Review, error) {
	r := &reviewmodel.Review{}
	err := row.Scan(
		&r.ID, &r.UserID, &r.BookID, &r.Rating, &r.Title, &r.Content,
		&r.IsTrailerStyle, &r.LikesCount, &r.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, reviewmodel.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return r, nil
}
