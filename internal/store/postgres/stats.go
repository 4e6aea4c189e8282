package postgres

import (
	"context"
	"fmt"
	"time"

	usermodel "readtrack-backend/internal/domains/user/model"
	"readtrack-backend/internal/store"
)

// GetReadingStats aggregates the user's library history in one query,
// then derives the streak from the user's activity days.
func (s *Store) GetReadingStats(ctx context.Context, userID int) (*usermodel.ReadingStats, error) {
	now := s.clock()

	query := `
		SELECT
			count(*) FILTER (
				WHERE ub.status = 'completed'
				  AND ub.completed_at IS NOT NULL
				  AND extract(year FROM ub.completed_at) = $2
			),
			coalesce(sum(b.total_pages) FILTER (WHERE ub.status = 'completed'), 0),
			coalesce(avg(ub.rating) FILTER (WHERE ub.rating IS NOT NULL), 0)
		FROM user_books ub
		LEFT JOIN books b ON b.id = ub.book_id
		WHERE ub.user_id = $1
	`

	stats := &usermodel.ReadingStats{}
	err := s.pool.QueryRow(ctx, query, userID, now.Year()).Scan(
		&stats.BooksReadThisYear, &stats.TotalPages, &stats.AverageRating,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate reading stats: %w", err)
	}

	stats.CurrentStreak, err = s.streakDays(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	stats.FavoriteGenre = "Fiction"
	prefs, err := s.GetUserPreferences(ctx, userID)
	if err == nil && len(prefs.FavoriteGenres) > 0 {
		stats.FavoriteGenre = prefs.FavoriteGenres[0]
	}

	return stats, nil
}

// streakDays collects active reading days (completed sessions by
// scheduled date, library completions by completed_at) and walks them
// with the shared streak rule.
func (s *Store) streakDays(ctx context.Context, userID int, now time.Time) (int, error) {
	query := `
		SELECT scheduled_date FROM reading_sessions
		WHERE user_id = $1 AND is_completed = true
		UNION ALL
		SELECT completed_at FROM user_books
		WHERE user_id = $1 AND completed_at IS NOT NULL
	`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to query activity days: %w", err)
	}
	defer rows.Close()

	active := make(map[string]bool)
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return 0, fmt.Errorf("failed to scan activity day: %w", err)
		}
		active[store.DayKey(day)] = true
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	return store.StreakDays(active, now), nil
}
