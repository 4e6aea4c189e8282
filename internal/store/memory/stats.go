package memory

import (
	"context"
	"time"

	librarymodel "readtrack-backend/internal/domains/library/model"
	usermodel "readtrack-backend/internal/domains/user/model"
	"readtrack-backend/internal/store"
)

// GetReadingStats aggregates the user's library history. Nothing here is
// cached or maintained incrementally; every call walks the live data.
func (s *Store) GetReadingStats(ctx context.Context, userID int) (*usermodel.ReadingStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.clock()
	currentYear := now.Year()

	booksReadThisYear := 0
	totalPages := 0
	ratingSum := 0
	ratingCount := 0

	for _, ub := range s.userBooks[userID] {
		if ub.Status == librarymodel.StatusCompleted {
			if ub.CompletedAt != nil && ub.CompletedAt.Year() == currentYear {
				booksReadThisYear++
			}
			if book, ok := s.books[ub.BookID]; ok {
				totalPages += book.TotalPages
			}
		}
		if ub.Rating != nil {
			ratingSum += *ub.Rating
			ratingCount++
		}
	}

	averageRating := 0.0
	if ratingCount > 0 {
		averageRating = float64(ratingSum) / float64(ratingCount)
	}

	favoriteGenre := "Fiction"
	if prefs, ok := s.prefs[userID]; ok && len(prefs.FavoriteGenres) > 0 {
		favoriteGenre = prefs.FavoriteGenres[0]
	}

	return &usermodel.ReadingStats{
		BooksReadThisYear: booksReadThisYear,
		CurrentStreak:     s.streakDays(userID, now),
		TotalPages:        totalPages,
		AverageRating:     averageRating,
		FavoriteGenre:     favoriteGenre,
	}, nil
}

// streakDays collects the user's active reading days. A day counts if
// it holds a completed reading session (by scheduled date) or a
// library-entry completion (by completedAt). Caller must hold mu.
func (s *Store) streakDays(userID int, now time.Time) int {
	active := make(map[string]bool)

	for _, sess := range s.sessions {
		if sess.UserID == userID && sess.IsCompleted {
			active[store.DayKey(sess.ScheduledDate)] = true
		}
	}
	for _, ub := range s.userBooks[userID] {
		if ub.CompletedAt != nil {
			active[store.DayKey(*ub.CompletedAt)] = true
		}
	}

	return store.StreakDays(active, now)
}
