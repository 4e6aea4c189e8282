package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"

	bookmodel "readtrack-backend/internal/domains/book/model"
	usermodel "readtrack-backend/internal/domains/user/model"
	"readtrack-backend/internal/store"
)

// GetRecommendations ranks catalog books the user has no library entry
// for. Candidates come from SQL; scoring lives in store.MatchScore so
// both backends rank identically.
func (s *Store) GetRecommendations(ctx context.Context, userID, limit int) ([]*bookmodel.RecommendationWithMatch, error) {
	if limit <= 0 {
		limit = 6
	}

	var favorites []string
	prefs, err := s.GetUserPreferences(ctx, userID)
	if err == nil {
		favorites = prefs.FavoriteGenres
	} else if !errors.Is(err, usermodel.ErrPreferencesNotFound) {
		return nil, err
	}

	query := `
		SELECT ` + bookColumns + `
		FROM books
		WHERE id NOT IN (SELECT book_id FROM user_books WHERE user_id = $1)
		ORDER BY id
	`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendation candidates: %w", err)
	}
	defer rows.Close()

	candidates, err := scanBooks(rows)
	if err != nil {
		return nil, err
	}

	recs := make([]*bookmodel.RecommendationWithMatch, 0, len(candidates))
	for _, book := range candidates {
		recs = append(recs, &bookmodel.RecommendationWithMatch{
			Book:            *book,
			MatchPercentage: store.MatchScore(userID, book, favorites),
			Reason:          store.MatchReason(book, favorites),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].MatchPercentage > recs[j].MatchPercentage
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}
