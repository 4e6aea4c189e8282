package memory

import (
	"context"
	"sort"

	bookmodel "readtrack-backend/internal/domains/book/model"
	"readtrack-backend/internal/store"
)

// GetRecommendations ranks catalog books the user has no library entry
// for (any status counts as known). Scoring lives in store.MatchScore so
// both backends rank identically.
func (s *Store) GetRecommendations(ctx context.Context, userID, limit int) ([]*bookmodel.RecommendationWithMatch, error) {
	if limit <= 0 {
		limit = 6
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var favorites []string
	if prefs, ok := s.prefs[userID]; ok {
		favorites = prefs.FavoriteGenres
	}

	known := make(map[int]bool, len(s.userBooks[userID]))
	for bookID := range s.userBooks[userID] {
		known[bookID] = true
	}

	recs := []*bookmodel.RecommendationWithMatch{}
	for _, book := range s.booksByID() {
		if known[book.ID] {
			continue
		}
		recs = append(recs, &bookmodel.RecommendationWithMatch{
			Book:            *cloneBook(book),
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
