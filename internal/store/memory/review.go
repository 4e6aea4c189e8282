package memory

import (
	"context"
	"sort"

	reviewmodel "readtrack-backend/internal/domains/review/model"
)

// GetReviews applies the conjunctive filters, truncates to the limit,
// then joins each row to its author and book. Rows missing either
// joined entity are dropped.
func (s *Store) GetReviews(ctx context.Context, filter reviewmodel.ReviewFilter) ([]*reviewmodel.ReviewWithUser, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*reviewmodel.Review, 0, len(s.reviews))
	for _, r := range s.reviews {
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	filtered := make([]*reviewmodel.Review, 0, len(all))
	for _, r := range all {
		if filter.BookID != nil && r.BookID != *filter.BookID {
			continue
		}
		if filter.UserID != nil && r.UserID != *filter.UserID {
			continue
		}
		filtered = append(filtered, r)
	}
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	result := []*reviewmodel.ReviewWithUser{}
	for _, r := range filtered {
		user, uok := s.users[r.UserID]
		book, bok := s.books[r.BookID]
		if !uok || !bok {
			continue
		}
		result = append(result, &reviewmodel.ReviewWithUser{
			Review: *r,
			User: reviewmodel.UserSummary{
				ID:       user.ID,
				Username: user.Username,
				Avatar:   user.Avatar,
			},
			Book: reviewmodel.BookSummary{
				ID:         book.ID,
				Title:      book.Title,
				Author:     book.Author,
				CoverImage: book.CoverImage,
			},
		})
	}
	return result, nil
}

func (s *Store) GetReview(ctx context.Context, id int) (*reviewmodel.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reviews[id]
	if !ok {
		return nil, reviewmodel.ErrReviewNotFound
	}
	c := *r
	return &c, nil
}

func (s *Store) CreateReview(ctx context.Context, nr reviewmodel.NewReview) (*reviewmodel.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := &reviewmodel.Review{
		ID:             s.allocID(kindReviews),
		UserID:         nr.UserID,
		BookID:         nr.BookID,
		Rating:         nr.Rating,
		Title:          nr.Title,
		Content:        nr.Content,
		IsTrailerStyle: nr.IsTrailerStyle,
		LikesCount:     0,
		CreatedAt:      s.clock(),
	}
	s.reviews[r.ID] = r
	c := *r
	return &c, nil
}

func (s *Store) UpdateReview(ctx context.Context, id int, patch reviewmodel.ReviewPatch) (*reviewmodel.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reviews[id]
	if !ok {
		return nil, reviewmodel.ErrReviewNotFound
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
	c := *r
	return &c, nil
}

// DeleteReview reports whether a review existed. The id is not reused.
func (s *Store) DeleteReview(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[id]; !ok {
		return false, nil
	}
	delete(s.reviews, id)
	return true, nil
}
