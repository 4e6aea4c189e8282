package memory

import (
	"context"
	"sort"

	librarymodel "readtrack-backend/internal/domains/library/model"
)

// GetUserBooks joins the user's library entries to their catalog books.
// Entries whose book is gone are dropped, never returned half-filled.
// Order is per-user insertion order (ascending entry id).
func (s *Store) GetUserBooks(ctx context.Context, userID int, status librarymodel.Status) ([]*librarymodel.BookWithUserData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.entriesByID(userID)

	result := []*librarymodel.BookWithUserData{}
	for _, ub := range entries {
		if status != "" && ub.Status != status {
			continue
		}
		book, ok := s.books[ub.BookID]
		if !ok {
			continue
		}
		entry := cloneUserBook(ub)
		result = append(result, &librarymodel.BookWithUserData{
			Book:       *cloneBook(book),
			UserBook:   entry,
			UserRating: entry.Rating,
			Progress:   librarymodel.ProgressPercent(entry.CurrentPage, book.TotalPages),
		})
	}
	return result, nil
}

func (s *Store) GetUserBook(ctx context.Context, userID, bookID int) (*librarymodel.UserBook, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ub, ok := s.userBooks[userID][bookID]
	if !ok {
		return nil, librarymodel.ErrEntryNotFound
	}
	return cloneUserBook(ub), nil
}

// AddUserBook inserts a library entry. A second entry for the same
// (userId, bookId) is a conflict, not an overwrite.
func (s *Store) AddUserBook(ctx context.Context, nub librarymodel.NewUserBook) (*librarymodel.UserBook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.userBooks[nub.UserID][nub.BookID]; exists {
		return nil, librarymodel.ErrAlreadyInLibrary
	}

	ub := &librarymodel.UserBook{
		ID:          s.allocID(kindUserBooks),
		UserID:      nub.UserID,
		BookID:      nub.BookID,
		Status:      nub.Status,
		CurrentPage: nub.CurrentPage,
		StartedAt:   nub.StartedAt,
		CompletedAt: nub.CompletedAt,
		Rating:      nub.Rating,
		CreatedAt:   s.clock(),
	}
	if s.userBooks[ub.UserID] == nil {
		s.userBooks[ub.UserID] = make(map[int]*librarymodel.UserBook)
	}
	s.userBooks[ub.UserID][ub.BookID] = ub
	return cloneUserBook(ub), nil
}

func (s *Store) UpdateUserBook(ctx context.Context, userID, bookID int, patch librarymodel.UserBookPatch) (*librarymodel.UserBook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ub, ok := s.userBooks[userID][bookID]
	if !ok {
		return nil, librarymodel.ErrEntryNotFound
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
	return cloneUserBook(ub), nil
}

// entriesByID returns one user's entries ordered by entry id. Caller
// must hold mu.
func (s *Store) entriesByID(userID int) []*librarymodel.UserBook {
	entries := make([]*librarymodel.UserBook, 0, len(s.userBooks[userID]))
	for _, ub := range s.userBooks[userID] {
		entries = append(entries, ub)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}

func cloneUserBook(ub *librarymodel.UserBook) *librarymodel.UserBook {
	c := *ub
	return &c
}
