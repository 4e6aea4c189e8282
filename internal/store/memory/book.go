package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	bookmodel "readtrack-backend/internal/domains/book/model"
)

func (s *Store) GetBooks(ctx context.Context, limit, offset int) ([]*bookmodel.Book, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.booksByID()
	if offset >= len(all) {
		return []*bookmodel.Book{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	page := make([]*bookmodel.Book, 0, end-offset)
	for _, b := range all[offset:end] {
		page = append(page, cloneBook(b))
	}
	return page, nil
}

func (s *Store) GetBook(ctx context.Context, id int) (*bookmodel.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.books[id]
	if !ok {
		return nil, bookmodel.ErrBookNotFound
	}
	return cloneBook(b), nil
}

// SearchBooks matches a case-insensitive substring against title,
// author and genre labels.
func (s *Store) SearchBooks(ctx context.Context, query string) ([]*bookmodel.Book, error) {
	term := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := []*bookmodel.Book{}
	for _, b := range s.booksByID() {
		if bookMatches(b, term) {
			matches = append(matches, cloneBook(b))
		}
	}
	return matches, nil
}

func bookMatches(b *bookmodel.Book, term string) bool {
	if strings.Contains(strings.ToLower(b.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(b.Author), term) {
		return true
	}
	for _, g := range b.Genres {
		if strings.Contains(strings.ToLower(g), term) {
			return true
		}
	}
	return false
}

func (s *Store) CreateBook(ctx context.Context, nb bookmodel.NewBook) (*bookmodel.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := &bookmodel.Book{
		ID:            s.allocID(kindBooks),
		Title:         nb.Title,
		Author:        nb.Author,
		ISBN:          nb.ISBN,
		CoverImage:    nb.CoverImage,
		Description:   nb.Description,
		TotalPages:    nb.TotalPages,
		PublishedYear: nb.PublishedYear,
		Genres:        append([]string(nil), nb.Genres...),
		AverageRating: decimal.Zero,
		CreatedAt:     s.clock(),
	}
	s.books[b.ID] = b
	return cloneBook(b), nil
}

func (s *Store) UpdateBook(ctx context.Context, id int, patch bookmodel.BookPatch) (*bookmodel.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[id]
	if !ok {
		return nil, bookmodel.ErrBookNotFound
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
		b.Genres = append([]string(nil), (*patch.Genres)...)
	}
	if patch.AverageRating != nil {
		b.AverageRating = *patch.AverageRating
	}
	return cloneBook(b), nil
}

// booksByID returns the catalog ordered by id, which equals insertion
// order since ids are monotonic. Caller must hold mu.
func (s *Store) booksByID() []*bookmodel.Book {
	all := make([]*bookmodel.Book, 0, len(s.books))
	for _, b := range s.books {
		all = append(all, b)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

func cloneBook(b *bookmodel.Book) *bookmodel.Book {
	c := *b
	c.Genres = append([]string(nil), b.Genres...)
	return &c
}
