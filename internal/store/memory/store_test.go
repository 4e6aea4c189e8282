package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookmodel "readtrack-backend/internal/domains/book/model"
	librarymodel "readtrack-backend/internal/domains/library/model"
	reviewmodel "readtrack-backend/internal/domains/review/model"
	usermodel "readtrack-backend/internal/domains/user/model"
)

func TestSeededData(t *testing.T) {
	s := New()
	ctx := context.Background()

	u, err := s.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "sarah_m", u.Username)

	books, err := s.GetBooks(ctx, 20, 0)
	require.NoError(t, err)
	require.Len(t, books, 4)
	assert.Equal(t, "The Midnight Library", books[0].Title)
	assert.Equal(t, "4.2", books[0].AverageRating.String())

	entries, err := s.GetUserBooks(ctx, 1, "")
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	prefs, err := s.GetUserPreferences(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fiction", "Science Fiction", "Self-Help"}, prefs.FavoriteGenres)
	assert.Equal(t, 30, prefs.ReadingGoal)
}

func TestIDsMonotonicAndNeverReused(t *testing.T) {
	s := New()
	ctx := context.Background()

	first, err := s.CreateReview(ctx, reviewmodel.NewReview{UserID: 1, BookID: 1, Rating: 4, Content: "ok"})
	require.NoError(t, err)
	second, err := s.CreateReview(ctx, reviewmodel.NewReview{UserID: 1, BookID: 2, Rating: 5, Content: "good"})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	deleted, err := s.DeleteReview(ctx, second.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	third, err := s.CreateReview(ctx, reviewmodel.NewReview{UserID: 1, BookID: 3, Rating: 3, Content: "fine"})
	require.NoError(t, err)
	assert.Greater(t, third.ID, second.ID, "ids must not be reused after deletion")
}

func TestCreateUserRejectsDuplicates(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.CreateUser(ctx, usermodel.NewUser{Username: "sarah_m", Password: "x", Email: "other@example.com"})
	assert.ErrorIs(t, err, usermodel.ErrUsernameTaken)

	_, err = s.CreateUser(ctx, usermodel.NewUser{Username: "other", Password: "x", Email: "sarah@example.com"})
	assert.ErrorIs(t, err, usermodel.ErrEmailTaken)
}

func TestGetBooksPagination(t *testing.T) {
	s := New()
	ctx := context.Background()

	page, err := s.GetBooks(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, 2, page[0].ID)
	assert.Equal(t, 3, page[1].ID)

	empty, err := s.GetBooks(ctx, 10, 100)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSearchBooks(t *testing.T) {
	s := New()
	ctx := context.Background()

	byTitle, err := s.SearchBooks(ctx, "midnight")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "The Midnight Library", byTitle[0].Title)

	byGenre, err := s.SearchBooks(ctx, "science fiction")
	require.NoError(t, err)
	require.Len(t, byGenre, 1)
	assert.Equal(t, "Project Hail Mary", byGenre[0].Title)

	byAuthor, err := s.SearchBooks(ctx, "weir")
	require.NoError(t, err)
	assert.Len(t, byAuthor, 1)
}

func TestUpdateBookPatch(t *testing.T) {
	s := New()
	ctx := context.Background()

	pages := 512
	updated, err := s.UpdateBook(ctx, 4, bookmodel.BookPatch{TotalPages: &pages})
	require.NoError(t, err)
	assert.Equal(t, 512, updated.TotalPages)
	assert.Equal(t, "Project Hail Mary", updated.Title, "unpatched fields stay put")

	_, err = s.UpdateBook(ctx, 999, bookmodel.BookPatch{TotalPages: &pages})
	assert.ErrorIs(t, err, bookmodel.ErrBookNotFound)
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name        string
		currentPage int
		totalPages  int
		want        int
	}{
		{"half way", 150, 300, 50},
		{"rounds up", 204, 300, 68},
		{"rounds down", 1, 3, 33},
		{"complete", 300, 300, 100},
		{"zero pages", 10, 0, 0},
		{"no progress", 0, 300, 0},
		{"negative guard", -5, 300, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, librarymodel.ProgressPercent(tt.currentPage, tt.totalPages))
		})
	}
}

func TestGetUserBooksJoinAndFilter(t *testing.T) {
	s := newEmpty()
	ctx := context.Background()

	_, err := s.CreateUser(ctx, usermodel.NewUser{Username: "reader", Password: "x", Email: "r@example.com"})
	require.NoError(t, err)
	book, err := s.CreateBook(ctx, bookmodel.NewBook{Title: "One Book", Author: "A. Writer", TotalPages: 300})
	require.NoError(t, err)

	_, err = s.AddUserBook(ctx, librarymodel.NewUserBook{
		UserID: 1, BookID: book.ID, Status: librarymodel.StatusReading, CurrentPage: 150,
	})
	require.NoError(t, err)

	entries, err := s.GetUserBooks(ctx, 1, "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 50, entries[0].Progress)
	assert.Equal(t, "One Book", entries[0].Title)
	require.NotNil(t, entries[0].UserBook)
	assert.Equal(t, librarymodel.StatusReading, entries[0].UserBook.Status)

	completed, err := s.GetUserBooks(ctx, 1, librarymodel.StatusCompleted)
	require.NoError(t, err)
	assert.Empty(t, completed)

	reading, err := s.GetUserBooks(ctx, 1, librarymodel.StatusReading)
	require.NoError(t, err)
	assert.Len(t, reading, 1)
}

func TestGetUserBooksDropsDanglingEntries(t *testing.T) {
	s := New()
	ctx := context.Background()

	// Entry pointing at a book id that was never created.
	_, err := s.AddUserBook(ctx, librarymodel.NewUserBook{
		UserID: 1, BookID: 999, Status: librarymodel.StatusWantToRead,
	})
	require.NoError(t, err)

	entries, err := s.GetUserBooks(ctx, 1, "")
	require.NoError(t, err)
	assert.Len(t, entries, 2, "dangling entry is dropped, not returned half-filled")
	for _, e := range entries {
		assert.NotEqual(t, 999, e.UserBook.BookID)
	}
}

func TestAddUserBookDuplicateIsConflict(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.AddUserBook(ctx, librarymodel.NewUserBook{
		UserID: 1, BookID: 1, Status: librarymodel.StatusCompleted,
	})
	assert.ErrorIs(t, err, librarymodel.ErrAlreadyInLibrary)

	// The original entry survives untouched.
	ub, err := s.GetUserBook(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, librarymodel.StatusReading, ub.Status)
	assert.Equal(t, 204, ub.CurrentPage)
}

func TestUpdateUserBookNotFoundDoesNotMutate(t *testing.T) {
	s := New()
	ctx := context.Background()

	page := 50
	_, err := s.UpdateUserBook(ctx, 1, 999, librarymodel.UserBookPatch{CurrentPage: &page})
	assert.ErrorIs(t, err, librarymodel.ErrEntryNotFound)

	entries, err := s.GetUserBooks(ctx, 1, "")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestUpdateUserBookByCompositeKey(t *testing.T) {
	s := New()
	ctx := context.Background()

	done := librarymodel.StatusCompleted
	when := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	rating := 5
	updated, err := s.UpdateUserBook(ctx, 1, 1, librarymodel.UserBookPatch{
		Status:      &done,
		CompletedAt: &when,
		Rating:      &rating,
	})
	require.NoError(t, err)
	assert.Equal(t, librarymodel.StatusCompleted, updated.Status)
	assert.Equal(t, 204, updated.CurrentPage, "unpatched fields stay put")
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 5, *updated.Rating)
}
