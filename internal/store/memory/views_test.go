package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookmodel "readtrack-backend/internal/domains/book/model"
	librarymodel "readtrack-backend/internal/domains/library/model"
	reviewmodel "readtrack-backend/internal/domains/review/model"
	sessionmodel "readtrack-backend/internal/domains/session/model"
	usermodel "readtrack-backend/internal/domains/user/model"
)

func TestGetReviewsJoinsUserAndBook(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreateReview(ctx, reviewmodel.NewReview{
		UserID: 1, BookID: 1, Rating: 5, Content: "Loved every page.",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, created.LikesCount)
	assert.False(t, created.IsTrailerStyle)

	rows, err := s.GetReviews(ctx, reviewmodel.ReviewFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "sarah_m", rows[0].User.Username)
	assert.Equal(t, "The Midnight Library", rows[0].Book.Title)
	assert.Equal(t, "Matt Haig", rows[0].Book.Author)
}

func TestGetReviewsFiltersAreConjunctive(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, bookID := range []int{1, 1, 2} {
		_, err := s.CreateReview(ctx, reviewmodel.NewReview{
			UserID: 1, BookID: bookID, Rating: 4, Content: "solid",
		})
		require.NoError(t, err)
	}

	one := 1
	two := 2
	byBook, err := s.GetReviews(ctx, reviewmodel.ReviewFilter{BookID: &one})
	require.NoError(t, err)
	assert.Len(t, byBook, 2)

	both, err := s.GetReviews(ctx, reviewmodel.ReviewFilter{BookID: &two, UserID: &one})
	require.NoError(t, err)
	assert.Len(t, both, 1)

	none, err := s.GetReviews(ctx, reviewmodel.ReviewFilter{BookID: &two, UserID: &two})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetReviewsLimitAppliesAfterFilter(t *testing.T) {
	s := New()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.CreateReview(ctx, reviewmodel.NewReview{
			UserID: 1, BookID: 1, Rating: 3, Content: fmt.Sprintf("take %d", i),
		})
		require.NoError(t, err)
		_, err = s.CreateReview(ctx, reviewmodel.NewReview{
			UserID: 1, BookID: 2, Rating: 3, Content: fmt.Sprintf("other %d", i),
		})
		require.NoError(t, err)
	}

	one := 1
	rows, err := s.GetReviews(ctx, reviewmodel.ReviewFilter{BookID: &one, Limit: 3})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.Equal(t, 1, r.BookID)
	}
}

func TestDeleteReviewAbsentReturnsFalse(t *testing.T) {
	s := New()
	ctx := context.Background()

	deleted, err := s.DeleteReview(ctx, 42)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestUpdateReviewNotFound(t *testing.T) {
	s := New()
	ctx := context.Background()

	likes := 10
	_, err := s.UpdateReview(ctx, 42, reviewmodel.ReviewPatch{LikesCount: &likes})
	assert.ErrorIs(t, err, reviewmodel.ErrReviewNotFound)
}

func TestGetReadingSessionsByDate(t *testing.T) {
	s := New()
	ctx := context.Background()

	morning := time.Date(2026, 8, 10, 8, 0, 0, 0, time.Local)
	evening := time.Date(2026, 8, 10, 21, 30, 0, 0, time.Local)
	nextDay := time.Date(2026, 8, 11, 8, 0, 0, 0, time.Local)

	for _, when := range []time.Time{morning, evening, nextDay} {
		_, err := s.CreateReadingSession(ctx, sessionmodel.NewReadingSession{
			UserID: 1, BookID: 1, ScheduledDate: when,
		})
		require.NoError(t, err)
	}

	all, err := s.GetReadingSessions(ctx, 1, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.Local)
	sameDay, err := s.GetReadingSessions(ctx, 1, &day)
	require.NoError(t, err)
	assert.Len(t, sameDay, 2, "date filter matches the calendar day, not the instant")
}

func TestListDueReminders(t *testing.T) {
	s := New()
	ctx := context.Background()

	now := time.Now()
	past, err := s.CreateReadingSession(ctx, sessionmodel.NewReadingSession{
		UserID: 1, BookID: 1, ScheduledDate: now.Add(-time.Hour),
	})
	require.NoError(t, err)
	_, err = s.CreateReadingSession(ctx, sessionmodel.NewReadingSession{
		UserID: 1, BookID: 2, ScheduledDate: now.Add(time.Hour),
	})
	require.NoError(t, err)

	due, err := s.ListDueReminders(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, past.ID, due[0].ID)

	sent := true
	_, err = s.UpdateReadingSession(ctx, past.ID, sessionmodel.ReadingSessionPatch{ReminderSent: &sent})
	require.NoError(t, err)

	due, err = s.ListDueReminders(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, due, "a sent reminder never fires again")
}

func TestListDueRemindersHonorsPreferences(t *testing.T) {
	s := newEmpty()
	ctx := context.Background()

	_, err := s.CreateUser(ctx, usermodel.NewUser{Username: "quiet", Password: "x", Email: "q@example.com"})
	require.NoError(t, err)
	_, err = s.CreateReadingSession(ctx, sessionmodel.NewReadingSession{
		UserID: 1, BookID: 1, ScheduledDate: time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)

	// No preferences row at all means no reminders.
	due, err := s.ListDueReminders(ctx, time.Now())
	require.NoError(t, err)
	assert.Empty(t, due)

	_, err = s.CreateUserPreferences(ctx, usermodel.NewUserPreferences{
		UserID:           1,
		ReminderSettings: &usermodel.ReminderSettings{Enabled: false, Time: "20:00", Frequency: "daily"},
	})
	require.NoError(t, err)

	due, err = s.ListDueReminders(ctx, time.Now())
	require.NoError(t, err)
	assert.Empty(t, due, "disabled reminders stay silent")

	_, err = s.UpdateUserPreferences(ctx, 1, usermodel.UserPreferencesPatch{
		ReminderSettings: &usermodel.ReminderSettings{Enabled: true, Time: "20:00", Frequency: "daily"},
	})
	require.NoError(t, err)

	due, err = s.ListDueReminders(ctx, time.Now())
	require.NoError(t, err)
	assert.Len(t, due, 1)
}

func TestPreferencesLifecycle(t *testing.T) {
	s := newEmpty()
	ctx := context.Background()

	_, err := s.GetUserPreferences(ctx, 1)
	assert.ErrorIs(t, err, usermodel.ErrPreferencesNotFound)

	created, err := s.CreateUserPreferences(ctx, usermodel.NewUserPreferences{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, 12, created.ReadingGoal, "goal defaults when omitted")

	_, err = s.CreateUserPreferences(ctx, usermodel.NewUserPreferences{UserID: 1})
	assert.ErrorIs(t, err, usermodel.ErrPreferencesExist)

	goal := 50
	genres := []string{"Horror"}
	updated, err := s.UpdateUserPreferences(ctx, 1, usermodel.UserPreferencesPatch{
		ReadingGoal:    &goal,
		FavoriteGenres: &genres,
	})
	require.NoError(t, err)
	assert.Equal(t, 50, updated.ReadingGoal)
	assert.Equal(t, []string{"Horror"}, updated.FavoriteGenres)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestReadingStats(t *testing.T) {
	s := New()
	ctx := context.Background()

	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.Local)
	s.clock = fixedClock(now)

	thisYear := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	lastYear := time.Date(2025, 11, 1, 0, 0, 0, 0, time.Local)
	done := librarymodel.StatusCompleted
	rating4 := 4
	rating5 := 5

	// Book 1 (300pp) finished this year, book 2 (320pp) finished last year.
	_, err := s.UpdateUserBook(ctx, 1, 1, librarymodel.UserBookPatch{
		Status: &done, CompletedAt: &thisYear, Rating: &rating4,
	})
	require.NoError(t, err)
	_, err = s.UpdateUserBook(ctx, 1, 2, librarymodel.UserBookPatch{
		Status: &done, CompletedAt: &lastYear, Rating: &rating5,
	})
	require.NoError(t, err)

	stats, err := s.GetReadingStats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.BooksReadThisYear)
	assert.Equal(t, 620, stats.TotalPages, "all completed books count toward pages, regardless of year")
	assert.InDelta(t, 4.5, stats.AverageRating, 0.0001)
	assert.Equal(t, "Fiction", stats.FavoriteGenre, "first preferred genre wins")
}

func TestReadingStatsEmptyUser(t *testing.T) {
	s := newEmpty()
	ctx := context.Background()

	_, err := s.CreateUser(ctx, usermodel.NewUser{Username: "fresh", Password: "x", Email: "f@example.com"})
	require.NoError(t, err)

	stats, err := s.GetReadingStats(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, stats.BooksReadThisYear)
	assert.Zero(t, stats.TotalPages)
	assert.Zero(t, stats.AverageRating)
	assert.Zero(t, stats.CurrentStreak)
	assert.Equal(t, "Fiction", stats.FavoriteGenre, "fallback genre when no preferences exist")
}

func TestCurrentStreak(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.Local)
	completed := true

	addSession := func(t *testing.T, s *Store, daysAgo int) {
		t.Helper()
		ctx := context.Background()
		created, err := s.CreateReadingSession(ctx, sessionmodel.NewReadingSession{
			UserID: 1, BookID: 1, ScheduledDate: now.AddDate(0, 0, -daysAgo),
		})
		require.NoError(t, err)
		_, err = s.UpdateReadingSession(ctx, created.ID, sessionmodel.ReadingSessionPatch{IsCompleted: &completed})
		require.NoError(t, err)
	}

	t.Run("counts back from today", func(t *testing.T) {
		s := New()
		s.clock = fixedClock(now)
		addSession(t, s, 0)
		addSession(t, s, 1)
		addSession(t, s, 2)

		stats, err := s.GetReadingStats(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.CurrentStreak)
	})

	t.Run("yesterday keeps the streak alive", func(t *testing.T) {
		s := New()
		s.clock = fixedClock(now)
		addSession(t, s, 1)
		addSession(t, s, 2)

		stats, err := s.GetReadingStats(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.CurrentStreak)
	})

	t.Run("a gap resets the run", func(t *testing.T) {
		s := New()
		s.clock = fixedClock(now)
		addSession(t, s, 0)
		addSession(t, s, 2)
		addSession(t, s, 3)

		stats, err := s.GetReadingStats(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.CurrentStreak)
	})

	t.Run("incomplete sessions do not count", func(t *testing.T) {
		s := New()
		s.clock = fixedClock(now)
		_, err := s.CreateReadingSession(context.Background(), sessionmodel.NewReadingSession{
			UserID: 1, BookID: 1, ScheduledDate: now,
		})
		require.NoError(t, err)

		stats, err := s.GetReadingStats(context.Background(), 1)
		require.NoError(t, err)
		assert.Zero(t, stats.CurrentStreak)
	})
}

func TestRecommendationsExcludeLibraryBooks(t *testing.T) {
	s := New()
	ctx := context.Background()

	recs, err := s.GetRecommendations(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, recs, 2, "seeded user already shelves books 1 and 2")
	for _, r := range recs {
		assert.NotContains(t, []int{1, 2}, r.ID)
	}
}

func TestRecommendationsScoreBoundsAndRanking(t *testing.T) {
	s := New()
	ctx := context.Background()

	// A candidate sharing no genre with the user's favorites.
	offGenre, err := s.CreateBook(ctx, bookmodel.NewBook{
		Title: "It Ends with Us", Author: "Colleen Hoover", TotalPages: 384,
		Genres: []string{"Romance"},
	})
	require.NoError(t, err)

	recs, err := s.GetRecommendations(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	byID := map[int]*bookmodel.RecommendationWithMatch{}
	for _, r := range recs {
		assert.GreaterOrEqual(t, r.MatchPercentage, 60)
		assert.LessOrEqual(t, r.MatchPercentage, 99)
		byID[r.ID] = r
	}

	// Genre matches score in 80-99, non-matches in 60-69, so every
	// match outranks every non-match.
	assert.GreaterOrEqual(t, byID[3].MatchPercentage, 80)
	assert.GreaterOrEqual(t, byID[4].MatchPercentage, 80)
	assert.Less(t, byID[offGenre.ID].MatchPercentage, 70)
	assert.Equal(t, offGenre.ID, recs[len(recs)-1].ID)

	assert.Contains(t, byID[3].Reason, "Fiction")
	assert.Contains(t, byID[offGenre.ID].Reason, "great books")
}

func TestRecommendationsAreDeterministic(t *testing.T) {
	s := New()
	ctx := context.Background()

	first, err := s.GetRecommendations(ctx, 1, 6)
	require.NoError(t, err)
	second, err := s.GetRecommendations(ctx, 1, 6)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].MatchPercentage, second[i].MatchPercentage)
	}
}

func TestRecommendationsLimit(t *testing.T) {
	s := New()
	ctx := context.Background()

	recs, err := s.GetRecommendations(ctx, 1, 1)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}
