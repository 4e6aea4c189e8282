package store

import (
	"fmt"
	"hash/fnv"
	"time"

	bookmodel "readtrack-backend/internal/domains/book/model"
)

const (
	scoreBase       = 50
	scoreGenreBonus = 30
	scoreJitterMod  = 20
	scoreMin        = 60
	scoreMax        = 99
)

// MatchScore scores one candidate book for one user. Scoring is
// deterministic: base 50, +30 when a book genre intersects the user's
// favorites, plus a stable per-(user, book) jitter in [0,19], clamped to
// [60,99]. Genre matches land in [80,99] and non-matches in [60,69], so
// a matching candidate always outranks a non-matching one.
func MatchScore(userID int, book *bookmodel.Book, favorites []string) int {
	score := scoreBase + scoreJitter(userID, book.ID)
	if len(favorites) > 0 && book.HasGenre(favorites) {
		score += scoreGenreBonus
	}
	if score < scoreMin {
		score = scoreMin
	}
	if score > scoreMax {
		score = scoreMax
	}
	return score
}

// scoreJitter replaces the original's random tie-breaker with a stable
// hash so repeated calls rank identically.
func scoreJitter(userID, bookID int) int {
	h := fnv.New32a()
	fmt.Fprintf(h, "%d:%d", userID, bookID)
	return int(h.Sum32() % scoreJitterMod)
}

// MatchReason names the first favorite genre the book shares, or falls
// back to a generic blurb when there is no overlap.
func MatchReason(book *bookmodel.Book, favorites []string) string {
	for _, fav := range favorites {
		if book.HasGenre([]string{fav}) {
			return fmt.Sprintf("Based on your interest in %s", fav)
		}
	}
	return "Readers like you enjoyed these great books"
}

// DayKey buckets an instant into its local calendar day.
func DayKey(t time.Time) string {
	return t.Local().Format("2006-01-02")
}

// StreakDays counts consecutive active calendar days ending at now. The
// walk starts at today, falling back to yesterday so a quiet morning
// does not zero the streak mid-day.
func StreakDays(active map[string]bool, now time.Time) int {
	day := now
	if !active[DayKey(day)] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for active[DayKey(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
