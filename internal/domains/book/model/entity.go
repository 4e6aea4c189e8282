package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Book is a shared catalog record. The catalog is append-only: books are
// created and patched but never deleted, so ids stay stable for library
// entries and reviews that point at them.
type Book struct {
	ID            int             `json:"id"`
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	ISBN          *string         `json:"isbn"`
	CoverImage    *string         `json:"coverImage"`
	Description   *string         `json:"description"`
	TotalPages    int             `json:"totalPages"`
	PublishedYear *int            `json:"publishedYear"`
	Genres        []string        `json:"genres"`
	AverageRating decimal.Decimal `json:"averageRating"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// HasGenre reports whether any of the book's genre labels appears in
// genres. Comparison is exact; labels are stored canonically.
func (b *Book) HasGenre(genres []string) bool {
	for _, g := range b.Genres {
		for _, want := range genres {
			if g == want {
				return true
			}
		}
	}
	return false
}

// NewBook carries caller-settable fields for a catalog insert.
// AverageRating starts at zero.
type NewBook struct {
	Title         string
	Author        string
	ISBN          *string
	CoverImage    *string
	Description   *string
	TotalPages    int
	PublishedYear *int
	Genres        []string
}

// BookPatch enumerates the mutable catalog fields. Nil means "leave
// unchanged".
type BookPatch struct {
	Title         *string
	Author        *string
	ISBN          *string
	CoverImage    *string
	Description   *string
	TotalPages    *int
	PublishedYear *int
	Genres        *[]string
	AverageRating *decimal.Decimal
}

// RecommendationWithMatch is a catalog book scored for one user.
type RecommendationWithMatch struct {
	Book
	MatchPercentage int    `json:"matchPercentage"`
	Reason          string `json:"reason"`
}
