package model

import (
	"time"

	bookmodel "readtrack-backend/internal/domains/book/model"
)

// Status is a library entry's reading state.
type Status string

const (
	StatusWantToRead Status = "want-to-read"
	StatusReading    Status = "reading"
	StatusCompleted  Status = "completed"
	StatusDNF        Status = "dnf"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusWantToRead, StatusReading, StatusCompleted, StatusDNF:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// UserBook is a user's relationship to one catalog book: at most one
// entry per (UserID, BookID), carrying status, progress and an optional
// 1-5 star rating. Entries are never deleted.
type UserBook struct {
	ID          int        `json:"id"`
	UserID      int        `json:"userId"`
	BookID      int        `json:"bookId"`
	Status      Status     `json:"status"`
	CurrentPage int        `json:"currentPage"`
	StartedAt   *time.Time `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt"`
	Rating      *int       `json:"rating"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// NewUserBook carries caller-settable fields for adding a book to a library.
type NewUserBook struct {
	UserID      int
	BookID      int
	Status      Status
	CurrentPage int
	StartedAt   *time.Time
	CompletedAt *time.Time
	Rating      *int
}

// UserBookPatch enumerates the mutable entry fields. Nil means "leave
// unchanged".
type UserBookPatch struct {
	Status      *Status
	CurrentPage *int
	StartedAt   *time.Time
	CompletedAt *time.Time
	Rating      *int
}

// BookWithUserData is a derived view joining a library entry to its
// catalog book. Progress is a whole percentage; 0 when the book has no
// pages or no progress was recorded.
type BookWithUserData struct {
	bookmodel.Book
	UserBook   *UserBook `json:"userBook"`
	UserRating *int      `json:"userRating,omitempty"`
	Progress   int       `json:"progress"`
}

// ProgressPercent computes round(currentPage/totalPages*100), guarding
// the totalPages==0 case.
func ProgressPercent(currentPage, totalPages int) int {
	if currentPage <= 0 || totalPages <= 0 {
		return 0
	}
	return int(float64(currentPage)/float64(totalPages)*100 + 0.5)
}
