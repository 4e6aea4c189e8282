package model

import "time"

// Review is a user's written review of a catalog book. A user may post
// several reviews for the same book.
type Review struct {
	ID             int       `json:"id"`
	UserID         int       `json:"userId"`
	BookID         int       `json:"bookId"`
	Rating         int       `json:"rating"` // 1-5
	Title          *string   `json:"title"`
	Content        string    `json:"content"`
	IsTrailerStyle bool      `json:"isTrailerStyle"`
	LikesCount     int       `json:"likesCount"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewReview carries caller-settable fields. LikesCount starts at 0.
type NewReview struct {
	UserID         int
	BookID         int
	Rating         int
	Title          *string
	Content        string
	IsTrailerStyle bool
}

// ReviewPatch enumerates the mutable review fields. Nil means "leave
// unchanged".
type ReviewPatch struct {
	Rating         *int
	Title          *string
	Content        *string
	IsTrailerStyle *bool
	LikesCount     *int
}

// UserSummary is the reviewer slice of a joined review row.
type UserSummary struct {
	ID       int     `json:"id"`
	Username string  `json:"username"`
	Avatar   *string `json:"avatar"`
}

// BookSummary is the book slice of a joined review row.
type BookSummary struct {
	ID         int     `json:"id"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	CoverImage *string `json:"coverImage"`
}

// ReviewWithUser is a derived view joining a review to its author and
// book. Rows whose author or book is missing are dropped, not nulled.
type ReviewWithUser struct {
	Review
	User UserSummary `json:"user"`
	Book BookSummary `json:"book"`
}

// ReviewFilter selects reviews conjunctively; Limit truncates the
// filtered set.
type ReviewFilter struct {
	BookID *int
	UserID *int
	Limit  int
}
