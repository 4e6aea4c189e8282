package model

import "time"

// User is an account record. Password holds a bcrypt hash and never
// leaves the process in a response body.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Email     string    `json:"email"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUser carries caller-settable fields for an account insert. Password
// must already be hashed.
type NewUser struct {
	Username string
	Password string
	Email    string
	Avatar   *string
}

// ReminderSettings configures reading reminders. Time is a 24h "HH:MM"
// wall-clock string; Frequency is "daily", "weekdays" or "weekends".
type ReminderSettings struct {
	Enabled   bool   `json:"enabled"`
	Time      string `json:"time"`
	Frequency string `json:"frequency"`
}

// UserPreferences is a user's one-per-account settings record.
type UserPreferences struct {
	ID               int               `json:"id"`
	UserID           int               `json:"userId"`
	FavoriteGenres   []string          `json:"favoriteGenres"`
	ReadingGoal      int               `json:"readingGoal"` // books per year
	ReminderSettings *ReminderSettings `json:"reminderSettings"`
	CreatedAt        time.Time         `json:"createdAt"`
}

// NewUserPreferences carries caller-settable fields for the settings
// insert. A ReadingGoal of 0 takes the default of 12.
type NewUserPreferences struct {
	UserID           int
	FavoriteGenres   []string
	ReadingGoal      int
	ReminderSettings *ReminderSettings
}

// UserPreferencesPatch enumerates the mutable settings fields. Nil means
// "leave unchanged".
type UserPreferencesPatch struct {
	FavoriteGenres   *[]string
	ReadingGoal      *int
	ReminderSettings *ReminderSettings
}

// ReadingStats is the derived dashboard aggregate. It is computed on
// demand from live library and session data, never stored.
type ReadingStats struct {
	BooksReadThisYear int     `json:"booksReadThisYear"`
	CurrentStreak     int     `json:"currentStreak"` // consecutive days
	TotalPages        int     `json:"totalPages"`
	AverageRating     float64 `json:"averageRating"`
	FavoriteGenre     string  `json:"favoriteGenre"`
}
