package model

import "time"

// ReadingSession is a scheduled reading slot on a user's calendar.
type ReadingSession struct {
	ID            int        `json:"id"`
	UserID        int        `json:"userId"`
	BookID        int        `json:"bookId"`
	ScheduledDate time.Time  `json:"scheduledDate"`
	Duration      *int       `json:"duration"` // minutes
	IsCompleted   bool       `json:"isCompleted"`
	ReminderSent  bool       `json:"reminderSent"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// NewReadingSession carries caller-settable fields. IsCompleted and
// ReminderSent start false.
type NewReadingSession struct {
	UserID        int
	BookID        int
	ScheduledDate time.Time
	Duration      *int
}

// ReadingSessionPatch enumerates the mutable session fields. Nil means
// "leave unchanged".
type ReadingSessionPatch struct {
	ScheduledDate *time.Time
	Duration      *int
	IsCompleted   *bool
	ReminderSent  *bool
}
