package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateSessionRequest schedules a reading session for the current user.
type CreateSessionRequest struct {
	BookID        int       `json:"bookId" binding:"required"`
	ScheduledDate time.Time `json:"scheduledDate" binding:"required"`
	Duration      *int      `json:"duration"`
}

func (r CreateSessionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required.Error("bookId is required"), validation.Min(1)),
		validation.Field(&r.ScheduledDate, validation.Required.Error("scheduledDate is required")),
		validation.Field(&r.Duration,
			validation.When(r.Duration != nil, validation.Min(1), validation.Max(24*60)),
		),
	)
}

// NewSession converts the request into a store insert for the given user.
func (r CreateSessionRequest) NewSession(userID int) NewReadingSession {
	return NewReadingSession{
		UserID:        userID,
		BookID:        r.BookID,
		ScheduledDate: r.ScheduledDate,
		Duration:      r.Duration,
	}
}

// UpdateSessionRequest patches a session (reschedule, mark completed,
// mark reminder sent).
type UpdateSessionRequest struct {
	ScheduledDate *time.Time `json:"scheduledDate"`
	Duration      *int       `json:"duration"`
	IsCompleted   *bool      `json:"isCompleted"`
	ReminderSent  *bool      `json:"reminderSent"`
}

func (r UpdateSessionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Duration,
			validation.When(r.Duration != nil, validation.Min(1), validation.Max(24*60)),
		),
	)
}

func (r UpdateSessionRequest) Patch() ReadingSessionPatch {
	return ReadingSessionPatch{
		ScheduledDate: r.ScheduledDate,
		Duration:      r.Duration,
		IsCompleted:   r.IsCompleted,
		ReminderSent:  r.ReminderSent,
	}
}
