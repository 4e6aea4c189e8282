package job

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	sessionmodel "readtrack-backend/internal/domains/session/model"
	"readtrack-backend/internal/store"
)

// ReminderHandler processes the periodic reminder sweep. Each run marks
// due sessions as reminded so a session never fires twice, even if the
// sweep overlaps with itself.
type ReminderHandler struct {
	store store.Storage
}

func NewReminderHandler(s store.Storage) *ReminderHandler {
	return &ReminderHandler{store: s}
}

// HandleSendDueReminders finds sessions whose scheduled time has passed
// without a reminder, for users who have reminders enabled, and flips
// reminderSent on each. Delivery is a structured log line; a push or
// email channel would hook in here.
func (h *ReminderHandler) HandleSendDueReminders(ctx context.Context, task *asynq.Task) error {
	due, err := h.store.ListDueReminders(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("list due reminders: %w", err)
	}

	sent := true
	for _, sess := range due {
		log.Info().
			Int("session_id", sess.ID).
			Int("user_id", sess.UserID).
			Int("book_id", sess.BookID).
			Time("scheduled_date", sess.ScheduledDate).
			Msg("Reading reminder due")

		_, err := h.store.UpdateReadingSession(ctx, sess.ID, sessionmodel.ReadingSessionPatch{
			ReminderSent: &sent,
		})
		if err != nil {
			return fmt.Errorf("mark reminder sent for session %d: %w", sess.ID, err)
		}
	}

	if len(due) > 0 {
		log.Info().Int("count", len(due)).Msg("Reading reminders processed")
	}
	return nil
}
