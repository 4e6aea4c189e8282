package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	sessionmodel "readtrack-backend/internal/domains/session/model"
)

const sessionColumns = `id, user_id, book_id, scheduled_date, duration,
	is_completed, reminder_sent, created_at`

func (s *Store) GetReadingSessions(ctx context.Context, userID int, date *time.Time) ([]*sessionmodel.ReadingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM reading_sessions WHERE user_id = $1`
	args := []interface{}{userID}

	if date != nil {
		// Match the calendar day in local time, the way the calendar
		// endpoint queries by date.
		dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		query += ` AND scheduled_date >= $2 AND scheduled_date < $3`
		args = append(args, dayStart, dayStart.AddDate(0, 0, 1))
	}
	query += ` ORDER BY id`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reading sessions: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// ListDueReminders returns unsent reminders for sessions scheduled at or
// before asOf, restricted to users whose preferences enable reminders.
func (s *Store) ListDueReminders(ctx context.Context, asOf time.Time) ([]*sessionmodel.ReadingSession, error) {
	query := `
		SELECT rs.id, rs.user_id, rs.book_id, rs.scheduled_date, rs.duration,
		       rs.is_completed, rs.reminder_sent, rs.created_at
		FROM reading_sessions rs
		JOIN user_preferences up ON up.user_id = rs.user_id
		WHERE rs.reminder_sent = false
		  AND rs.scheduled_date <= $1
		  AND (up.reminder_settings ->> 'enabled')::boolean = true
		ORDER BY rs.id
	`

	rows, err := s.pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list due reminders: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

func (s *Store) CreateReadingSession(ctx context.Context, ns sessionmodel.NewReadingSession) (*sessionmodel.ReadingSession, error) {
	query := `
		INSERT INTO reading_sessions (
			user_id, book_id, scheduled_date, duration,
			is_completed, reminder_sent, created_at
		) VALUES ($1, $2, $3, $4, false, false, $5)
		RETURNING ` + sessionColumns

	sess, err := scanSession(s.pool.QueryRow(ctx, query,
		ns.UserID, ns.BookID, ns.ScheduledDate, ns.Duration, s.clock(),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create reading session: %w", err)
	}
	return sess, nil
}

func (s *Store) UpdateReadingSession(ctx context.Context, id int, patch sessionmodel.ReadingSessionPatch) (*sessionmodel.ReadingSession, error) {
	var updated *sessionmodel.ReadingSession

	err := s.inTx(ctx, func(tx pgx.Tx) error {
		query := `SELECT ` + sessionColumns + ` FROM reading_sessions WHERE id = $1 FOR UPDATE`
		sess, err := scanSession(tx.QueryRow(ctx, query, id))
		if err != nil {
			return err
		}

		if patch.ScheduledDate != nil {
			sess.ScheduledDate = *patch.ScheduledDate
		}
		if patch.Duration != nil {
			sess.Duration = patch.Duration
		}
		if patch.IsCompleted != nil {
			sess.IsCompleted = *patch.IsCompleted
		}
		if patch.ReminderSent != nil {
			sess.ReminderSent = *patch.ReminderSent
		}

		_, err = tx.Exec(ctx, `
			UPDATE reading_sessions
			SET scheduled_date = $1, duration = $2,
			    is_completed = $3, reminder_sent = $4
			WHERE id = $5`,
			sess.ScheduledDate, sess.Duration, sess.IsCompleted,
			sess.ReminderSent, sess.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update reading session: %w", err)
		}

		updated = sess
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func scanSession(row pgx.Row) (*sessionmodel.ReadingSession, error) {
	sess := &sessionmodel.ReadingSession{}
	err := row.Scan(
		&sess.ID, &sess.UserID, &sess.BookID, &sess.ScheduledDate,
		&sess.Duration, &sess.IsCompleted, &sess.ReminderSent, &sess.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sessionmodel.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get reading session: %w", err)
	}
	return sess, nil
}

func scanSessions(rows pgx.Rows) ([]*sessionmodel.ReadingSession, error) {
	sessions := []*sessionmodel.ReadingSession{}
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}
