package memory

import (
	"context"
	"sort"
	"time"

	sessionmodel "readtrack-backend/internal/domains/session/model"
)

func (s *Store) GetReadingSessions(ctx context.Context, userID int, date *time.Time) ([]*sessionmodel.ReadingSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []*sessionmodel.ReadingSession{}
	for _, sess := range s.sessionsByID() {
		if sess.UserID != userID {
			continue
		}
		if date != nil && !sameDay(sess.ScheduledDate, *date) {
			continue
		}
		c := *sess
		result = append(result, &c)
	}
	return result, nil
}

// ListDueReminders returns unsent reminders for sessions scheduled at or
// before asOf, restricted to users whose preferences enable reminders.
func (s *Store) ListDueReminders(ctx context.Context, asOf time.Time) ([]*sessionmodel.ReadingSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	due := []*sessionmodel.ReadingSession{}
	for _, sess := range s.sessionsByID() {
		if sess.ReminderSent || sess.ScheduledDate.After(asOf) {
			continue
		}
		prefs, ok := s.prefs[sess.UserID]
		if !ok || prefs.ReminderSettings == nil || !prefs.ReminderSettings.Enabled {
			continue
		}
		c := *sess
		due = append(due, &c)
	}
	return due, nil
}

func (s *Store) CreateReadingSession(ctx context.Context, ns sessionmodel.NewReadingSession) (*sessionmodel.ReadingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &sessionmodel.ReadingSession{
		ID:            s.allocID(kindSessions),
		UserID:        ns.UserID,
		BookID:        ns.BookID,
		ScheduledDate: ns.ScheduledDate,
		Duration:      ns.Duration,
		IsCompleted:   false,
		ReminderSent:  false,
		CreatedAt:     s.clock(),
	}
	s.sessions[sess.ID] = sess
	c := *sess
	return &c, nil
}

func (s *Store) UpdateReadingSession(ctx context.Context, id int, patch sessionmodel.ReadingSessionPatch) (*sessionmodel.ReadingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, sessionmodel.ErrSessionNotFound
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
	c := *sess
	return &c, nil
}

func (s *Store) sessionsByID() []*sessionmodel.ReadingSession {
	all := make([]*sessionmodel.ReadingSession, 0, len(s.sessions))
	for _, sess := range s.sessions {
		all = append(all, sess)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// sameDay compares calendar days in local time, the way the calendar
// endpoint queries by date.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
