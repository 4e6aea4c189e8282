package memory

import (
	"context"

	usermodel "readtrack-backend/internal/domains/user/model"
)

func (s *Store) GetUserPreferences(ctx context.Context, userID int) (*usermodel.UserPreferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.prefs[userID]
	if !ok {
		return nil, usermodel.ErrPreferencesNotFound
	}
	return clonePreferences(p), nil
}

// CreateUserPreferences inserts the one-per-user preferences record.
// A second insert for the same user is a conflict.
func (s *Store) CreateUserPreferences(ctx context.Context, np usermodel.NewUserPreferences) (*usermodel.UserPreferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.prefs[np.UserID]; exists {
		return nil, usermodel.ErrPreferencesExist
	}

	goal := np.ReadingGoal
	if goal <= 0 {
		goal = 12
	}
	p := &usermodel.UserPreferences{
		ID:               s.allocID(kindPreferences),
		UserID:           np.UserID,
		FavoriteGenres:   append([]string(nil), np.FavoriteGenres...),
		ReadingGoal:      goal,
		ReminderSettings: np.ReminderSettings,
		CreatedAt:        s.clock(),
	}
	s.prefs[p.UserID] = p
	return clonePreferences(p), nil
}

func (s *Store) UpdateUserPreferences(ctx context.Context, userID int, patch usermodel.UserPreferencesPatch) (*usermodel.UserPreferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.prefs[userID]
	if !ok {
		return nil, usermodel.ErrPreferencesNotFound
	}

	if patch.FavoriteGenres != nil {
		p.FavoriteGenres = append([]string(nil), (*patch.FavoriteGenres)...)
	}
	if patch.ReadingGoal != nil {
		p.ReadingGoal = *patch.ReadingGoal
	}
	if patch.ReminderSettings != nil {
		p.ReminderSettings = patch.ReminderSettings
	}
	return clonePreferences(p), nil
}

func clonePreferences(p *usermodel.UserPreferences) *usermodel.UserPreferences {
	c := *p
	c.FavoriteGenres = append([]string(nil), p.FavoriteGenres...)
	if p.ReminderSettings != nil {
		rs := *p.ReminderSettings
		c.ReminderSettings = &rs
	}
	return &c
}
