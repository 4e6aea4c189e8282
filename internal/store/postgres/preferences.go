package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	usermodel "readtrack-backend/internal/domains/user/model"
)

const preferencesColumns = `id, user_id, favorite_genres, reading_goal,
	reminder_settings, created_at`

func (s *Store) GetUserPreferences(ctx context.Context, userID int) (*usermodel.UserPreferences, error) {
	query := `SELECT ` + preferencesColumns + ` FROM user_preferences WHERE user_id = $1`
	return scanPreferences(s.pool.QueryRow(ctx, query, userID))
}

func (s *Store) CreateUserPreferences(ctx context.Context, np usermodel.NewUserPreferences) (*usermodel.UserPreferences, error) {
	goal := np.ReadingGoal
	if goal <= 0 {
		goal = 12
	}

	settings, err := marshalReminderSettings(np.ReminderSettings)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO user_preferences (
			user_id, favorite_genres, reading_goal, reminder_settings, created_at
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + preferencesColumns

	p, err := scanPreferences(s.pool.QueryRow(ctx, query,
		np.UserID, pq.Array(np.FavoriteGenres), goal, settings, s.clock(),
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, usermodel.ErrPreferencesExist
		}
		return nil, fmt.Errorf("failed to create preferences: %w", err)
	}
	return p, nil
}

func (s *Store) UpdateUserPreferences(ctx context.Context, userID int, patch usermodel.UserPreferencesPatch) (*usermodel.UserPreferences, error) {
	var updated *usermodel.UserPreferences

	err := s.inTx(ctx, func(tx pgx.Tx) error {
		query := `SELECT ` + preferencesColumns + ` FROM user_preferences
			WHERE user_id = $1 FOR UPDATE`
		p, err := scanPreferences(tx.QueryRow(ctx, query, userID))
		if err != nil {
			return err
		}

		if patch.FavoriteGenres != nil {
			p.FavoriteGenres = *patch.FavoriteGenres
		}
		if patch.ReadingGoal != nil {
			p.ReadingGoal = *patch.ReadingGoal
		}
		if patch.ReminderSettings != nil {
			p.ReminderSettings = patch.ReminderSettings
		}

		settings, err := marshalReminderSettings(p.ReminderSettings)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE user_preferences
			SET favorite_genres = $1, reading_goal = $2, reminder_settings = $3
			WHERE id = $4`,
			pq.Array(p.FavoriteGenres), p.ReadingGoal, settings, p.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update preferences: %w", err)
		}

		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func marshalReminderSettings(rs *usermodel.ReminderSettings) ([]byte, error) {
	if rs == nil {
		return nil, nil
	}
	data, err := json.Marshal(rs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reminder settings: %w", err)
	}
	return data, nil
}

func scanPreferences(row pgx.Row) (*usermodel.UserPreferences, error) {
	p := &usermodel.UserPreferences{}
	var genres []string
	var settings []byte

	err := row.Scan(
		&p.ID, &p.UserID, pq.Array(&genres), &p.ReadingGoal,
		&settings, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, usermodel.ErrPreferencesNotFound
		}
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	p.FavoriteGenres = genres
	if len(settings) > 0 {
		rs := &usermodel.ReminderSettings{}
		if err := json.Unmarshal(settings, rs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal reminder settings: %w", err)
		}
		p.ReminderSettings = rs
	}
	return p, nil
}
