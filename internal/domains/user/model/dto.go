package model

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var reminderTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// RegisterRequest creates an account. Password arrives in clear text and
// is hashed by the handler before it reaches the store.
type RegisterRequest struct {
	Username string  `json:"username" binding:"required"`
	Password string  `json:"password" binding:"required"`
	Email    string  `json:"email" binding:"required"`
	Avatar   *string `json:"avatar"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(3, 50).Error("username must be 3-50 characters"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be 8-128 characters"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("email must be valid"),
		),
		validation.Field(&r.Avatar,
			validation.When(r.Avatar != nil, is.URL.Error("avatar must be a URL")),
		),
	)
}

// CreatePreferencesRequest inserts the one-per-user settings record.
type CreatePreferencesRequest struct {
	FavoriteGenres   []string          `json:"favoriteGenres"`
	ReadingGoal      int               `json:"readingGoal"`
	ReminderSettings *ReminderSettings `json:"reminderSettings"`
}

func (r CreatePreferencesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ReadingGoal,
			validation.Min(0), validation.Max(1000).Error("readingGoal is out of range"),
		),
		validation.Field(&r.FavoriteGenres, validation.Each(validation.Length(1, 100))),
		validation.Field(&r.ReminderSettings,
			validation.When(r.ReminderSettings != nil, validation.By(validReminderSettings)),
		),
	)
}

// NewPreferences converts the request into a store insert for userID.
func (r CreatePreferencesRequest) NewPreferences(userID int) NewUserPreferences {
	return NewUserPreferences{
		UserID:           userID,
		FavoriteGenres:   r.FavoriteGenres,
		ReadingGoal:      r.ReadingGoal,
		ReminderSettings: r.ReminderSettings,
	}
}

// UpdatePreferencesRequest patches the settings record. Absent fields
// stay untouched.
type UpdatePreferencesRequest struct {
	FavoriteGenres   *[]string         `json:"favoriteGenres"`
	ReadingGoal      *int              `json:"readingGoal"`
	ReminderSettings *ReminderSettings `json:"reminderSettings"`
}

func (r UpdatePreferencesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ReadingGoal,
			validation.When(r.ReadingGoal != nil,
				validation.Min(0), validation.Max(1000).Error("readingGoal is out of range"),
			),
		),
		validation.Field(&r.ReminderSettings,
			validation.When(r.ReminderSettings != nil, validation.By(validReminderSettings)),
		),
	)
}

func (r UpdatePreferencesRequest) Patch() UserPreferencesPatch {
	return UserPreferencesPatch{
		FavoriteGenres:   r.FavoriteGenres,
		ReadingGoal:      r.ReadingGoal,
		ReminderSettings: r.ReminderSettings,
	}
}

func validReminderSettings(value interface{}) error {
	rs, ok := value.(*ReminderSettings)
	if !ok || rs == nil {
		return nil
	}
	return validation.ValidateStruct(rs,
		validation.Field(&rs.Time,
			validation.Required.Error("reminder time is required"),
			validation.Match(reminderTimePattern).Error("reminder time must be HH:MM"),
		),
		validation.Field(&rs.Frequency,
			validation.Required.Error("reminder frequency is required"),
			validation.In("daily", "weekdays", "weekends").Error("frequency must be daily, weekdays or weekends"),
		),
	)
}
