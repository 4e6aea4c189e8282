package store

import (
	"time"

	"github.com/shopspring/decimal"

	bookmodel "readtrack-backend/internal/domains/book/model"
	librarymodel "readtrack-backend/internal/domains/library/model"
	usermodel "readtrack-backend/internal/domains/user/model"
)

// Fixed sample data loaded at process start. Both store backends seed
// from here so a fresh process always serves the same demo library.

// SeedUserID is the single active user every request runs as.
const SeedUserID = 1

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

// SeedUsers returns the demo account. The password hash is bcrypt of
// "password123" (cost 12), kept fixed so seeding stays deterministic.
func SeedUsers(now time.Time) []usermodel.NewUser {
	return []usermodel.NewUser{
		{
			Username: "sarah_m",
			Password: "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW",
			Email:    "sarah@example.com",
			Avatar:   strptr("https://images.unsplash.com/photo-1494790108755-2616b612b786?auto=format&fit=crop&w=100&h=100"),
		},
	}
}

func SeedBooks(now time.Time) []bookmodel.NewBook {
	return []bookmodel.NewBook{
		{
			Title:         "The Midnight Library",
			Author:        "Matt Haig",
			ISBN:          strptr("9780525559474"),
			CoverImage:    strptr("https://images.unsplash.com/photo-1544947950-fa07a98d237f?auto=format&fit=crop&w=200&h=300"),
			Description:   strptr("Between life and death there is a library, and within that library, the shelves go on forever."),
			TotalPages:    300,
			PublishedYear: intptr(2020),
			Genres:        []string{"Fiction", "Philosophy", "Contemporary"},
		},
		{
			Title:         "Atomic Habits",
			Author:        "James Clear",
			ISBN:          strptr("9780735211292"),
			CoverImage:    strptr("https://images.unsplash.com/photo-1481627834876-b7833e8f5570?auto=format&fit=crop&w=200&h=300"),
			Description:   strptr("An Easy & Proven Way to Build Good Habits & Break Bad Ones"),
			TotalPages:    320,
			PublishedYear: intptr(2018),
			Genres:        []string{"Self-Help", "Psychology", "Productivity"},
		},
		{
			Title:         "Where the Crawdads Sing",
			Author:        "Delia Owens",
			ISBN:          strptr("9780735219090"),
			CoverImage:    strptr("https://images.unsplash.com/photo-1512820790803-83ca734da794?auto=format&fit=crop&w=200&h=300"),
			Description:   strptr("A mystery, a love story, and a coming-of-age tale all at once."),
			TotalPages:    384,
			PublishedYear: intptr(2018),
			Genres:        []string{"Fiction", "Mystery", "Literary Fiction"},
		},
		{
			Title:         "Project Hail Mary",
			Author:        "Andy Weir",
			ISBN:          strptr("9780593135204"),
			CoverImage:    strptr("https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?auto=format&fit=crop&w=200&h=300"),
			Description:   strptr("A lone astronaut must save the earth from disaster in this incredible new science-based thriller."),
			TotalPages:    496,
			PublishedYear: intptr(2021),
			Genres:        []string{"Science Fiction", "Thriller", "Space Opera"},
		},
	}
}

// SeedRatings returns the catalog ratings the demo books ship with,
// indexed like SeedBooks. Newly created books start at 0.
func SeedRatings() []decimal.Decimal {
	return []decimal.Decimal{
		decimal.RequireFromString("4.2"),
		decimal.RequireFromString("4.6"),
		decimal.RequireFromString("4.5"),
		decimal.RequireFromString("4.8"),
	}
}

func SeedUserBooks(now time.Time) []librarymodel.NewUserBook {
	week := now.Add(-7 * 24 * time.Hour)
	threeDays := now.Add(-3 * 24 * time.Hour)
	return []librarymodel.NewUserBook{
		{
			UserID:      SeedUserID,
			BookID:      1,
			Status:      librarymodel.StatusReading,
			CurrentPage: 204,
			StartedAt:   &week,
		},
		{
			UserID:      SeedUserID,
			BookID:      2,
			Status:      librarymodel.StatusReading,
			CurrentPage: 65,
			StartedAt:   &threeDays,
		},
	}
}

func SeedPreferences(now time.Time) []usermodel.NewUserPreferences {
	return []usermodel.NewUserPreferences{
		{
			UserID:         SeedUserID,
			FavoriteGenres: []string{"Fiction", "Science Fiction", "Self-Help"},
			ReadingGoal:    30,
			ReminderSettings: &usermodel.ReminderSettings{
				Enabled:   true,
				Time:      "20:00",
				Frequency: "daily",
			},
		},
	}
}
