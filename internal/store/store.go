package store

import (
	"context"
	"time"

	bookmodel "readtrack-backend/internal/domains/book/model"
	librarymodel "readtrack-backend/internal/domains/library/model"
	reviewmodel "readtrack-backend/internal/domains/review/model"
	sessionmodel "readtrack-backend/internal/domains/session/model"
	usermodel "readtrack-backend/internal/domains/user/model"
)

// Storage is the single capability surface the handlers call. Both the
// in-memory store and the postgres store implement it; which one backs a
// process is a config decision, not a caller concern.
//
// Absent records are reported through the domain sentinel errors
// (ErrBookNotFound, ErrEntryNotFound, ...), never by panicking, so the
// handler decides on the 404. Duplicate (userId, bookId) insertion is a
// distinct conflict (ErrAlreadyInLibrary).
type Storage interface {
	// Users
	GetUser(ctx context.Context, id int) (*usermodel.User, error)
	GetUserByUsername(ctx context.Context, username string) (*usermodel.User, error)
	CreateUser(ctx context.Context, u usermodel.NewUser) (*usermodel.User, error)

	// Books
	GetBooks(ctx context.Context, limit, offset int) ([]*bookmodel.Book, error)
	GetBook(ctx context.Context, id int) (*bookmodel.Book, error)
	SearchBooks(ctx context.Context, query string) ([]*bookmodel.Book, error)
	CreateBook(ctx context.Context, b bookmodel.NewBook) (*bookmodel.Book, error)
	UpdateBook(ctx context.Context, id int, patch bookmodel.BookPatch) (*bookmodel.Book, error)

	// Library entries
	GetUserBooks(ctx context.Context, userID int, status librarymodel.Status) ([]*librarymodel.BookWithUserData, error)
	GetUserBook(ctx context.Context, userID, bookID int) (*librarymodel.UserBook, error)
	AddUserBook(ctx context.Context, ub librarymodel.NewUserBook) (*librarymodel.UserBook, error)
	UpdateUserBook(ctx context.Context, userID, bookID int, patch librarymodel.UserBookPatch) (*librarymodel.UserBook, error)

	// Reviews
	GetReviews(ctx context.Context, filter reviewmodel.ReviewFilter) ([]*reviewmodel.ReviewWithUser, error)
	GetReview(ctx context.Context, id int) (*reviewmodel.Review, error)
	CreateReview(ctx context.Context, r reviewmodel.NewReview) (*reviewmodel.Review, error)
	UpdateReview(ctx context.Context, id int, patch reviewmodel.ReviewPatch) (*reviewmodel.Review, error)
	DeleteReview(ctx context.Context, id int) (bool, error)

	// Reading sessions
	GetReadingSessions(ctx context.Context, userID int, date *time.Time) ([]*sessionmodel.ReadingSession, error)
	ListDueReminders(ctx context.Context, asOf time.Time) ([]*sessionmodel.ReadingSession, error)
	CreateReadingSession(ctx context.Context, s sessionmodel.NewReadingSession) (*sessionmodel.ReadingSession, error)
	UpdateReadingSession(ctx context.Context, id int, patch sessionmodel.ReadingSessionPatch) (*sessionmodel.ReadingSession, error)

	// User preferences
	GetUserPreferences(ctx context.Context, userID int) (*usermodel.UserPreferences, error)
	CreateUserPreferences(ctx context.Context, p usermodel.NewUserPreferences) (*usermodel.UserPreferences, error)
	UpdateUserPreferences(ctx context.Context, userID int, patch usermodel.UserPreferencesPatch) (*usermodel.UserPreferences, error)

	// Derived views
	GetReadingStats(ctx context.Context, userID int) (*usermodel.ReadingStats, error)
	GetRecommendations(ctx context.Context, userID, limit int) ([]*bookmodel.RecommendationWithMatch, error)

	Ping(ctx context.Context) error
	Close()
}
