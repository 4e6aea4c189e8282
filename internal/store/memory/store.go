// Package memory implements store.Storage on process-wide maps. All
// state is transient and re-seeded from the fixed sample data at
// construction; a single RWMutex serializes mutation since gin serves
// requests on parallel goroutines.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"readtrack-backend/internal/store"

	bookmodel "readtrack-backend/internal/domains/book/model"
	librarymodel "readtrack-backend/internal/domains/library/model"
	reviewmodel "readtrack-backend/internal/domains/review/model"
	sessionmodel "readtrack-backend/internal/domains/session/model"
	usermodel "readtrack-backend/internal/domains/user/model"
)

// Counter keys, one per entity kind. Counters only grow; ids are never
// reused, even after a review deletion.
const (
	kindUsers       = "users"
	kindBooks       = "books"
	kindUserBooks   = "userBooks"
	kindReviews     = "reviews"
	kindSessions    = "readingSessions"
	kindPreferences = "userPreferences"
)

type Store struct {
	mu sync.RWMutex

	users     map[int]*usermodel.User
	books     map[int]*bookmodel.Book
	userBooks map[int]map[int]*librarymodel.UserBook // userID -> bookID
	reviews   map[int]*reviewmodel.Review
	sessions  map[int]*sessionmodel.ReadingSession
	prefs     map[int]*usermodel.UserPreferences // keyed by userID

	nextID map[string]int

	// clock is swapped in tests to pin "this year" and streak walks.
	clock func() time.Time
}

var _ store.Storage = (*Store)(nil)

// New builds a store pre-loaded with the fixed sample data.
func New() *Store {
	s := newEmpty()
	s.seed()
	return s
}

func newEmpty() *Store {
	return &Store{
		users:     make(map[int]*usermodel.User),
		books:     make(map[int]*bookmodel.Book),
		userBooks: make(map[int]map[int]*librarymodel.UserBook),
		reviews:   make(map[int]*reviewmodel.Review),
		sessions:  make(map[int]*sessionmodel.ReadingSession),
		prefs:     make(map[int]*usermodel.UserPreferences),
		nextID: map[string]int{
			kindUsers:       1,
			kindBooks:       1,
			kindUserBooks:   1,
			kindReviews:     1,
			kindSessions:    1,
			kindPreferences: 1,
		},
		clock: time.Now,
	}
}

func (s *Store) seed() {
	ctx := context.Background()
	now := s.clock()

	for _, u := range store.SeedUsers(now) {
		if _, err := s.CreateUser(ctx, u); err != nil {
			log.Error().Err(err).Msg("seed: create user")
		}
	}

	ratings := store.SeedRatings()
	for i, b := range store.SeedBooks(now) {
		created, err := s.CreateBook(ctx, b)
		if err != nil {
			log.Error().Err(err).Msg("seed: create book")
			continue
		}
		if i < len(ratings) {
			s.mu.Lock()
			s.books[created.ID].AverageRating = ratings[i]
			s.mu.Unlock()
		}
	}

	for _, ub := range store.SeedUserBooks(now) {
		if _, err := s.AddUserBook(ctx, ub); err != nil {
			log.Error().Err(err).Msg("seed: add user book")
		}
	}

	for _, p := range store.SeedPreferences(now) {
		if _, err := s.CreateUserPreferences(ctx, p); err != nil {
			log.Error().Err(err).Msg("seed: create preferences")
		}
	}

	log.Info().
		Int("users", len(s.users)).
		Int("books", len(s.books)).
		Msg("memory store seeded")
}

// allocID hands out the next id for an entity kind. Caller must hold mu.
func (s *Store) allocID(kind string) int {
	id := s.nextID[kind]
	s.nextID[kind] = id + 1
	return id
}

func (s *Store) Ping(ctx context.Context) error { return nil }

func (s *Store) Close() {}
