package memory

import (
	"context"

	usermodel "readtrack-backend/internal/domains/user/model"
)

func (s *Store) GetUser(ctx context.Context, id int) (*usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, usermodel.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, usermodel.ErrUserNotFound
}

func (s *Store) CreateUser(ctx context.Context, nu usermodel.NewUser) (*usermodel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == nu.Username {
			return nil, usermodel.ErrUsernameTaken
		}
		if u.Email == nu.Email {
			return nil, usermodel.ErrEmailTaken
		}
	}

	u := &usermodel.User{
		ID:        s.allocID(kindUsers),
		Username:  nu.Username,
		Password:  nu.Password,
		Email:     nu.Email,
		Avatar:    nu.Avatar,
		CreatedAt: s.clock(),
	}
	s.users[u.ID] = u
	return cloneUser(u), nil
}

func cloneUser(u *usermodel.User) *usermodel.User {
	c := *u
	return &c
}
