package model

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrEmailTaken          = errors.New("email already registered")
	ErrPreferencesNotFound = errors.New("user preferences not found")
	ErrPreferencesExist    = errors.New("user preferences already exist")
)
