package model

import "errors"

var (
	ErrEntryNotFound    = errors.New("library entry not found")
	ErrAlreadyInLibrary = errors.New("book already in library")
	ErrInvalidStatus    = errors.New("status must be one of want-to-read, reading, completed, dnf")
)
