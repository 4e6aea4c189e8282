package model

import "errors"

var ErrSessionNotFound = errors.New("reading session not found")
