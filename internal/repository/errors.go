package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrEmailExists indicates a registration attempt with an email already in the directory.
	ErrEmailExists = errors.New("repository: email already registered")
)
