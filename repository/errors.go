package repository

import "errors"

var (
	// ErrDuplicateUser is returned when a username or email is taken.
	ErrDuplicateUser = errors.New("username or email already exists")

	// ErrDuplicateFavorite is returned when a (user, analysis) pair is
	// already favorited. Duplicate favoriting is rejected, not
	// silently deduplicated.
	ErrDuplicateFavorite = errors.New("already in favorites")

	// ErrNotFound is returned for lookups of records that don't exist.
	ErrNotFound = errors.New("record not found")
)
