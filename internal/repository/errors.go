package repository

import "errors"

var (
	// ErrNoRows means no record matched the key.
	ErrNoRows = errors.New("no matching rows")
	// ErrDuplicateToken means the public_token uniqueness constraint fired.
	ErrDuplicateToken = errors.New("duplicate public token")
)
