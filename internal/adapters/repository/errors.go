package repository

import "errors"

// Sentinel kinds for ranking store errors.
var (
	ErrNotFound     = errors.New("arrangement not found")
	ErrInvalidLimit = errors.New("invalid leaderboard limit")
)
