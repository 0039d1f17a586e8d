package model

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidItem      = errors.New("invalid item")
	ErrInvalidContainer = errors.New("invalid container")
)
