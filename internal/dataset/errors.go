package dataset

import "errors"

// Sentinel kinds for dataset generation errors.
var (
	ErrUnknownFormat = errors.New("unknown dataset format")
	ErrSubmitFailed  = errors.New("submit failed")
)
