package feature

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrVectorSize  = errors.New("feature vector size mismatch")
	ErrVectorRange = errors.New("feature vector element out of range")
)
