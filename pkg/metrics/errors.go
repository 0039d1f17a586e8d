package metrics

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrRegister = errors.New("metric registration failed")
)
