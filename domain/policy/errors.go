package policy

import "errors"

// Policy domain errors.
var (
	// ErrBudgetExceeded is returned when consuming would pass a limit.
	ErrBudgetExceeded = errors.New("budget exceeded")
)
