package action

import "errors"

// Action domain errors.
var (
	// ErrActionExists is returned when registering an action whose ID is
	// already present.
	ErrActionExists = errors.New("action already exists")

	// ErrActionNotFound is returned when an action ID is not registered.
	ErrActionNotFound = errors.New("action not found")

	// ErrEmptyActionID is returned when an action has no ID.
	ErrEmptyActionID = errors.New("action ID cannot be empty")

	// ErrInvalidCost is returned when an action's cost is negative or NaN.
	ErrInvalidCost = errors.New("action cost must be non-negative")
)
