package goal

import "errors"

// Goal domain errors.
var (
	// ErrGoalExists is returned when registering a goal whose ID is
	// already present.
	ErrGoalExists = errors.New("goal already exists")

	// ErrGoalNotFound is returned when planning against an unregistered
	// goal ID.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrEmptyGoalID is returned when a goal has no ID.
	ErrEmptyGoalID = errors.New("goal ID cannot be empty")

	// ErrInvalidPriority is returned when a goal's priority lies outside
	// [0, 1].
	ErrInvalidPriority = errors.New("goal priority must be within [0, 1]")
)
