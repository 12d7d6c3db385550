package event

import "errors"

var (
	// ErrEventNotFound indicates the requested event does not exist.
	ErrEventNotFound = errors.New("event not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("event store closed")

	// ErrInvalidAgentID indicates an empty or malformed agent ID.
	ErrInvalidAgentID = errors.New("invalid agent id")
)
