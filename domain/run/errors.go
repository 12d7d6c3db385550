package run

import "errors"

var (
	// ErrRunNotFound indicates the requested run does not exist.
	ErrRunNotFound = errors.New("run not found")

	// ErrRunTerminal indicates an operation on a run that already ended.
	ErrRunTerminal = errors.New("run already in terminal phase")

	// ErrInvalidPhase indicates an unrecognized phase value.
	ErrInvalidPhase = errors.New("invalid phase")
)
