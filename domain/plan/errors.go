package plan

import "errors"

// Archive errors.
var (
	// ErrRecordExists is returned when saving a record whose ID is already
	// archived.
	ErrRecordExists = errors.New("plan record already exists")

	// ErrRecordNotFound is returned when a record ID is not archived.
	ErrRecordNotFound = errors.New("plan record not found")

	// ErrInvalidRecordID is returned for an empty record ID.
	ErrInvalidRecordID = errors.New("plan record ID cannot be empty")
)
