package event

import "context"

// Store persists and retrieves planning events.
type Store interface {
	// Append adds an event to the store. The store assigns the event ID
	// and sequence number.
	Append(ctx context.Context, event Event) error

	// LoadEvents retrieves all events for an agent in sequence order.
	LoadEvents(ctx context.Context, agentID string) ([]Event, error)

	// LoadEventsFrom retrieves events for an agent starting from the
	// given sequence number.
	LoadEventsFrom(ctx context.Context, agentID string, sequence uint64) ([]Event, error)

	// Subscribe returns a channel that receives new events for an agent.
	// The channel is closed when the context is cancelled.
	Subscribe(ctx context.Context, agentID string) (<-chan Event, error)

	// Close releases store resources.
	Close() error
}
