package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/ruvnet/arcadia-goap/domain/event"
)

// subscriberBuffer is the channel capacity for event subscribers. Slow
// subscribers drop events rather than blocking appends.
const subscriberBuffer = 64

// EventStore is an in-memory implementation of event.Store. Events are
// kept per agent in append order with store-assigned sequence numbers.
type EventStore struct {
	events      map[string][]event.Event
	sequences   map[string]uint64
	subscribers map[string][]chan event.Event
	closed      bool
	mu          sync.RWMutex
}

// NewEventStore creates a new in-memory event store.
func NewEventStore() *EventStore {
	return &EventStore{
		events:      make(map[string][]event.Event),
		sequences:   make(map[string]uint64),
		subscribers: make(map[string][]chan event.Event),
	}
}

// Append adds an event to the store, assigning its ID and sequence number.
func (s *EventStore) Append(ctx context.Context, e event.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if e.AgentID == "" {
		return event.ErrInvalidAgentID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return event.ErrStoreClosed
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	s.sequences[e.AgentID]++
	e.Sequence = s.sequences[e.AgentID]

	s.events[e.AgentID] = append(s.events[e.AgentID], e)

	for _, ch := range s.subscribers[e.AgentID] {
		select {
		case ch <- e:
		default:
		}
	}
	return nil
}

// LoadEvents retrieves all events for an agent in sequence order.
func (s *EventStore) LoadEvents(ctx context.Context, agentID string) ([]event.Event, error) {
	return s.LoadEventsFrom(ctx, agentID, 0)
}

// LoadEventsFrom retrieves events for an agent with sequence numbers at or
// above the given value.
func (s *EventStore) LoadEventsFrom(ctx context.Context, agentID string, sequence uint64) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if agentID == "" {
		return nil, event.ErrInvalidAgentID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, event.ErrStoreClosed
	}

	all := s.events[agentID]
	start := 0
	for start < len(all) && all[start].Sequence < sequence {
		start++
	}
	return copyEvents(all[start:]), nil
}

// Subscribe returns a channel receiving new events for an agent. The
// channel is closed when the context is cancelled or the store closes.
func (s *EventStore) Subscribe(ctx context.Context, agentID string) (<-chan event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if agentID == "" {
		return nil, event.ErrInvalidAgentID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, event.ErrStoreClosed
	}

	ch := make(chan event.Event, subscriberBuffer)
	s.subscribers[agentID] = append(s.subscribers[agentID], ch)

	go func() {
		<-ctx.Done()
		s.unsubscribe(agentID, ch)
	}()

	return ch, nil
}

// Close releases store resources and closes all subscriber channels.
func (s *EventStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	for _, subs := range s.subscribers {
		for _, ch := range subs {
			close(ch)
		}
	}
	s.subscribers = make(map[string][]chan event.Event)
	return nil
}

// Len returns the total number of events across all agents.
func (s *EventStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	for _, evs := range s.events {
		count += len(evs)
	}
	return count
}

// unsubscribe removes and closes a subscriber channel if still registered.
func (s *EventStore) unsubscribe(agentID string, ch chan event.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs := s.subscribers[agentID]
	for i, sub := range subs {
		if sub == ch {
			s.subscribers[agentID] = append(subs[:i], subs[i+1:]...)
			close(ch)
			return
		}
	}
}

// copyEvents returns a deep copy so callers cannot mutate stored payloads.
func copyEvents(evs []event.Event) []event.Event {
	out := make([]event.Event, len(evs))
	for i, e := range evs {
		out[i] = e
		if e.Payload != nil {
			p := make(json.RawMessage, len(e.Payload))
			copy(p, e.Payload)
			out[i].Payload = p
		}
	}
	return out
}

var _ event.Store = (*EventStore)(nil)
