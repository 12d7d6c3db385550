// Package event provides domain types and interfaces for the planning
// event journal.
package event

import (
	"encoding/json"
	"time"
)

// Event records one observable planning occurrence for an agent: a state
// update, a goal selection, a planning result, or an action execution.
type Event struct {
	// ID is the unique identifier for this event.
	ID string `json:"id"`

	// AgentID is the agent whose planning stream this event belongs to.
	AgentID string `json:"agent_id"`

	// Type classifies the event.
	Type Type `json:"type"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// Payload contains the event-specific data.
	Payload json.RawMessage `json:"payload"`

	// Sequence is the ordering number within the agent's event stream.
	Sequence uint64 `json:"sequence"`

	// Version is the event schema version for forward compatibility.
	Version int `json:"version,omitempty"`
}

// NewEvent creates a new event with the given type and payload.
func NewEvent(agentID string, eventType Type, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}

	return Event{
		AgentID:   agentID,
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   data,
		Version:   1,
	}, nil
}

// UnmarshalPayload decodes the event payload into the given value.
func (e *Event) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}
