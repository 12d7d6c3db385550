package event

import (
	"testing"
)

func TestNewEvent(t *testing.T) {
	t.Parallel()

	ev, err := NewEvent("agent-1", TypeGoalSelected, GoalSelectedPayload{
		GoalID:   "kill_enemy",
		Priority: 0.9,
	})
	if err != nil {
		t.Fatalf("NewEvent() error = %v", err)
	}

	if ev.AgentID != "agent-1" {
		t.Errorf("AgentID = %q, want %q", ev.AgentID, "agent-1")
	}
	if ev.Type != TypeGoalSelected {
		t.Errorf("Type = %q, want %q", ev.Type, TypeGoalSelected)
	}
	if ev.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
	if ev.Version != 1 {
		t.Errorf("Version = %d, want 1", ev.Version)
	}

	var payload GoalSelectedPayload
	if err := ev.UnmarshalPayload(&payload); err != nil {
		t.Fatalf("UnmarshalPayload() error = %v", err)
	}
	if payload.GoalID != "kill_enemy" {
		t.Errorf("payload GoalID = %q, want %q", payload.GoalID, "kill_enemy")
	}
	if payload.Priority != 0.9 {
		t.Errorf("payload Priority = %v, want 0.9", payload.Priority)
	}
}

func TestNewEventUnmarshalableRejected(t *testing.T) {
	t.Parallel()

	_, err := NewEvent("agent-1", TypeStateUpdated, make(chan int))
	if err == nil {
		t.Fatal("NewEvent() with unmarshalable payload should fail")
	}
}

func TestPayloadRoundTrips(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		typ     Type
		payload any
	}{
		{
			name: "plan computed",
			typ:  TypePlanComputed,
			payload: PlanComputedPayload{
				GoalID:    "stay_safe",
				ActionIDs: []string{"flee", "hide"},
				TotalCost: 4.5,
			},
		},
		{
			name: "action executed",
			typ:  TypeActionExecuted,
			payload: ActionExecutedPayload{
				ActionID: "attack",
				Cost:     3,
				Step:     2,
				Success:  true,
			},
		},
		{
			name: "replan triggered",
			typ:  TypeReplanTriggered,
			payload: ReplanTriggeredPayload{
				GoalID: "kill_enemy",
				Reason: "precondition no longer holds",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ev, err := NewEvent("agent-1", tt.typ, tt.payload)
			if err != nil {
				t.Fatalf("NewEvent() error = %v", err)
			}
			if len(ev.Payload) == 0 {
				t.Fatal("payload should not be empty")
			}
		})
	}
}
