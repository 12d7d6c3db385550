package statemachine

import (
	"github.com/felixgeelhaar/statekit"

	"github.com/ruvnet/arcadia-goap/domain/run"
)

// enterPhase syncs the run's phase when entering a machine state.
// In statekit, actions receive a pointer to the context. Since our context is
// *Context, actions receive **Context.
func enterPhase(ctx **Context, event statekit.Event) {
	if ctx == nil || *ctx == nil || (*ctx).Run == nil {
		return
	}

	c := *ctx

	// Get target phase from payload if available
	var next run.Phase
	if payload, ok := event.Payload.(TransitionPayload); ok {
		next = payload.ToPhase
	} else {
		// Derive from event type
		next = phaseFromEventType(event.Type)
	}

	if next != "" {
		c.Run.Phase = next
	}
}

// recordTransition records the phase transition in the ledger.
func recordTransition(ctx **Context, event statekit.Event) {
	if ctx == nil || *ctx == nil || (*ctx).Run == nil || (*ctx).Ledger == nil {
		return
	}

	c := *ctx
	fromPhase := c.Run.Phase

	// Get target phase and reason from payload
	var toPhase run.Phase
	var reason string
	if payload, ok := event.Payload.(TransitionPayload); ok {
		toPhase = payload.ToPhase
		reason = payload.Reason
	} else {
		// Derive from event type
		toPhase = phaseFromEventType(event.Type)
	}

	c.Ledger.RecordPhaseChanged(string(fromPhase), string(toPhase), reason)

	// Update run phase, including terminal bookkeeping
	c.Run.TransitionTo(toPhase)
}

// ActionWithReason creates a payload that includes a reason in the event.
func ActionWithReason(reason string) TransitionPayload {
	return TransitionPayload{
		Reason: reason,
	}
}
