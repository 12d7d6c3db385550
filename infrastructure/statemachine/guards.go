package statemachine

import (
	"github.com/felixgeelhaar/statekit"

	"github.com/ruvnet/arcadia-goap/domain/run"
)

// guardCanTransition checks if the transition is valid according to policy.
// Note: In statekit, guards receive the context by value. Since our context is
// *Context, the guard receives *Context directly.
func guardCanTransition(ctx *Context, event statekit.Event) bool {
	if ctx == nil || ctx.Run == nil || ctx.Transitions == nil {
		return false
	}

	fromPhase := ctx.Run.Phase

	// Get target phase from the event payload if available
	var toPhase run.Phase
	if payload, ok := event.Payload.(TransitionPayload); ok {
		toPhase = payload.ToPhase
	} else {
		// Fall back to deriving from event type
		toPhase = phaseFromEventType(event.Type)
	}

	return ctx.Transitions.CanTransition(fromPhase, toPhase)
}

// guardBudgetAvailable checks if there is budget available.
func guardBudgetAvailable(ctx *Context, _ statekit.Event) bool {
	if ctx == nil || ctx.Budget == nil {
		return true // No budget means unlimited
	}

	return !ctx.Budget.IsExhausted()
}

// phaseFromEventType derives the target phase from an event type.
func phaseFromEventType(eventType statekit.EventType) run.Phase {
	switch eventType {
	case "PLAN":
		return run.PhasePlanning
	case "EXECUTE":
		return run.PhaseExecuting
	case "REPLAN":
		return run.PhaseReplanning
	case "DONE":
		return run.PhaseDone
	case "FAIL":
		return run.PhaseFailed
	default:
		return run.Phase(eventType)
	}
}
