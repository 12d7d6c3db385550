package statemachine

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/statekit"

	"github.com/ruvnet/arcadia-goap/domain/run"
)

// TransitionPayload carries additional data with a transition event.
type TransitionPayload struct {
	ToPhase run.Phase
	Reason  string
}

// Interpreter wraps the statekit interpreter with run-specific functionality.
type Interpreter struct {
	interp *statekit.Interpreter[*Context]
	ctx    *Context
}

// NewInterpreter creates a new interpreter for the run state machine.
func NewInterpreter(machine *statekit.MachineConfig[*Context], ctx *Context) *Interpreter {
	interp := statekit.NewInterpreter(machine)
	// Update the context reference in the machine
	interp.UpdateContext(func(c **Context) {
		*c = ctx
	})
	return &Interpreter{
		interp: interp,
		ctx:    ctx,
	}
}

// Start initializes the interpreter and enters the initial phase.
func (i *Interpreter) Start() {
	i.interp.Start()
	// Sync context state with interpreter
	state := i.interp.State()
	i.ctx.Run.Phase = run.Phase(state.Value)
	i.ctx.Run.Start()
}

// Stop stops the interpreter.
func (i *Interpreter) Stop() {
	i.interp.Stop()
}

// Phase returns the current phase.
func (i *Interpreter) Phase() run.Phase {
	state := i.interp.State()
	return run.Phase(state.Value)
}

// Transition attempts to transition to the target phase.
func (i *Interpreter) Transition(to run.Phase, reason string) error {
	// Check if transition is allowed
	if !i.CanTransition(to) {
		return fmt.Errorf("transition from %s to %s not allowed", i.ctx.Run.Phase, to)
	}

	eventType := EventForTransition(to)
	payload := TransitionPayload{
		ToPhase: to,
		Reason:  reason,
	}

	event := statekit.Event{
		Type:    eventType,
		Payload: payload,
	}

	// Send the event (doesn't return error, unhandled events are ignored)
	i.interp.Send(event)

	// Sync the run's phase with the machine
	newState := i.interp.State()
	i.ctx.Run.Phase = run.Phase(newState.Value)

	return nil
}

// CanTransition checks if a transition to the target phase is possible.
func (i *Interpreter) CanTransition(to run.Phase) bool {
	return i.ctx.Transitions.CanTransition(i.ctx.Run.Phase, to)
}

// IsTerminal returns true if the interpreter is in a terminal phase.
func (i *Interpreter) IsTerminal() bool {
	return i.interp.Done()
}

// Context returns the interpreter context.
func (i *Interpreter) Context() *Context {
	return i.ctx
}

// Matches checks if the current phase matches the given state ID.
func (i *Interpreter) Matches(stateID string) bool {
	return i.interp.Matches(statekit.StateID(stateID))
}

// ResumeFrom restores the interpreter to a specific phase.
// This is used when resuming a paused run.
func (i *Interpreter) ResumeFrom(phase run.Phase) error {
	// Create a snapshot with the desired phase
	snapshot := statekit.Snapshot[*Context]{
		MachineID:    "run",
		CurrentState: statekit.StateID(string(phase)),
		Context:      i.ctx,
		CreatedAt:    time.Now(),
	}

	// Restore the interpreter to this state
	if err := i.interp.Restore(snapshot); err != nil {
		return fmt.Errorf("failed to restore phase: %w", err)
	}

	// Sync run phase
	i.ctx.Run.Phase = phase

	return nil
}
