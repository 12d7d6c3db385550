// Package statemachine provides the statekit integration for the run lifecycle.
package statemachine

import (
	"github.com/felixgeelhaar/statekit"

	"github.com/ruvnet/arcadia-goap/domain/ledger"
	"github.com/ruvnet/arcadia-goap/domain/policy"
	"github.com/ruvnet/arcadia-goap/domain/run"
)

// Context carries run state through the state machine.
type Context struct {
	Run         *run.Run
	Budget      *policy.Budget
	Ledger      *ledger.Ledger
	Transitions *policy.PhaseTransitions
}

// NewContext creates a new machine context.
func NewContext(run *run.Run, budget *policy.Budget, ledger *ledger.Ledger) *Context {
	return &Context{
		Run:         run,
		Budget:      budget,
		Ledger:      ledger,
		Transitions: policy.DefaultTransitions(),
	}
}

// Phase IDs as StateID type for statekit.
const (
	phaseIdle       statekit.StateID = statekit.StateID(run.PhaseIdle)
	phasePlanning   statekit.StateID = statekit.StateID(run.PhasePlanning)
	phaseExecuting  statekit.StateID = statekit.StateID(run.PhaseExecuting)
	phaseReplanning statekit.StateID = statekit.StateID(run.PhaseReplanning)
	phaseDone       statekit.StateID = statekit.StateID(run.PhaseDone)
	phaseFailed     statekit.StateID = statekit.StateID(run.PhaseFailed)
)

// NewRunMachine creates the canonical run lifecycle statechart.
func NewRunMachine() (*statekit.MachineConfig[*Context], error) {
	return statekit.NewMachine[*Context]("run").
		WithInitial(phaseIdle).
		WithContext(&Context{}).
		// Register actions
		WithAction("enterPhase", enterPhase).
		WithAction("recordTransition", recordTransition).
		// Register guards
		WithGuard("canTransition", guardCanTransition).
		WithGuard("budgetAvailable", guardBudgetAvailable).
		// Define phases
		State(phaseIdle).
			OnEntry("enterPhase").
			On("PLAN").Target(phasePlanning).Guard("canTransition").Do("recordTransition").
			On("DONE").Target(phaseDone).Do("recordTransition").
			On("FAIL").Target(phaseFailed).Do("recordTransition").
			Done().
		State(phasePlanning).
			OnEntry("enterPhase").
			On("EXECUTE").Target(phaseExecuting).Guard("canTransition").Guard("budgetAvailable").Do("recordTransition").
			On("DONE").Target(phaseDone).Do("recordTransition"). // Goal already satisfied
			On("FAIL").Target(phaseFailed).Do("recordTransition").
			Done().
		State(phaseExecuting).
			OnEntry("enterPhase").
			On("REPLAN").Target(phaseReplanning).Guard("canTransition").Guard("budgetAvailable").Do("recordTransition").
			On("DONE").Target(phaseDone).Do("recordTransition").
			On("FAIL").Target(phaseFailed).Do("recordTransition").
			Done().
		State(phaseReplanning).
			OnEntry("enterPhase").
			On("EXECUTE").Target(phaseExecuting).Guard("canTransition").Guard("budgetAvailable").Do("recordTransition").
			On("DONE").Target(phaseDone).Do("recordTransition").
			On("FAIL").Target(phaseFailed).Do("recordTransition").
			Done().
		State(phaseDone).
			Final().
			OnEntry("enterPhase").
			Done().
		State(phaseFailed).
			Final().
			OnEntry("enterPhase").
			Done().
		Build()
}

// EventForTransition returns the event type for a phase transition.
func EventForTransition(to run.Phase) statekit.EventType {
	switch to {
	case run.PhasePlanning:
		return "PLAN"
	case run.PhaseExecuting:
		return "EXECUTE"
	case run.PhaseReplanning:
		return "REPLAN"
	case run.PhaseDone:
		return "DONE"
	case run.PhaseFailed:
		return "FAIL"
	default:
		return statekit.EventType(to)
	}
}

// PhaseFromMachine converts the machine state ID to a domain Phase.
func PhaseFromMachine(stateID statekit.StateID) run.Phase {
	return run.Phase(stateID)
}
