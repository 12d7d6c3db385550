// Package action defines planning actions: atomic, data-driven world-state
// transitions with a cost, preconditions, and effects.
package action

import (
	"fmt"
	"math"

	"github.com/ruvnet/arcadia-goap/domain/world"
)

// Action is one atomic capability an agent can execute. Actions are plain
// data; the planner handles every action through the same code path, and
// external modules tune behavior exclusively through Cost.
type Action struct {
	// ID uniquely identifies the action within a registry.
	ID string

	// Cost is the planning cost. Must be non-negative: negative edges would
	// break the search's optimality guarantee.
	Cost float64

	// Preconditions are the facts that must hold before the action applies.
	Preconditions world.Facts

	// Effects are the facts guaranteed to hold after execution.
	Effects world.Facts
}

// Applicable reports whether the action's preconditions hold in the state.
func (a Action) Applicable(s world.State) bool {
	return s.Matches(a.Preconditions)
}

// Apply returns the successor state produced by the action's effects. Pure:
// the input state is never modified.
func (a Action) Apply(s world.State) world.State {
	return s.Apply(a.Effects)
}

// Validate checks the action definition.
func (a Action) Validate() error {
	if a.ID == "" {
		return ErrEmptyActionID
	}
	if math.IsNaN(a.Cost) || a.Cost < 0 {
		return fmt.Errorf("%w: action %q has cost %v", ErrInvalidCost, a.ID, a.Cost)
	}
	return nil
}

// Clone returns a deep copy of the action.
func (a Action) Clone() Action {
	return Action{
		ID:            a.ID,
		Cost:          a.Cost,
		Preconditions: a.Preconditions.Clone(),
		Effects:       a.Effects.Clone(),
	}
}

// String renders a short identity for logs and test output.
func (a Action) String() string {
	return fmt.Sprintf("%s(cost=%g)", a.ID, a.Cost)
}
