// Package goal defines planning goals: prioritized target conditions over
// the world state.
package goal

import (
	"fmt"
	"math"

	"github.com/ruvnet/arcadia-goap/domain/world"
)

// Goal is a desired world condition with a selection priority. Goals are
// plain data: the planner only reads them.
type Goal struct {
	// ID uniquely identifies the goal within a registry.
	ID string

	// Priority weighs the goal during selection, in [0, 1]. Higher wins.
	Priority float64

	// Conditions are the facts a satisfying state must hold.
	Conditions world.Facts
}

// Satisfied reports whether the state meets every goal condition. Pure: it
// never mutates the state or the goal.
func (g Goal) Satisfied(s world.State) bool {
	return s.Matches(g.Conditions)
}

// Validate checks the goal definition.
func (g Goal) Validate() error {
	if g.ID == "" {
		return ErrEmptyGoalID
	}
	if math.IsNaN(g.Priority) || g.Priority < 0 || g.Priority > 1 {
		return fmt.Errorf("%w: goal %q has priority %v", ErrInvalidPriority, g.ID, g.Priority)
	}
	return nil
}

// Clone returns a deep copy of the goal.
func (g Goal) Clone() Goal {
	return Goal{
		ID:         g.ID,
		Priority:   g.Priority,
		Conditions: g.Conditions.Clone(),
	}
}

// String renders a short identity for logs and test output.
func (g Goal) String() string {
	return fmt.Sprintf("%s(priority=%g)", g.ID, g.Priority)
}
