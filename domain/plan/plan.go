// Package plan defines the planner's output artifact, search diagnostics,
// and the archive contract for persisted plans.
package plan

import (
	"fmt"
	"strings"
)

// Step is one action of a plan, in execution order.
type Step struct {
	// ActionID names the action to execute.
	ActionID string `json:"action_id"`

	// Cost is the action's cost at planning time.
	Cost float64 `json:"cost"`
}

// Plan is an ordered action sequence satisfying a goal. Plans are immutable
// once produced and carry no nondeterministic fields: planning the same
// state against the same libraries yields an identical Plan every time.
type Plan struct {
	// GoalID names the goal this plan satisfies.
	GoalID string `json:"goal_id"`

	// Steps are the actions in execution order. Empty when the goal was
	// already satisfied at planning time.
	Steps []Step `json:"steps"`

	// TotalCost is the summed cost of all steps.
	TotalCost float64 `json:"total_cost"`
}

// Empty reports whether the plan has no steps: the goal already held.
func (p *Plan) Empty() bool {
	return len(p.Steps) == 0
}

// Len returns the number of steps.
func (p *Plan) Len() int {
	return len(p.Steps)
}

// ActionIDs returns the step action IDs in execution order.
func (p *Plan) ActionIDs() []string {
	ids := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		ids[i] = s.ActionID
	}
	return ids
}

// String renders the plan for logs and test output, e.g.
// "kill_enemy: pickup_weapon -> approach_enemy -> attack (cost 6)".
func (p *Plan) String() string {
	if p.Empty() {
		return fmt.Sprintf("%s: <already satisfied> (cost 0)", p.GoalID)
	}
	return fmt.Sprintf("%s: %s (cost %g)", p.GoalID, strings.Join(p.ActionIDs(), " -> "), p.TotalCost)
}
