package plan

import "time"

// Outcome classifies how a planning call ended.
type Outcome string

// Planning outcomes.
const (
	// OutcomePlanFound means the search reached a satisfying state.
	OutcomePlanFound Outcome = "plan_found"

	// OutcomeNoPlan means the open set was exhausted: no action sequence
	// reaches the goal. A normal, frequent result.
	OutcomeNoPlan Outcome = "no_plan"

	// OutcomeBudgetExceeded means the iteration cap fired before the open
	// set emptied. Also surfaces as a nil Plan; only the diagnostics tell
	// it apart from OutcomeNoPlan.
	OutcomeBudgetExceeded Outcome = "budget_exceeded"

	// OutcomeNoPendingGoal means goal selection found every registered
	// goal already satisfied (or none registered). Produced by PlanBest
	// only.
	OutcomeNoPendingGoal Outcome = "no_pending_goal"
)

// IsValid reports whether the outcome is one of the defined values.
func (o Outcome) IsValid() bool {
	switch o {
	case OutcomePlanFound, OutcomeNoPlan, OutcomeBudgetExceeded, OutcomeNoPendingGoal:
		return true
	default:
		return false
	}
}

// Diagnostics reports how a search behaved. It distinguishes the two
// nil-plan outcomes and feeds tuning, tests, and the plan archive.
type Diagnostics struct {
	// Outcome classifies the result.
	Outcome Outcome `json:"outcome"`

	// GoalID is the goal the search targeted. Empty for
	// OutcomeNoPendingGoal.
	GoalID string `json:"goal_id,omitempty"`

	// Iterations counts loop passes: nodes popped from the open set.
	Iterations int `json:"iterations"`

	// NodesExpanded counts nodes whose successors were generated.
	NodesExpanded int `json:"nodes_expanded"`

	// NodesGenerated counts nodes pushed onto the open set, root included.
	NodesGenerated int `json:"nodes_generated"`

	// OpenPeak is the largest open-set size observed.
	OpenPeak int `json:"open_peak"`

	// Duration is the wall time of the search.
	Duration time.Duration `json:"duration"`

	// Cached reports that the plan came from a plan cache rather than a
	// fresh search. The remaining counters describe the original search.
	Cached bool `json:"cached,omitempty"`
}
