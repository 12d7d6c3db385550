package event

// Type identifies the kind of planning event.
type Type string

// Planning event types.
const (
	// TypeRunStarted marks the start of an agent run.
	TypeRunStarted Type = "run.started"

	// TypeRunCompleted marks the successful end of an agent run.
	TypeRunCompleted Type = "run.completed"

	// TypeRunFailed marks the unsuccessful end of an agent run.
	TypeRunFailed Type = "run.failed"

	// TypeStateUpdated records a mutation of the agent's world state.
	TypeStateUpdated Type = "state.updated"

	// TypeGoalSelected records which goal the agent chose to pursue.
	TypeGoalSelected Type = "goal.selected"

	// TypePlanComputed records a successful planning search.
	TypePlanComputed Type = "plan.computed"

	// TypePlanFailed records a planning search that found no plan.
	TypePlanFailed Type = "plan.failed"

	// TypeActionExecuted records the execution of one plan step.
	TypeActionExecuted Type = "action.executed"

	// TypeReplanTriggered records that a plan was abandoned and a new
	// search started.
	TypeReplanTriggered Type = "replan.triggered"
)

// RunStartedPayload is the payload for run.started events.
type RunStartedPayload struct {
	RunID string `json:"run_id"`
}

// RunCompletedPayload is the payload for run.completed events.
type RunCompletedPayload struct {
	RunID         string  `json:"run_id"`
	GoalID        string  `json:"goal_id"`
	StepsExecuted int     `json:"steps_executed"`
	TotalCost     float64 `json:"total_cost"`
}

// RunFailedPayload is the payload for run.failed events.
type RunFailedPayload struct {
	RunID  string `json:"run_id"`
	Reason string `json:"reason"`
}

// StateUpdatedPayload is the payload for state.updated events.
type StateUpdatedPayload struct {
	// Keys lists the fact keys that changed.
	Keys []string `json:"keys"`
}

// GoalSelectedPayload is the payload for goal.selected events.
type GoalSelectedPayload struct {
	GoalID   string  `json:"goal_id"`
	Priority float64 `json:"priority"`
}

// PlanComputedPayload is the payload for plan.computed events.
type PlanComputedPayload struct {
	GoalID     string   `json:"goal_id"`
	ActionIDs  []string `json:"action_ids"`
	TotalCost  float64  `json:"total_cost"`
	Iterations int      `json:"iterations"`
}

// PlanFailedPayload is the payload for plan.failed events.
type PlanFailedPayload struct {
	GoalID  string `json:"goal_id"`
	Outcome string `json:"outcome"`
}

// ActionExecutedPayload is the payload for action.executed events.
type ActionExecutedPayload struct {
	ActionID string  `json:"action_id"`
	Cost     float64 `json:"cost"`
	Step     int     `json:"step"`
	Success  bool    `json:"success"`
}

// ReplanTriggeredPayload is the payload for replan.triggered events.
type ReplanTriggeredPayload struct {
	GoalID string `json:"goal_id"`
	Reason string `json:"reason"`
}
