// Package ledger provides the append-only audit trail of an executor run:
// every goal selection, planning result, action execution, and budget event
// in order.
package ledger

import (
	"encoding/json"
	"time"
)

// EntryType classifies the type of ledger entry.
type EntryType string

const (
	EntryRunStarted      EntryType = "run_started"
	EntryRunCompleted    EntryType = "run_completed"
	EntryRunFailed       EntryType = "run_failed"
	EntryPhaseChanged    EntryType = "phase_changed"
	EntryGoalSelected    EntryType = "goal_selected"
	EntryPlanComputed    EntryType = "plan_computed"
	EntryNoPlan          EntryType = "no_plan"
	EntryActionExecuted  EntryType = "action_executed"
	EntryActionFailed    EntryType = "action_failed"
	EntryPlanInvalidated EntryType = "plan_invalidated"
	EntryReplanTriggered EntryType = "replan_triggered"
	EntryBudgetConsumed  EntryType = "budget_consumed"
	EntryBudgetExhausted EntryType = "budget_exhausted"
)

// Entry represents a single record in the ledger.
type Entry struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Type      EntryType       `json:"type"`
	RunID     string          `json:"run_id"`
	Phase     string          `json:"phase,omitempty"`
	Details   json.RawMessage `json:"details,omitempty"`
}

// PhaseDetails contains details for phase transition entries.
type PhaseDetails struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Reason string `json:"reason,omitempty"`
}

// GoalDetails contains details for goal selection entries.
type GoalDetails struct {
	GoalID   string  `json:"goal_id"`
	Priority float64 `json:"priority"`
}

// PlanDetails contains details for planning result entries.
type PlanDetails struct {
	GoalID        string   `json:"goal_id"`
	Outcome       string   `json:"outcome"`
	ActionIDs     []string `json:"action_ids,omitempty"`
	TotalCost     float64  `json:"total_cost"`
	Iterations    int      `json:"iterations"`
	NodesExpanded int      `json:"nodes_expanded"`
	Cached        bool     `json:"cached,omitempty"`
}

// ActionDetails contains details for action execution entries.
type ActionDetails struct {
	ActionID string        `json:"action_id"`
	Cost     float64       `json:"cost"`
	Duration time.Duration `json:"duration,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// InvalidationDetails contains details for plan invalidation entries.
type InvalidationDetails struct {
	ActionID string `json:"action_id"`
	Reason   string `json:"reason"`
}

// BudgetDetails contains details for budget entries.
type BudgetDetails struct {
	Resource  string `json:"resource"`
	Amount    int64  `json:"amount,omitempty"`
	Remaining int64  `json:"remaining"`
}

// NewEntry creates a new ledger entry.
func NewEntry(entryType EntryType, runID, phase string, details any) Entry {
	var detailsJSON json.RawMessage
	if details != nil {
		detailsJSON, _ = json.Marshal(details)
	}

	return Entry{
		ID:        generateEntryID(),
		Timestamp: time.Now(),
		Type:      entryType,
		RunID:     runID,
		Phase:     phase,
		Details:   detailsJSON,
	}
}

// generateEntryID creates a unique entry ID.
func generateEntryID() string {
	return time.Now().Format("20060102150405.000000000")
}

// DecodeDetails unmarshals the entry details into the given struct.
func (e Entry) DecodeDetails(v any) error {
	if e.Details == nil {
		return nil
	}
	return json.Unmarshal(e.Details, v)
}
