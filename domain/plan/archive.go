package plan

import (
	"context"
	"time"
)

// Record is an archived planning result: the plan (when one was found),
// its diagnostics, and the agent it was computed for. Record identity is
// assigned by the archiving layer, never by the search.
type Record struct {
	// ID uniquely identifies the record.
	ID string `json:"id"`

	// AgentID names the agent the plan was computed for.
	AgentID string `json:"agent_id"`

	// GoalID names the targeted goal.
	GoalID string `json:"goal_id"`

	// Plan is the computed plan; nil when the search found none.
	Plan *Plan `json:"plan,omitempty"`

	// Diagnostics is the search report.
	Diagnostics Diagnostics `json:"diagnostics"`

	// CreatedAt is when the record was archived.
	CreatedAt time.Time `json:"created_at"`
}

// OrderBy selects the sort column for archive listings.
type OrderBy string

// Archive orderings.
const (
	OrderByCreatedAt OrderBy = "created_at"
	OrderByCost      OrderBy = "cost"
	OrderByGoalID    OrderBy = "goal_id"
)

// ListFilter narrows archive listings.
type ListFilter struct {
	// AgentID filters to one agent (empty means all).
	AgentID string

	// GoalID filters to one goal (empty means all).
	GoalID string

	// Outcomes filters to specific outcomes (empty means all).
	Outcomes []Outcome

	// FromTime/ToTime bound CreatedAt.
	FromTime time.Time
	ToTime   time.Time

	// OrderBy selects the sort column; CreatedAt when unset.
	OrderBy OrderBy

	// Descending reverses the sort order.
	Descending bool

	// Limit caps the result count (0 = no cap). Offset skips rows.
	Limit  int
	Offset int
}

// Summary aggregates archived planning results.
type Summary struct {
	// TotalRecords counts all matching records.
	TotalRecords int64 `json:"total_records"`

	// PlansFound counts records with OutcomePlanFound.
	PlansFound int64 `json:"plans_found"`

	// NoPlan counts records with OutcomeNoPlan.
	NoPlan int64 `json:"no_plan"`

	// BudgetExceeded counts records with OutcomeBudgetExceeded.
	BudgetExceeded int64 `json:"budget_exceeded"`

	// AverageCost is the mean TotalCost over found plans.
	AverageCost float64 `json:"average_cost"`

	// AverageNodesExpanded is the mean expansion count over all records.
	AverageNodesExpanded float64 `json:"average_nodes_expanded"`
}

// Archive persists planning records for diagnostics and offline tuning.
// Implementations may be in-memory, SQLite, or PostgreSQL.
type Archive interface {
	// Save persists a new record. Returns ErrRecordExists for a duplicate
	// ID and ErrInvalidRecordID for an empty one.
	Save(ctx context.Context, r Record) error

	// Get retrieves a record by ID, or ErrRecordNotFound.
	Get(ctx context.Context, id string) (Record, error)

	// List returns records matching the filter.
	List(ctx context.Context, filter ListFilter) ([]Record, error)

	// Count returns the number of records matching the filter.
	Count(ctx context.Context, filter ListFilter) (int64, error)

	// Summary aggregates records matching the filter.
	Summary(ctx context.Context, filter ListFilter) (Summary, error)
}
