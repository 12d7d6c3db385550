// Package run provides the core domain model for plan execution runs.
package run

import (
	"time"
)

// Phase represents where a run currently is in its plan-act-replan cycle.
// Phases are identified by stable strings, not behavioral definitions.
type Phase string

// Canonical phases of a run.
const (
	PhaseIdle       Phase = "idle"       // Waiting for a goal
	PhasePlanning   Phase = "planning"   // Searching for a plan
	PhaseExecuting  Phase = "executing"  // Performing plan steps
	PhaseReplanning Phase = "replanning" // Plan invalidated, searching again
	PhaseDone       Phase = "done"       // Terminal success
	PhaseFailed     Phase = "failed"     // Terminal failure
)

// IsTerminal returns true if this is a terminal phase (done or failed).
func (p Phase) IsTerminal() bool {
	return p == PhaseDone || p == PhaseFailed
}

// IsValid returns true if the phase is a recognized canonical phase.
func (p Phase) IsValid() bool {
	switch p {
	case PhaseIdle, PhasePlanning, PhaseExecuting, PhaseReplanning, PhaseDone, PhaseFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation of the phase.
func (p Phase) String() string {
	return string(p)
}

// AllPhases returns all canonical phases.
func AllPhases() []Phase {
	return []Phase{
		PhaseIdle,
		PhasePlanning,
		PhaseExecuting,
		PhaseReplanning,
		PhaseDone,
		PhaseFailed,
	}
}

// Status represents the current status of a run.
type Status string

const (
	StatusPending   Status = "pending"   // Not yet started
	StatusRunning   Status = "running"   // Currently executing
	StatusCompleted Status = "completed" // Successfully finished
	StatusFailed    Status = "failed"    // Terminated with error
)

// Run represents a single goal pursuit: select, plan, execute, replan as
// needed. It is the aggregate root for the execution domain.
type Run struct {
	ID            string    `json:"id"`
	AgentID       string    `json:"agent_id"`
	GoalID        string    `json:"goal_id,omitempty"`
	Phase         Phase     `json:"phase"`
	Status        Status    `json:"status"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time,omitempty"`
	StepsExecuted int       `json:"steps_executed"`
	ReplanCount   int       `json:"replan_count"`
	TotalCost     float64   `json:"total_cost"`
	Error         string    `json:"error,omitempty"`
}

// NewRun creates a new run for the given agent.
func NewRun(id, agentID string) *Run {
	return &Run{
		ID:        id,
		AgentID:   agentID,
		Phase:     PhaseIdle,
		Status:    StatusPending,
		StartTime: time.Now(),
	}
}

// Start marks the run as running.
func (r *Run) Start() {
	r.Status = StatusRunning
	r.StartTime = time.Now()
}

// TransitionTo changes the current phase.
func (r *Run) TransitionTo(phase Phase) {
	r.Phase = phase
	if phase.IsTerminal() {
		r.EndTime = time.Now()
		if phase == PhaseDone {
			r.Status = StatusCompleted
		} else {
			r.Status = StatusFailed
		}
	}
}

// Complete marks the run as successfully completed.
func (r *Run) Complete() {
	r.Status = StatusCompleted
	r.Phase = PhaseDone
	r.EndTime = time.Now()
}

// Fail marks the run as failed with an error.
func (r *Run) Fail(err string) {
	r.Status = StatusFailed
	r.Phase = PhaseFailed
	r.EndTime = time.Now()
	r.Error = err
}

// RecordStep accounts for one executed plan step.
func (r *Run) RecordStep(cost float64) {
	r.StepsExecuted++
	r.TotalCost += cost
}

// RecordReplan accounts for one replanning round.
func (r *Run) RecordReplan() {
	r.ReplanCount++
}

// IsTerminal returns true if the run has reached a terminal status.
func (r *Run) IsTerminal() bool {
	return r.Status == StatusCompleted || r.Status == StatusFailed
}

// Duration returns the duration of the run.
func (r *Run) Duration() time.Duration {
	if r.EndTime.IsZero() {
		return time.Since(r.StartTime)
	}
	return r.EndTime.Sub(r.StartTime)
}
