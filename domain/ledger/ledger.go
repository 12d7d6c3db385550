package ledger

import (
	"sync"
	"time"

	"github.com/ruvnet/arcadia-goap/domain/goal"
	"github.com/ruvnet/arcadia-goap/domain/plan"
)

// Ledger provides an append-only record of all planning and execution
// activity during a run.
type Ledger struct {
	runID   string
	entries []Entry
	mu      sync.RWMutex
}

// New creates a new ledger for the given run.
func New(runID string) *Ledger {
	return &Ledger{
		runID:   runID,
		entries: make([]Entry, 0),
	}
}

// Append adds an entry to the ledger.
func (l *Ledger) Append(entry Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry.RunID = l.runID
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.ID == "" {
		entry.ID = generateEntryID()
	}

	l.entries = append(l.entries, entry)
}

// Entries returns a copy of all entries.
func (l *Ledger) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entries := make([]Entry, len(l.entries))
	copy(entries, l.entries)
	return entries
}

// EntriesByType returns entries filtered by type.
func (l *Ledger) EntriesByType(entryType EntryType) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var filtered []Entry
	for _, e := range l.entries {
		if e.Type == entryType {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// LastEntry returns the most recent entry, or nil if empty.
func (l *Ledger) LastEntry() *Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.entries) == 0 {
		return nil
	}
	entry := l.entries[len(l.entries)-1]
	return &entry
}

// Count returns the number of entries.
func (l *Ledger) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// RunID returns the associated run ID.
func (l *Ledger) RunID() string {
	return l.runID
}

// RecordRunStarted records the start of a run.
func (l *Ledger) RecordRunStarted(phase string) {
	l.Append(NewEntry(EntryRunStarted, l.runID, phase, nil))
}

// RecordRunCompleted records the successful completion of a run.
func (l *Ledger) RecordRunCompleted(phase string) {
	l.Append(NewEntry(EntryRunCompleted, l.runID, phase, nil))
}

// RecordRunFailed records the failure of a run.
func (l *Ledger) RecordRunFailed(phase, reason string) {
	l.Append(NewEntry(EntryRunFailed, l.runID, phase, map[string]string{
		"reason": reason,
	}))
}

// RecordPhaseChanged records a run phase transition.
func (l *Ledger) RecordPhaseChanged(from, to, reason string) {
	l.Append(NewEntry(EntryPhaseChanged, l.runID, to, PhaseDetails{
		From:   from,
		To:     to,
		Reason: reason,
	}))
}

// RecordGoalSelected records a goal selection.
func (l *Ledger) RecordGoalSelected(phase string, g goal.Goal) {
	l.Append(NewEntry(EntryGoalSelected, l.runID, phase, GoalDetails{
		GoalID:   g.ID,
		Priority: g.Priority,
	}))
}

// RecordPlanComputed records a successful planning result.
func (l *Ledger) RecordPlanComputed(phase string, p *plan.Plan, d plan.Diagnostics, cached bool) {
	l.Append(NewEntry(EntryPlanComputed, l.runID, phase, PlanDetails{
		GoalID:        p.GoalID,
		Outcome:       string(plan.OutcomePlanFound),
		ActionIDs:     p.ActionIDs(),
		TotalCost:     p.TotalCost,
		Iterations:    d.Iterations,
		NodesExpanded: d.NodesExpanded,
		Cached:        cached,
	}))
}

// RecordNoPlan records a planning call that produced no plan.
func (l *Ledger) RecordNoPlan(phase string, d plan.Diagnostics) {
	l.Append(NewEntry(EntryNoPlan, l.runID, phase, PlanDetails{
		GoalID:        d.GoalID,
		Outcome:       string(d.Outcome),
		Iterations:    d.Iterations,
		NodesExpanded: d.NodesExpanded,
	}))
}

// RecordActionExecuted records a successful action execution.
func (l *Ledger) RecordActionExecuted(phase, actionID string, cost float64, duration time.Duration) {
	l.Append(NewEntry(EntryActionExecuted, l.runID, phase, ActionDetails{
		ActionID: actionID,
		Cost:     cost,
		Duration: duration,
	}))
}

// RecordActionFailed records a failed action execution.
func (l *Ledger) RecordActionFailed(phase, actionID string, err error) {
	l.Append(NewEntry(EntryActionFailed, l.runID, phase, ActionDetails{
		ActionID: actionID,
		Error:    err.Error(),
	}))
}

// RecordPlanInvalidated records a plan abandoned before completion.
func (l *Ledger) RecordPlanInvalidated(phase, actionID, reason string) {
	l.Append(NewEntry(EntryPlanInvalidated, l.runID, phase, InvalidationDetails{
		ActionID: actionID,
		Reason:   reason,
	}))
}

// RecordReplanTriggered records the decision to plan again.
func (l *Ledger) RecordReplanTriggered(phase, reason string) {
	l.Append(NewEntry(EntryReplanTriggered, l.runID, phase, map[string]string{
		"reason": reason,
	}))
}

// RecordBudgetConsumed records budget consumption.
func (l *Ledger) RecordBudgetConsumed(phase, resource string, amount, remaining int64) {
	l.Append(NewEntry(EntryBudgetConsumed, l.runID, phase, BudgetDetails{
		Resource:  resource,
		Amount:    amount,
		Remaining: remaining,
	}))
}

// RecordBudgetExhausted records budget exhaustion.
func (l *Ledger) RecordBudgetExhausted(phase, resource string) {
	l.Append(NewEntry(EntryBudgetExhausted, l.runID, phase, BudgetDetails{
		Resource:  resource,
		Remaining: 0,
	}))
}
