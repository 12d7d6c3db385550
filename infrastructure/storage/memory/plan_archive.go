package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/ruvnet/arcadia-goap/domain/plan"
)

// archiveEntry holds a deep copy of a record for storage.
type archiveEntry struct {
	data []byte
}

// PlanArchive is an in-memory implementation of plan.Archive.
type PlanArchive struct {
	records map[string]*archiveEntry
	mu      sync.RWMutex
}

// NewPlanArchive creates a new in-memory plan archive.
func NewPlanArchive() *PlanArchive {
	return &PlanArchive{
		records: make(map[string]*archiveEntry),
	}
}

// Save persists a new record.
func (s *PlanArchive) Save(ctx context.Context, r plan.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if r.ID == "" {
		return plan.ErrInvalidRecordID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[r.ID]; exists {
		return plan.ErrRecordExists
	}

	data, err := json.Marshal(r)
	if err != nil {
		return err
	}

	s.records[r.ID] = &archiveEntry{data: data}
	return nil
}

// Get retrieves a record by ID.
func (s *PlanArchive) Get(ctx context.Context, id string) (plan.Record, error) {
	if err := ctx.Err(); err != nil {
		return plan.Record{}, err
	}

	if id == "" {
		return plan.Record{}, plan.ErrInvalidRecordID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.records[id]
	if !ok {
		return plan.Record{}, plan.ErrRecordNotFound
	}

	var r plan.Record
	if err := json.Unmarshal(entry.data, &r); err != nil {
		return plan.Record{}, err
	}
	return r, nil
}

// List returns records matching the filter.
func (s *PlanArchive) List(ctx context.Context, filter plan.ListFilter) ([]plan.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []plan.Record
	for _, entry := range s.records {
		var r plan.Record
		if err := json.Unmarshal(entry.data, &r); err != nil {
			continue
		}
		if !matchesFilter(r, filter) {
			continue
		}
		result = append(result, r)
	}

	sortRecords(result, filter.OrderBy, filter.Descending)

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return []plan.Record{}, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}

	return result, nil
}

// Count returns the number of records matching the filter.
func (s *PlanArchive) Count(ctx context.Context, filter plan.ListFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, entry := range s.records {
		var r plan.Record
		if err := json.Unmarshal(entry.data, &r); err != nil {
			continue
		}
		if matchesFilter(r, filter) {
			count++
		}
	}
	return count, nil
}

// Summary aggregates records matching the filter.
func (s *PlanArchive) Summary(ctx context.Context, filter plan.ListFilter) (plan.Summary, error) {
	if err := ctx.Err(); err != nil {
		return plan.Summary{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var summary plan.Summary
	var totalCost float64
	var totalExpanded int64

	for _, entry := range s.records {
		var r plan.Record
		if err := json.Unmarshal(entry.data, &r); err != nil {
			continue
		}
		if !matchesFilter(r, filter) {
			continue
		}

		summary.TotalRecords++
		totalExpanded += int64(r.Diagnostics.NodesExpanded)

		switch r.Diagnostics.Outcome {
		case plan.OutcomePlanFound:
			summary.PlansFound++
			if r.Plan != nil {
				totalCost += r.Plan.TotalCost
			}
		case plan.OutcomeNoPlan:
			summary.NoPlan++
		case plan.OutcomeBudgetExceeded:
			summary.BudgetExceeded++
		}
	}

	if summary.PlansFound > 0 {
		summary.AverageCost = totalCost / float64(summary.PlansFound)
	}
	if summary.TotalRecords > 0 {
		summary.AverageNodesExpanded = float64(totalExpanded) / float64(summary.TotalRecords)
	}

	return summary, nil
}

// Clear removes all records from the archive.
func (s *PlanArchive) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]*archiveEntry)
}

// Len returns the number of stored records.
func (s *PlanArchive) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// matchesFilter checks if a record matches the filter criteria.
func matchesFilter(r plan.Record, filter plan.ListFilter) bool {
	if filter.AgentID != "" && r.AgentID != filter.AgentID {
		return false
	}
	if filter.GoalID != "" && r.GoalID != filter.GoalID {
		return false
	}

	if len(filter.Outcomes) > 0 {
		found := false
		for _, o := range filter.Outcomes {
			if r.Diagnostics.Outcome == o {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if !filter.FromTime.IsZero() && r.CreatedAt.Before(filter.FromTime) {
		return false
	}
	if !filter.ToTime.IsZero() && r.CreatedAt.After(filter.ToTime) {
		return false
	}

	return true
}

// sortRecords sorts records by the specified field.
func sortRecords(records []plan.Record, orderBy plan.OrderBy, descending bool) {
	sort.Slice(records, func(i, j int) bool {
		var less bool

		switch orderBy {
		case plan.OrderByCost:
			less = recordCost(records[i]) < recordCost(records[j])
		case plan.OrderByGoalID:
			less = records[i].GoalID < records[j].GoalID
		default:
			less = records[i].CreatedAt.Before(records[j].CreatedAt)
		}

		if descending {
			return !less
		}
		return less
	})
}

// recordCost orders no-plan records before any found plan.
func recordCost(r plan.Record) float64 {
	if r.Plan == nil {
		return -1
	}
	return r.Plan.TotalCost
}

var _ plan.Archive = (*PlanArchive)(nil)
