package memory_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ruvnet/arcadia-goap/domain/plan"
	"github.com/ruvnet/arcadia-goap/infrastructure/storage/memory"
)

func newRecord(id, agentID, goalID string, outcome plan.Outcome, cost float64, createdAt time.Time) plan.Record {
	r := plan.Record{
		ID:        id,
		AgentID:   agentID,
		GoalID:    goalID,
		CreatedAt: createdAt,
		Diagnostics: plan.Diagnostics{
			Outcome:       outcome,
			GoalID:        goalID,
			Iterations:    4,
			NodesExpanded: 3,
		},
	}
	if outcome == plan.OutcomePlanFound {
		r.Plan = &plan.Plan{
			GoalID:    goalID,
			Steps:     []plan.Step{{ActionID: "act", Cost: cost}},
			TotalCost: cost,
		}
	}
	return r
}

func TestPlanArchive_Save(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("saves and retrieves record", func(t *testing.T) {
		t.Parallel()

		archive := memory.NewPlanArchive()
		r := newRecord("rec-1", "agent-1", "kill_enemy", plan.OutcomePlanFound, 6, time.Now())

		if err := archive.Save(ctx, r); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		got, err := archive.Get(ctx, "rec-1")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.AgentID != "agent-1" || got.GoalID != "kill_enemy" {
			t.Errorf("Get() = %+v, want agent-1/kill_enemy", got)
		}
		if got.Plan == nil || got.Plan.TotalCost != 6 {
			t.Errorf("Get().Plan = %+v, want plan with cost 6", got.Plan)
		}
		if got.Diagnostics.Outcome != plan.OutcomePlanFound {
			t.Errorf("Outcome = %s, want %s", got.Diagnostics.Outcome, plan.OutcomePlanFound)
		}
	})

	t.Run("rejects empty ID", func(t *testing.T) {
		t.Parallel()

		archive := memory.NewPlanArchive()
		r := newRecord("", "agent-1", "g", plan.OutcomeNoPlan, 0, time.Now())
		if err := archive.Save(ctx, r); !errors.Is(err, plan.ErrInvalidRecordID) {
			t.Errorf("Save() error = %v, want ErrInvalidRecordID", err)
		}
	})

	t.Run("rejects duplicate ID", func(t *testing.T) {
		t.Parallel()

		archive := memory.NewPlanArchive()
		r := newRecord("rec-1", "agent-1", "g", plan.OutcomeNoPlan, 0, time.Now())
		if err := archive.Save(ctx, r); err != nil {
			t.Fatalf("first Save() error = %v", err)
		}
		if err := archive.Save(ctx, r); !errors.Is(err, plan.ErrRecordExists) {
			t.Errorf("second Save() error = %v, want ErrRecordExists", err)
		}
	})

	t.Run("stores a copy", func(t *testing.T) {
		t.Parallel()

		archive := memory.NewPlanArchive()
		r := newRecord("rec-1", "agent-1", "g", plan.OutcomePlanFound, 5, time.Now())
		if err := archive.Save(ctx, r); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		r.Plan.TotalCost = 99

		got, err := archive.Get(ctx, "rec-1")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.Plan.TotalCost != 5 {
			t.Errorf("stored TotalCost = %g after caller mutation, want 5", got.Plan.TotalCost)
		}
	})
}

func TestPlanArchive_Get(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	archive := memory.NewPlanArchive()

	if _, err := archive.Get(ctx, "missing"); !errors.Is(err, plan.ErrRecordNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrRecordNotFound", err)
	}
	if _, err := archive.Get(ctx, ""); !errors.Is(err, plan.ErrInvalidRecordID) {
		t.Errorf("Get(\"\") error = %v, want ErrInvalidRecordID", err)
	}
}

func TestPlanArchive_List(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seed := func(t *testing.T) *memory.PlanArchive {
		t.Helper()
		archive := memory.NewPlanArchive()
		records := []plan.Record{
			newRecord("r1", "npc-1", "kill_enemy", plan.OutcomePlanFound, 6, base),
			newRecord("r2", "npc-1", "stay_fed", plan.OutcomeNoPlan, 0, base.Add(time.Minute)),
			newRecord("r3", "npc-2", "kill_enemy", plan.OutcomePlanFound, 2, base.Add(2*time.Minute)),
			newRecord("r4", "npc-2", "kill_enemy", plan.OutcomeBudgetExceeded, 0, base.Add(3*time.Minute)),
		}
		for _, r := range records {
			if err := archive.Save(ctx, r); err != nil {
				t.Fatalf("Save(%s) error = %v", r.ID, err)
			}
		}
		return archive
	}

	t.Run("filters by agent", func(t *testing.T) {
		t.Parallel()

		got, err := seed(t).List(ctx, plan.ListFilter{AgentID: "npc-1"})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("List() returned %d records, want 2", len(got))
		}
		for _, r := range got {
			if r.AgentID != "npc-1" {
				t.Errorf("record %s has AgentID %s, want npc-1", r.ID, r.AgentID)
			}
		}
	})

	t.Run("filters by goal", func(t *testing.T) {
		t.Parallel()

		got, err := seed(t).List(ctx, plan.ListFilter{GoalID: "kill_enemy"})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(got) != 3 {
			t.Errorf("List() returned %d records, want 3", len(got))
		}
	})

	t.Run("filters by outcome", func(t *testing.T) {
		t.Parallel()

		got, err := seed(t).List(ctx, plan.ListFilter{
			Outcomes: []plan.Outcome{plan.OutcomeNoPlan, plan.OutcomeBudgetExceeded},
		})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(got) != 2 {
			t.Errorf("List() returned %d records, want 2", len(got))
		}
	})

	t.Run("filters by time range", func(t *testing.T) {
		t.Parallel()

		got, err := seed(t).List(ctx, plan.ListFilter{
			FromTime: base.Add(30 * time.Second),
			ToTime:   base.Add(150 * time.Second),
		})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("List() returned %d records, want 2", len(got))
		}
	})

	t.Run("orders by created_at by default", func(t *testing.T) {
		t.Parallel()

		got, err := seed(t).List(ctx, plan.ListFilter{})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		want := []string{"r1", "r2", "r3", "r4"}
		for i, id := range want {
			if got[i].ID != id {
				t.Errorf("List()[%d].ID = %s, want %s", i, got[i].ID, id)
			}
		}
	})

	t.Run("orders by cost descending", func(t *testing.T) {
		t.Parallel()

		got, err := seed(t).List(ctx, plan.ListFilter{
			OrderBy:    plan.OrderByCost,
			Descending: true,
			Outcomes:   []plan.Outcome{plan.OutcomePlanFound},
		})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("List() returned %d records, want 2", len(got))
		}
		if got[0].Plan.TotalCost != 6 || got[1].Plan.TotalCost != 2 {
			t.Errorf("costs = %g, %g, want 6, 2", got[0].Plan.TotalCost, got[1].Plan.TotalCost)
		}
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		got, err := seed(t).List(ctx, plan.ListFilter{Limit: 2, Offset: 1})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("List() returned %d records, want 2", len(got))
		}
		if got[0].ID != "r2" || got[1].ID != "r3" {
			t.Errorf("List() = %s, %s, want r2, r3", got[0].ID, got[1].ID)
		}
	})

	t.Run("offset past end returns empty", func(t *testing.T) {
		t.Parallel()

		got, err := seed(t).List(ctx, plan.ListFilter{Offset: 10})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("List() returned %d records, want 0", len(got))
		}
	})
}

func TestPlanArchive_Count(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	archive := memory.NewPlanArchive()
	for i := 0; i < 5; i++ {
		outcome := plan.OutcomePlanFound
		if i%2 == 1 {
			outcome = plan.OutcomeNoPlan
		}
		r := newRecord(fmt.Sprintf("r%d", i), "npc-1", "g", outcome, float64(i), time.Now())
		if err := archive.Save(ctx, r); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	total, err := archive.Count(ctx, plan.ListFilter{})
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if total != 5 {
		t.Errorf("Count() = %d, want 5", total)
	}

	found, err := archive.Count(ctx, plan.ListFilter{Outcomes: []plan.Outcome{plan.OutcomePlanFound}})
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if found != 3 {
		t.Errorf("Count(plan_found) = %d, want 3", found)
	}
}

func TestPlanArchive_Summary(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	archive := memory.NewPlanArchive()
	records := []plan.Record{
		newRecord("r1", "npc-1", "g", plan.OutcomePlanFound, 4, time.Now()),
		newRecord("r2", "npc-1", "g", plan.OutcomePlanFound, 8, time.Now()),
		newRecord("r3", "npc-1", "g", plan.OutcomeNoPlan, 0, time.Now()),
		newRecord("r4", "npc-1", "g", plan.OutcomeBudgetExceeded, 0, time.Now()),
	}
	for _, r := range records {
		if err := archive.Save(ctx, r); err != nil {
			t.Fatalf("Save(%s) error = %v", r.ID, err)
		}
	}

	got, err := archive.Summary(ctx, plan.ListFilter{})
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}

	if got.TotalRecords != 4 {
		t.Errorf("TotalRecords = %d, want 4", got.TotalRecords)
	}
	if got.PlansFound != 2 {
		t.Errorf("PlansFound = %d, want 2", got.PlansFound)
	}
	if got.NoPlan != 1 {
		t.Errorf("NoPlan = %d, want 1", got.NoPlan)
	}
	if got.BudgetExceeded != 1 {
		t.Errorf("BudgetExceeded = %d, want 1", got.BudgetExceeded)
	}
	if got.AverageCost != 6 {
		t.Errorf("AverageCost = %g, want 6", got.AverageCost)
	}
	if got.AverageNodesExpanded != 3 {
		t.Errorf("AverageNodesExpanded = %g, want 3", got.AverageNodesExpanded)
	}
}

func TestPlanArchive_Clear(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	archive := memory.NewPlanArchive()
	r := newRecord("r1", "npc-1", "g", plan.OutcomeNoPlan, 0, time.Now())
	if err := archive.Save(ctx, r); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	archive.Clear()

	if archive.Len() != 0 {
		t.Errorf("Len() = %d after Clear(), want 0", archive.Len())
	}
	if _, err := archive.Get(ctx, "r1"); !errors.Is(err, plan.ErrRecordNotFound) {
		t.Errorf("Get() error = %v after Clear(), want ErrRecordNotFound", err)
	}
}
