package survival_test

import (
	"context"
	"testing"

	"github.com/ruvnet/arcadia-goap/application"
	"github.com/ruvnet/arcadia-goap/domain/world"
	"github.com/ruvnet/arcadia-goap/pack/survival"
)

func newPlanner(t *testing.T, initial world.Facts) *application.Planner {
	t.Helper()

	p := survival.New()
	planner := application.NewPlanner(application.PlannerConfig{
		InitialState: world.StateOf(initial),
	})
	if err := planner.RegisterActions(p.Actions...); err != nil {
		t.Fatalf("RegisterActions() error = %v", err)
	}
	if err := planner.RegisterGoals(p.Goals...); err != nil {
		t.Fatalf("RegisterGoals() error = %v", err)
	}
	return planner
}

func TestNew(t *testing.T) {
	t.Parallel()

	p := survival.New()

	if p.Name != "survival" {
		t.Errorf("Name = %q, want %q", p.Name, "survival")
	}
	if len(p.Actions) != 5 {
		t.Errorf("len(Actions) = %d, want 5", len(p.Actions))
	}
	if len(p.Goals) != 2 {
		t.Errorf("len(Goals) = %d, want 2", len(p.Goals))
	}
}

func TestPlan_StayFed(t *testing.T) {
	t.Parallel()

	t.Run("forages when in the forest", func(t *testing.T) {
		t.Parallel()

		planner := newPlanner(t, world.Facts{"at_forest": world.Bool(true)})

		pl, _, err := planner.Plan(context.Background(), "stay_fed")
		if err != nil {
			t.Fatalf("Plan() error = %v", err)
		}
		if pl == nil {
			t.Fatal("Plan() = nil, want a plan")
		}

		want := []string{"forage_berries", "eat"}
		if len(pl.Steps) != len(want) {
			t.Fatalf("len(Steps) = %d, want %d", len(pl.Steps), len(want))
		}
		for i, id := range want {
			if pl.Steps[i].ActionID != id {
				t.Errorf("Steps[%d] = %q, want %q", i, pl.Steps[i].ActionID, id)
			}
		}
		if pl.TotalCost != 3 {
			t.Errorf("TotalCost = %v, want 3", pl.TotalCost)
		}
	})

	t.Run("hunts when armed away from the forest", func(t *testing.T) {
		t.Parallel()

		planner := newPlanner(t, world.Facts{"has_weapon": world.Bool(true)})

		pl, _, err := planner.Plan(context.Background(), "stay_fed")
		if err != nil {
			t.Fatalf("Plan() error = %v", err)
		}
		if pl == nil || len(pl.Steps) != 2 || pl.Steps[0].ActionID != "hunt_game" {
			t.Fatalf("Plan() = %v, want [hunt_game eat]", pl)
		}
	})
}

func TestPlan_SettleCamp(t *testing.T) {
	t.Parallel()

	planner := newPlanner(t, world.Facts{"has_wood": world.Bool(true)})

	pl, _, err := planner.Plan(context.Background(), "settle_camp")
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if pl == nil {
		t.Fatal("Plan() = nil, want a plan")
	}

	want := []string{"build_shelter", "light_fire"}
	if len(pl.Steps) != len(want) {
		t.Fatalf("len(Steps) = %d, want %d", len(pl.Steps), len(want))
	}
	for i, id := range want {
		if pl.Steps[i].ActionID != id {
			t.Errorf("Steps[%d] = %q, want %q", i, pl.Steps[i].ActionID, id)
		}
	}
	if pl.TotalCost != 7 {
		t.Errorf("TotalCost = %v, want 7", pl.TotalCost)
	}
}
