package application

import (
	"context"
	"reflect"
	"testing"

	"github.com/ruvnet/arcadia-goap/domain/action"
	"github.com/ruvnet/arcadia-goap/domain/cache"
	"github.com/ruvnet/arcadia-goap/domain/goal"
	"github.com/ruvnet/arcadia-goap/domain/plan"
	"github.com/ruvnet/arcadia-goap/domain/run"
	"github.com/ruvnet/arcadia-goap/domain/world"
	"github.com/ruvnet/arcadia-goap/infrastructure/storage/memory"
)

func newCachedCombatPlanner(t *testing.T) (*CachedPlanner, *memory.Cache) {
	t.Helper()
	p := NewPlanner(PlannerConfig{})
	mustRegisterActions(t, p, combatActions()...)
	mustRegisterGoals(t, p, killEnemyGoal())
	c := memory.NewCache()
	return NewCachedPlanner(p, c), c
}

func TestCachedPlanner_MissThenHit(t *testing.T) {
	cp, backend := newCachedCombatPlanner(t)
	ctx := context.Background()

	first, firstDiag, err := cp.Plan(ctx, "kill_enemy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == nil {
		t.Fatal("expected a plan")
	}
	if firstDiag.Cached {
		t.Error("first search must not report cached")
	}
	if backend.Stats().Size != 1 {
		t.Errorf("expected 1 cached entry, got %d", backend.Stats().Size)
	}

	second, secondDiag, err := cp.Plan(ctx, "kill_enemy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !secondDiag.Cached {
		t.Error("second call must be served from cache")
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cached plan diverged: %v vs %v", first, second)
	}
	// The hit carries the original search counters.
	if secondDiag.Iterations != firstDiag.Iterations {
		t.Errorf("expected original iterations %d, got %d", firstDiag.Iterations, secondDiag.Iterations)
	}
}

func TestCachedPlanner_StateChangeMisses(t *testing.T) {
	cp, _ := newCachedCombatPlanner(t)
	ctx := context.Background()

	first, _, err := cp.Plan(ctx, "kill_enemy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Len() != 3 {
		t.Fatalf("expected a 3-step plan, got %d", first.Len())
	}

	// Arming the agent changes the state fingerprint, so the shorter plan
	// comes from a fresh search, not the stale entry.
	cp.ApplyFacts(world.Facts{"has_weapon": world.Bool(true)})

	second, diag, err := cp.Plan(ctx, "kill_enemy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diag.Cached {
		t.Error("state change must force a fresh search")
	}
	if second.Len() != 2 {
		t.Errorf("expected a 2-step plan after arming, got %d", second.Len())
	}
}

func TestCachedPlanner_LibraryChangeMisses(t *testing.T) {
	cp, _ := newCachedCombatPlanner(t)
	ctx := context.Background()

	if _, _, err := cp.Plan(ctx, "kill_enemy"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Any registry mutation bumps the library version embedded in the key.
	if err := cp.Unwrap().SetActionCost("attack", 50); err != nil {
		t.Fatalf("failed to set cost: %v", err)
	}

	_, diag, err := cp.Plan(ctx, "kill_enemy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diag.Cached {
		t.Error("library change must force a fresh search")
	}
}

func TestCachedPlanner_GoalsKeyedSeparately(t *testing.T) {
	cp, _ := newCachedCombatPlanner(t)
	ctx := context.Background()
	if err := cp.Unwrap().RegisterGoal(goal.Goal{
		ID:         "get_armed",
		Priority:   0.4,
		Conditions: world.Facts{"has_weapon": world.Bool(true)},
	}); err != nil {
		t.Fatalf("failed to register goal: %v", err)
	}

	if _, _, err := cp.Plan(ctx, "kill_enemy"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A different goal has its own key: first call misses.
	_, diag, err := cp.Plan(ctx, "get_armed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diag.Cached {
		t.Error("a different goal must not hit the first goal's entry")
	}
}

func TestCachedPlanner_NilPlanNotCached(t *testing.T) {
	p := NewPlanner(PlannerConfig{})
	mustRegisterGoals(t, p, goal.Goal{
		ID:         "impossible",
		Priority:   1.0,
		Conditions: world.Facts{"flying": world.Bool(true)},
	})
	backend := memory.NewCache()
	cp := NewCachedPlanner(p, backend)
	ctx := context.Background()

	result, diag, err := cp.Plan(ctx, "impossible")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Fatalf("expected nil plan, got %v", result)
	}
	if diag.Outcome != plan.OutcomeNoPlan {
		t.Errorf("expected outcome %s, got %s", plan.OutcomeNoPlan, diag.Outcome)
	}
	if backend.Stats().Size != 0 {
		t.Errorf("expected no cached entries for a nil plan, got %d", backend.Stats().Size)
	}

	// Register the missing capability; the next call must find a plan,
	// not a cached nil.
	if err := p.RegisterAction(action.Action{
		ID:      "take_off",
		Cost:    1,
		Effects: world.Facts{"flying": world.Bool(true)},
	}); err != nil {
		t.Fatalf("failed to register action: %v", err)
	}

	result, _, err = cp.Plan(ctx, "impossible")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("expected a plan after registering the action")
	}
}

func TestCachedPlanner_UnknownGoal(t *testing.T) {
	cp, backend := newCachedCombatPlanner(t)

	_, _, err := cp.Plan(context.Background(), "never_registered")
	if err == nil {
		t.Fatal("expected an error for an unknown goal")
	}
	if backend.Stats().Size != 0 {
		t.Errorf("expected no cached entries after an error, got %d", backend.Stats().Size)
	}
}

func TestCachedPlanner_CorruptEntryRecomputed(t *testing.T) {
	cp, backend := newCachedCombatPlanner(t)
	ctx := context.Background()

	if _, _, err := cp.Plan(ctx, "kill_enemy"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Overwrite the stored entry with garbage; the wrapper must drop it
	// and search again.
	key := cp.cacheKey("kill_enemy")
	if err := backend.Set(ctx, key, []byte("not json"), cache.SetOptions{}); err != nil {
		t.Fatalf("failed to corrupt entry: %v", err)
	}

	result, diag, err := cp.Plan(ctx, "kill_enemy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("expected a recomputed plan")
	}
	if diag.Cached {
		t.Error("a corrupt entry must not count as a hit")
	}
}

func TestCachedPlanner_PlanBest(t *testing.T) {
	cp, _ := newCachedCombatPlanner(t)
	ctx := context.Background()

	if _, _, err := cp.PlanBest(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, diag, err := cp.PlanBest(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !diag.Cached {
		t.Error("expected the second selection to hit the cache")
	}
	if diag.GoalID != "kill_enemy" {
		t.Errorf("expected goal kill_enemy, got %s", diag.GoalID)
	}
}

func TestCachedPlanner_PlanBest_NoPendingGoal(t *testing.T) {
	p := NewPlanner(PlannerConfig{})
	cp := NewCachedPlanner(p, memory.NewCache())

	result, diag, err := cp.PlanBest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Fatalf("expected nil plan, got %v", result)
	}
	if diag.Outcome != plan.OutcomeNoPendingGoal {
		t.Errorf("expected outcome %s, got %s", plan.OutcomeNoPendingGoal, diag.Outcome)
	}
}

func TestCachedPlanner_Invalidate(t *testing.T) {
	cp, backend := newCachedCombatPlanner(t)
	ctx := context.Background()

	if _, _, err := cp.Plan(ctx, "kill_enemy"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if backend.Stats().Size != 1 {
		t.Fatalf("expected 1 entry before invalidation, got %d", backend.Stats().Size)
	}

	if err := cp.Invalidate(ctx); err != nil {
		t.Fatalf("failed to invalidate: %v", err)
	}
	if backend.Stats().Size != 0 {
		t.Errorf("expected an empty cache, got %d entries", backend.Stats().Size)
	}

	_, diag, err := cp.Plan(ctx, "kill_enemy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diag.Cached {
		t.Error("expected a fresh search after invalidation")
	}
}

func TestCachedPlanner_ExecutorIntegration(t *testing.T) {
	// Two consecutive runs over the same world: the second run's search
	// is served from cache and the executor never notices the difference.
	p := NewPlanner(PlannerConfig{})
	mustRegisterActions(t, p, combatActions()...)
	mustRegisterGoals(t, p, killEnemyGoal())
	cp := NewCachedPlanner(p, memory.NewCache())

	first, err := NewExecutor(ExecutorConfig{Planner: cp})
	if err != nil {
		t.Fatalf("failed to create executor: %v", err)
	}
	if _, err := first.Run(context.Background()); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	// Reset the world to the original situation for the second run.
	cp.SetWorldState(world.NewState())

	second, err := NewExecutor(ExecutorConfig{Planner: cp})
	if err != nil {
		t.Fatalf("failed to create executor: %v", err)
	}
	r, err := second.Run(context.Background())
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if r.Status != run.StatusCompleted {
		t.Errorf("expected status completed, got %s", r.Status)
	}
	if r.StepsExecuted != 3 {
		t.Errorf("expected 3 steps, got %d", r.StepsExecuted)
	}
}
