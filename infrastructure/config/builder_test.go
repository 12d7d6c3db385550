package config

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ruvnet/arcadia-goap/domain/cache"
	domainconfig "github.com/ruvnet/arcadia-goap/domain/config"
	"github.com/ruvnet/arcadia-goap/domain/plan"
	"github.com/ruvnet/arcadia-goap/domain/world"
)

func TestBuilder_BasicBuild(t *testing.T) {
	cfg := &domainconfig.EngineConfig{
		Name:    "test-engine",
		Version: "1.0",
	}

	builder := NewBuilder(cfg)
	result, err := builder.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer result.Close()

	if len(result.Actions) != 0 {
		t.Errorf("Actions has %d entries, want 0", len(result.Actions))
	}
	if result.InitialState.Len() != 0 {
		t.Errorf("InitialState has %d facts, want 0", result.InitialState.Len())
	}
	if result.Archive != nil || result.Cache != nil || result.Events != nil {
		t.Error("storage backends should be nil when not configured")
	}
}

func TestBuilder_Domain(t *testing.T) {
	cfg := &domainconfig.EngineConfig{
		Name:    "test-engine",
		Version: "1.0",
		Domain: domainconfig.DomainConfig{
			InitialState: map[string]any{
				"has_weapon":    false,
				"weapon_nearby": true,
				"ammo":          3,
			},
			Actions: []domainconfig.ActionDef{
				{
					ID:            "pickup_weapon",
					Cost:          1,
					Preconditions: map[string]any{"weapon_nearby": true},
					Effects:       map[string]any{"has_weapon": true},
				},
			},
			Goals: []domainconfig.GoalDef{
				{
					ID:         "armed",
					Priority:   0.8,
					Conditions: map[string]any{"has_weapon": true},
				},
			},
		},
	}

	builder := NewBuilder(cfg)
	result, err := builder.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer result.Close()

	if len(result.Actions) != 1 {
		t.Fatalf("Actions has %d entries, want 1", len(result.Actions))
	}
	act := result.Actions[0]
	if act.ID != "pickup_weapon" {
		t.Errorf("Action.ID = %s, want pickup_weapon", act.ID)
	}
	if act.Cost != 1 {
		t.Errorf("Action.Cost = %g, want 1", act.Cost)
	}
	if !act.Applicable(result.InitialState) {
		t.Error("pickup_weapon should be applicable in the initial state")
	}

	if len(result.Goals) != 1 {
		t.Fatalf("Goals has %d entries, want 1", len(result.Goals))
	}
	g := result.Goals[0]
	if g.ID != "armed" || g.Priority != 0.8 {
		t.Errorf("Goal = %v, want armed with priority 0.8", g)
	}
	if g.Satisfied(result.InitialState) {
		t.Error("armed should not be satisfied in the initial state")
	}
	if !g.Satisfied(act.Apply(result.InitialState)) {
		t.Error("armed should be satisfied after pickup_weapon")
	}

	ammo, ok := result.InitialState.Get("ammo")
	if !ok || !ammo.Equal(world.Int(3)) {
		t.Errorf("InitialState[ammo] = %v, want 3", ammo)
	}
}

func TestBuilder_InvalidStateValue(t *testing.T) {
	cfg := &domainconfig.EngineConfig{
		Name:    "test-engine",
		Version: "1.0",
		Domain: domainconfig.DomainConfig{
			InitialState: map[string]any{
				"inventory": []string{"axe", "rope"},
			},
		},
	}

	builder := NewBuilder(cfg)
	_, err := builder.Build(context.Background())
	if err == nil {
		t.Fatal("Build() should reject non-scalar state values")
	}
	if !errors.Is(err, domainconfig.ErrBuildFailed) {
		t.Errorf("error should wrap ErrBuildFailed, got: %v", err)
	}
}

func TestBuilder_InvalidAction(t *testing.T) {
	cfg := &domainconfig.EngineConfig{
		Name:    "test-engine",
		Version: "1.0",
		Domain: domainconfig.DomainConfig{
			Actions: []domainconfig.ActionDef{
				{ID: "teleport", Cost: -1},
			},
		},
	}

	builder := NewBuilder(cfg)
	_, err := builder.Build(context.Background())
	if err == nil {
		t.Fatal("Build() should reject negative action cost")
	}
}

func TestBuilder_Budgets(t *testing.T) {
	cfg := &domainconfig.EngineConfig{
		Name:    "test-engine",
		Version: "1.0",
		Policy: domainconfig.PolicyConfig{
			Budgets: map[string]int64{
				"plans": 100,
				"steps": 1000,
			},
		},
	}

	builder := NewBuilder(cfg)
	result, err := builder.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer result.Close()

	if result.Budgets["plans"] != 100 {
		t.Errorf("Budgets[plans] = %d, want 100", result.Budgets["plans"])
	}
	if result.Budgets["steps"] != 1000 {
		t.Errorf("Budgets[steps] = %d, want 1000", result.Budgets["steps"])
	}
}

func TestBuilder_Settings(t *testing.T) {
	cfg := &domainconfig.EngineConfig{
		Name:    "test-engine",
		Version: "1.0",
		Planner: domainconfig.PlannerSettings{
			MaxIterations: 500,
			Heuristic:     "zero",
		},
		Executor: domainconfig.ExecutorSettings{
			MaxReplans:  2,
			StepTimeout: domainconfig.Duration(5 * time.Second),
		},
		Storage: domainconfig.StorageConfig{
			Cache: domainconfig.CacheConfig{
				Backend: "memory",
				TTL:     domainconfig.Duration(time.Minute),
			},
		},
	}

	builder := NewBuilder(cfg)
	result, err := builder.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer result.Close()

	if result.MaxIterations != 500 {
		t.Errorf("MaxIterations = %d, want 500", result.MaxIterations)
	}
	if result.Heuristic != "zero" {
		t.Errorf("Heuristic = %s, want zero", result.Heuristic)
	}
	if result.MaxReplans != 2 {
		t.Errorf("MaxReplans = %d, want 2", result.MaxReplans)
	}
	if result.StepTimeout != 5*time.Second {
		t.Errorf("StepTimeout = %v, want 5s", result.StepTimeout)
	}
	if result.CacheTTL != time.Minute {
		t.Errorf("CacheTTL = %v, want 1m", result.CacheTTL)
	}
}

func TestBuilder_MemoryStorage(t *testing.T) {
	cfg := &domainconfig.EngineConfig{
		Name:    "test-engine",
		Version: "1.0",
		Storage: domainconfig.StorageConfig{
			Archive: domainconfig.ArchiveConfig{Backend: "memory"},
			Cache:   domainconfig.CacheConfig{Backend: "memory", MaxEntries: 10},
			Events:  domainconfig.EventsConfig{Backend: "memory"},
		},
	}

	builder := NewBuilder(cfg)
	result, err := builder.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if result.Archive == nil {
		t.Error("Archive should be built")
	}
	if result.Cache == nil {
		t.Error("Cache should be built")
	}
	if result.Events == nil {
		t.Error("Events should be built")
	}

	if err := result.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestBuilder_SqliteArchive(t *testing.T) {
	cfg := &domainconfig.EngineConfig{
		Name:    "test-engine",
		Version: "1.0",
		Storage: domainconfig.StorageConfig{
			Archive: domainconfig.ArchiveConfig{
				Backend: "sqlite",
				Path:    filepath.Join(t.TempDir(), "plans.db"),
			},
		},
	}

	builder := NewBuilder(cfg)
	result, err := builder.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer result.Close()

	if result.Archive == nil {
		t.Fatal("Archive should be built")
	}
	count, err := result.Archive.Count(context.Background(), plan.ListFilter{})
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Count() = %d, want 0", count)
	}
}

func TestBuilder_BadgerStorage(t *testing.T) {
	cfg := &domainconfig.EngineConfig{
		Name:    "test-engine",
		Version: "1.0",
		Storage: domainconfig.StorageConfig{
			Cache: domainconfig.CacheConfig{
				Backend: "badger",
				Path:    filepath.Join(t.TempDir(), "cache"),
			},
			Events: domainconfig.EventsConfig{
				Backend: "badger",
				Path:    filepath.Join(t.TempDir(), "events"),
			},
		},
	}

	builder := NewBuilder(cfg)
	result, err := builder.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer result.Close()

	ctx := context.Background()
	if err := result.Cache.Set(ctx, "plan:abc", []byte("payload"), cache.SetOptions{}); err != nil {
		t.Fatalf("Cache.Set() error = %v", err)
	}
	got, found, err := result.Cache.Get(ctx, "plan:abc")
	if err != nil || !found {
		t.Fatalf("Cache.Get() = %v, %v; want hit", found, err)
	}
	if string(got) != "payload" {
		t.Errorf("Cache.Get() = %q, want payload", got)
	}

	if result.Events == nil {
		t.Error("Events should be built")
	}
}

func TestBuilder_UnknownArchiveBackend(t *testing.T) {
	cfg := &domainconfig.EngineConfig{
		Name:    "test-engine",
		Version: "1.0",
		Storage: domainconfig.StorageConfig{
			Archive: domainconfig.ArchiveConfig{Backend: "cassandra"},
		},
	}

	builder := NewBuilder(cfg)
	_, err := builder.Build(context.Background())
	if err == nil {
		t.Fatal("Build() should reject unknown archive backend")
	}
	if !errors.Is(err, domainconfig.ErrBuildFailed) {
		t.Errorf("error should wrap ErrBuildFailed, got: %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	validator := domainconfig.NewValidator()
	if errs := validator.Validate(cfg); errs.HasErrors() {
		t.Errorf("default config should validate, got: %v", errs)
	}

	if cfg.Storage.Cache.Backend != "memory" {
		t.Errorf("Cache.Backend = %s, want memory", cfg.Storage.Cache.Backend)
	}

	builder := NewBuilder(cfg)
	result, err := builder.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer result.Close()

	if result.Cache == nil {
		t.Error("default config should build a cache")
	}
	if result.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want 5m", result.CacheTTL)
	}
}
