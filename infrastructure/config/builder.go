package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ruvnet/arcadia-goap/domain/action"
	"github.com/ruvnet/arcadia-goap/domain/cache"
	domainconfig "github.com/ruvnet/arcadia-goap/domain/config"
	"github.com/ruvnet/arcadia-goap/domain/event"
	"github.com/ruvnet/arcadia-goap/domain/goal"
	"github.com/ruvnet/arcadia-goap/domain/plan"
	"github.com/ruvnet/arcadia-goap/domain/world"
	"github.com/ruvnet/arcadia-goap/infrastructure/storage/badger"
	"github.com/ruvnet/arcadia-goap/infrastructure/storage/memory"
	"github.com/ruvnet/arcadia-goap/infrastructure/storage/postgres"
	"github.com/ruvnet/arcadia-goap/infrastructure/storage/redis"
	"github.com/ruvnet/arcadia-goap/infrastructure/storage/sqlite"
)

// Builder builds engine components from configuration.
type Builder struct {
	config *domainconfig.EngineConfig
}

// NewBuilder creates a new configuration builder.
func NewBuilder(config *domainconfig.EngineConfig) *Builder {
	return &Builder{config: config}
}

// BuildResult contains the built components from configuration.
type BuildResult struct {
	// InitialState is the starting world state.
	InitialState world.State
	// Actions are the validated planning actions.
	Actions []action.Action
	// Goals are the validated goals.
	Goals []goal.Goal
	// Budgets maps resource names (plans, replans, steps) to limits.
	Budgets map[string]int64
	// MaxIterations caps node expansions per search. Zero means the
	// engine default.
	MaxIterations int
	// Heuristic names the search heuristic ("unsatisfied" or "zero").
	Heuristic string
	// MaxReplans caps replanning rounds per run. Zero means the engine
	// default.
	MaxReplans int
	// StepTimeout bounds one action handler invocation.
	StepTimeout time.Duration
	// Archive is the configured plan archive, or nil when disabled.
	Archive plan.Archive
	// Cache is the configured plan cache, or nil when disabled.
	Cache cache.Cache
	// CacheTTL is how long cached plans stay valid.
	CacheTTL time.Duration
	// Events is the configured event journal, or nil when disabled.
	Events event.Store

	closers []func() error
}

// Close releases every storage backend the build created. Backends close
// in reverse construction order. Safe to call after a failed build.
func (r *BuildResult) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}

// Build builds the engine components from configuration. The context
// bounds storage backend construction, which may dial external services.
func (b *Builder) Build(ctx context.Context) (*BuildResult, error) {
	result := &BuildResult{
		Budgets: make(map[string]int64),
	}

	if err := b.buildDomain(result); err != nil {
		return nil, errors.Join(domainconfig.ErrBuildFailed, err)
	}

	b.buildPolicy(result)
	b.buildSettings(result)

	if err := b.buildStorage(ctx, result); err != nil {
		result.Close()
		return nil, errors.Join(domainconfig.ErrBuildFailed, err)
	}

	return result, nil
}

func (b *Builder) buildDomain(result *BuildResult) error {
	state := world.NewState()
	for key, raw := range b.config.Domain.InitialState {
		v, err := world.FromAny(raw)
		if err != nil {
			return fmt.Errorf("domain.initial_state.%s: %w", key, err)
		}
		state.Set(key, v)
	}
	result.InitialState = state

	result.Actions = make([]action.Action, 0, len(b.config.Domain.Actions))
	for _, def := range b.config.Domain.Actions {
		act, err := buildAction(def)
		if err != nil {
			return err
		}
		result.Actions = append(result.Actions, act)
	}

	result.Goals = make([]goal.Goal, 0, len(b.config.Domain.Goals))
	for _, def := range b.config.Domain.Goals {
		g, err := buildGoal(def)
		if err != nil {
			return err
		}
		result.Goals = append(result.Goals, g)
	}

	return nil
}

func buildAction(def domainconfig.ActionDef) (action.Action, error) {
	preconditions, err := buildFacts(def.Preconditions)
	if err != nil {
		return action.Action{}, fmt.Errorf("action %q preconditions: %w", def.ID, err)
	}
	effects, err := buildFacts(def.Effects)
	if err != nil {
		return action.Action{}, fmt.Errorf("action %q effects: %w", def.ID, err)
	}

	act := action.Action{
		ID:            def.ID,
		Cost:          def.Cost,
		Preconditions: preconditions,
		Effects:       effects,
	}
	if err := act.Validate(); err != nil {
		return action.Action{}, err
	}
	return act, nil
}

func buildGoal(def domainconfig.GoalDef) (goal.Goal, error) {
	conditions, err := buildFacts(def.Conditions)
	if err != nil {
		return goal.Goal{}, fmt.Errorf("goal %q conditions: %w", def.ID, err)
	}

	g := goal.Goal{
		ID:         def.ID,
		Priority:   def.Priority,
		Conditions: conditions,
	}
	if err := g.Validate(); err != nil {
		return goal.Goal{}, err
	}
	return g, nil
}

func buildFacts(raw map[string]any) (world.Facts, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	facts := make(world.Facts, len(raw))
	for key, value := range raw {
		v, err := world.FromAny(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		facts[key] = v
	}
	return facts, nil
}

func (b *Builder) buildPolicy(result *BuildResult) {
	for name, limit := range b.config.Policy.Budgets {
		result.Budgets[name] = limit
	}
}

func (b *Builder) buildSettings(result *BuildResult) {
	result.MaxIterations = b.config.Planner.MaxIterations
	result.Heuristic = b.config.Planner.Heuristic
	result.MaxReplans = b.config.Executor.MaxReplans
	result.StepTimeout = b.config.Executor.StepTimeout.Duration()
	result.CacheTTL = b.config.Storage.Cache.TTL.Duration()
}

func (b *Builder) buildStorage(ctx context.Context, result *BuildResult) error {
	if err := b.buildArchive(ctx, result); err != nil {
		return fmt.Errorf("building archive: %w", err)
	}
	if err := b.buildCache(result); err != nil {
		return fmt.Errorf("building cache: %w", err)
	}
	if err := b.buildEvents(result); err != nil {
		return fmt.Errorf("building event store: %w", err)
	}
	return nil
}

func (b *Builder) buildArchive(ctx context.Context, result *BuildResult) error {
	cfg := b.config.Storage.Archive
	switch cfg.Backend {
	case "", "none":
		return nil
	case "memory":
		result.Archive = memory.NewPlanArchive()
	case "sqlite":
		archive, err := sqlite.NewPlanArchive(sqlite.DefaultConfig(),
			sqlite.WithDSN("file:"+cfg.Path+"?cache=shared&mode=rwc"),
			sqlite.WithAutoMigrate(),
		)
		if err != nil {
			return err
		}
		result.Archive = archive
		result.closers = append(result.closers, archive.Close)
	case "postgres":
		pool, err := postgres.NewPoolFromDSN(ctx, cfg.DSN)
		if err != nil {
			return err
		}
		archive := postgres.NewPlanArchive(pool, "")
		if err := archive.Migrate(ctx); err != nil {
			pool.Close()
			return err
		}
		result.Archive = archive
		result.closers = append(result.closers, archive.Close)
	default:
		return fmt.Errorf("unknown archive backend: %s", cfg.Backend)
	}
	return nil
}

func (b *Builder) buildCache(result *BuildResult) error {
	cfg := b.config.Storage.Cache
	switch cfg.Backend {
	case "", "none":
		return nil
	case "memory":
		var opts []memory.CacheOption
		if cfg.MaxEntries > 0 {
			opts = append(opts, memory.WithMaxSize(cfg.MaxEntries))
		}
		result.Cache = memory.NewCache(opts...)
	case "redis":
		c, err := redis.NewCache(redis.DefaultConfig(),
			redis.WithAddress(cfg.Addr),
			redis.WithPassword(cfg.Password),
			redis.WithDB(cfg.DB),
		)
		if err != nil {
			return err
		}
		result.Cache = c
		result.closers = append(result.closers, c.Close)
	case "badger":
		c, err := badger.NewCache(badger.DefaultConfig(), badger.WithDir(cfg.Path))
		if err != nil {
			return err
		}
		result.Cache = c
		result.closers = append(result.closers, c.Close)
	default:
		return fmt.Errorf("unknown cache backend: %s", cfg.Backend)
	}
	return nil
}

func (b *Builder) buildEvents(result *BuildResult) error {
	cfg := b.config.Storage.Events
	switch cfg.Backend {
	case "", "none":
		return nil
	case "memory":
		store := memory.NewEventStore()
		result.Events = store
		result.closers = append(result.closers, store.Close)
	case "badger":
		store, err := badger.NewEventStore(badger.DefaultConfig(), badger.WithDir(cfg.Path))
		if err != nil {
			return err
		}
		result.Events = store
		result.closers = append(result.closers, store.Close)
	default:
		return fmt.Errorf("unknown event store backend: %s", cfg.Backend)
	}
	return nil
}

// DefaultConfig returns a minimal default configuration: an in-memory
// plan cache, no archive, no event journal.
func DefaultConfig() *domainconfig.EngineConfig {
	return &domainconfig.EngineConfig{
		Name:    "engine",
		Version: "1.0",
		Planner: domainconfig.PlannerSettings{
			Heuristic: "unsatisfied",
		},
		Executor: domainconfig.ExecutorSettings{
			StepTimeout: domainconfig.Duration(30 * time.Second),
		},
		Storage: domainconfig.StorageConfig{
			Cache: domainconfig.CacheConfig{
				Backend: "memory",
				TTL:     domainconfig.Duration(5 * time.Minute),
			},
		},
	}
}
