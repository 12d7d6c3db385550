package api

import (
	"time"

	"github.com/ruvnet/arcadia-goap/domain/action"
	"github.com/ruvnet/arcadia-goap/domain/cache"
	"github.com/ruvnet/arcadia-goap/domain/event"
	"github.com/ruvnet/arcadia-goap/domain/goal"
	"github.com/ruvnet/arcadia-goap/domain/plan"
	"github.com/ruvnet/arcadia-goap/domain/telemetry"
	infratel "github.com/ruvnet/arcadia-goap/infrastructure/telemetry"
	"github.com/ruvnet/arcadia-goap/pack"
)

// engineConfig holds configuration for engine creation.
type engineConfig struct {
	actions        []Action
	goals          []Goal
	actionRegistry action.Registry
	goalRegistry   goal.Registry
	initialState   State
	initialFacts   Facts
	maxIterations  int
	heuristic      Heuristic
	tracer         telemetry.Tracer
	meter          telemetry.Meter
	cache          cache.Cache
	cacheTTL       time.Duration
	handlers       map[string]ActionHandler
	agentID        string
	events         event.Store
	archive        plan.Archive
	metrics        infratel.Metrics
	budgets        map[string]int64
	maxReplans     int
	maxSteps       int
	stepTimeout    time.Duration
}

// Option configures the Engine.
type Option func(*engineConfig)

// WithActions registers actions with the engine's library.
// Can be called multiple times; duplicate IDs fail New.
func WithActions(actions ...Action) Option {
	return func(c *engineConfig) {
		c.actions = append(c.actions, actions...)
	}
}

// WithGoals registers goals with the engine's library.
// Can be called multiple times; duplicate IDs fail New.
func WithGoals(goals ...Goal) Option {
	return func(c *engineConfig) {
		c.goals = append(c.goals, goals...)
	}
}

// WithPack registers a bundled pack's actions and goals. IDs that
// collide with previously added definitions fail New.
func WithPack(p *pack.Pack) Option {
	return func(c *engineConfig) {
		c.actions = append(c.actions, p.Actions...)
		c.goals = append(c.goals, p.Goals...)
	}
}

// WithActionRegistry sets the action registry backing the library.
func WithActionRegistry(r ActionRegistry) Option {
	return func(c *engineConfig) {
		c.actionRegistry = r
	}
}

// WithGoalRegistry sets the goal registry backing the library.
func WithGoalRegistry(r GoalRegistry) Option {
	return func(c *engineConfig) {
		c.goalRegistry = r
	}
}

// WithInitialState seeds the live world state.
func WithInitialState(s State) Option {
	return func(c *engineConfig) {
		c.initialState = s
	}
}

// WithInitialFacts merges facts over the initial world state.
func WithInitialFacts(facts Facts) Option {
	return func(c *engineConfig) {
		c.initialFacts = facts
	}
}

// WithMaxIterations caps open-set pops per planning search.
func WithMaxIterations(n int) Option {
	return func(c *engineConfig) {
		c.maxIterations = n
	}
}

// WithHeuristic sets the search heuristic.
func WithHeuristic(h Heuristic) Option {
	return func(c *engineConfig) {
		c.heuristic = h
	}
}

// WithTracer sets the tracer for planning spans.
func WithTracer(t Tracer) Option {
	return func(c *engineConfig) {
		c.tracer = t
	}
}

// WithMeter sets the meter for planning metrics.
func WithMeter(m Meter) Option {
	return func(c *engineConfig) {
		c.meter = m
	}
}

// WithPlanCache enables plan caching through the given cache backend.
func WithPlanCache(c cache.Cache) Option {
	return func(cfg *engineConfig) {
		cfg.cache = c
	}
}

// WithPlanCacheTTL bounds how long cached plans may serve. Only effective
// together with WithPlanCache.
func WithPlanCacheTTL(ttl time.Duration) Option {
	return func(c *engineConfig) {
		c.cacheTTL = ttl
	}
}

// WithHandler registers the handler executed for an action's plan steps.
func WithHandler(actionID string, h ActionHandler) Option {
	return func(c *engineConfig) {
		c.handlers[actionID] = h
	}
}

// WithAgentID names the agent in runs, events, and archived plans.
func WithAgentID(id string) Option {
	return func(c *engineConfig) {
		c.agentID = id
	}
}

// WithEventStore sets the store receiving the planning event stream.
func WithEventStore(s EventStore) Option {
	return func(c *engineConfig) {
		c.events = s
	}
}

// WithPlanArchive sets the archive receiving computed plan records.
func WithPlanArchive(a PlanArchive) Option {
	return func(c *engineConfig) {
		c.archive = a
	}
}

// WithMetrics sets the metrics provider for executor metrics.
func WithMetrics(m Metrics) Option {
	return func(c *engineConfig) {
		c.metrics = m
	}
}

// WithBudget limits one run resource, by policy resource name.
func WithBudget(resource string, limit int64) Option {
	return func(c *engineConfig) {
		if c.budgets == nil {
			c.budgets = make(map[string]int64)
		}
		c.budgets[resource] = limit
	}
}

// WithBudgets limits run resources, keyed by policy resource names.
func WithBudgets(limits map[string]int64) Option {
	return func(c *engineConfig) {
		if len(limits) == 0 {
			return
		}
		if c.budgets == nil {
			c.budgets = make(map[string]int64, len(limits))
		}
		for k, v := range limits {
			c.budgets[k] = v
		}
	}
}

// WithMaxReplans caps replanning rounds per run.
func WithMaxReplans(n int) Option {
	return func(c *engineConfig) {
		c.maxReplans = n
	}
}

// WithMaxSteps caps executed steps per run.
func WithMaxSteps(n int) Option {
	return func(c *engineConfig) {
		c.maxSteps = n
	}
}

// WithStepTimeout bounds one handler invocation during execution.
func WithStepTimeout(d time.Duration) Option {
	return func(c *engineConfig) {
		c.stepTimeout = d
	}
}
