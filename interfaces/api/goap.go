// Package api provides the public API for the arcadia-goap planning engine.
//
// arcadia-goap is a goal-oriented action planning library for Go. Agents
// declare what they can do (actions with costs, preconditions, and effects)
// and what they want (prioritized goals over world facts); the engine finds
// the cheapest action sequence from the current world state to a satisfying
// state and, optionally, executes it step by step with automatic replanning
// when the world diverges.
//
// # Quick Start
//
// Define actions and a goal, create an engine, and plan:
//
//	pickup := api.NewActionBuilder("pickup_weapon").
//	    WithCost(1).
//	    WithPrecondition("weapon_nearby", true).
//	    WithEffect("has_weapon", true).
//	    MustBuild()
//	approach := api.NewActionBuilder("approach_enemy").
//	    WithCost(2).
//	    WithPrecondition("has_weapon", true).
//	    WithEffect("in_range", true).
//	    MustBuild()
//	attack := api.NewActionBuilder("attack").
//	    WithCost(1).
//	    WithPrecondition("has_weapon", true).
//	    WithPrecondition("in_range", true).
//	    WithEffect("enemy_dead", true).
//	    MustBuild()
//
//	kill := api.NewGoalBuilder("kill_enemy").
//	    WithPriority(0.9).
//	    WithCondition("enemy_dead", true).
//	    MustBuild()
//
//	engine, err := api.New(
//	    api.WithActions(pickup, approach, attack),
//	    api.WithGoals(kill),
//	    api.WithInitialFacts(api.Facts{"weapon_nearby": api.Bool(true)}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	p, diag, err := engine.Plan(ctx, "kill_enemy")
//	fmt.Println(p) // kill_enemy: pickup_weapon -> approach_enemy -> attack (cost 4)
//	fmt.Println(diag.Iterations)
//
// # Planning
//
// Plan searches for the cheapest action sequence satisfying one goal;
// PlanBest selects the highest-priority unsatisfied goal first. Both run
// against a snapshot of the live world state, so concurrent planners never
// observe torn states. A nil plan with a nil error means no plan exists;
// the Diagnostics Outcome tells search exhaustion (OutcomeNoPlan) apart
// from the iteration cap firing (OutcomeBudgetExceeded).
//
// # Execution
//
// Run drives the full plan-act-replan cycle: goal selection, search, one
// handler invocation per plan step, effect application, and replanning when
// preconditions stop holding. Handlers perform the real-world work of an
// action; actions without a handler are simulated by applying their
// declared effects:
//
//	engine.OnAction("attack", func(ctx context.Context, a api.Action) error {
//	    return swingSword(ctx)
//	})
//	run, err := engine.Run(ctx)
//	fmt.Println(run.Phase) // done
//
// Each Run call executes on a fresh Executor; use NewExecutor directly for
// single-stepping and run introspection.
//
// # Storage
//
// Plans, events, and cached searches can be persisted through pluggable
// backends (in-memory, BoltDB-backed archives, SQLite, Postgres, Redis,
// Badger). The zero configuration keeps everything in memory and discards
// it with the engine. NewFromConfig wires backends from a declarative
// YAML or JSON file.
package api

import (
	"context"
	"errors"
	"time"

	"github.com/ruvnet/arcadia-goap/application"
	"github.com/ruvnet/arcadia-goap/domain/action"
	"github.com/ruvnet/arcadia-goap/domain/cache"
	"github.com/ruvnet/arcadia-goap/domain/event"
	"github.com/ruvnet/arcadia-goap/domain/goal"
	"github.com/ruvnet/arcadia-goap/domain/ledger"
	"github.com/ruvnet/arcadia-goap/domain/plan"
	"github.com/ruvnet/arcadia-goap/domain/policy"
	"github.com/ruvnet/arcadia-goap/domain/run"
	"github.com/ruvnet/arcadia-goap/domain/telemetry"
	"github.com/ruvnet/arcadia-goap/domain/world"
	infratel "github.com/ruvnet/arcadia-goap/infrastructure/telemetry"
	"github.com/ruvnet/arcadia-goap/pack"
)

// Re-export core types for convenience.
type (
	// Action is one atomic capability an agent can execute.
	Action = action.Action

	// ActionRegistry stores and retrieves actions by ID.
	ActionRegistry = action.Registry

	// Goal is a desired world condition with a selection priority.
	Goal = goal.Goal

	// GoalRegistry stores and retrieves goals by ID.
	GoalRegistry = goal.Registry

	// State is an immutable snapshot of world facts.
	State = world.State

	// Facts is a set of keyed world values.
	Facts = world.Facts

	// Value is one typed world fact value.
	Value = world.Value

	// Plan is an ordered action sequence satisfying a goal.
	Plan = plan.Plan

	// PlanStep is one action of a plan, in execution order.
	PlanStep = plan.Step

	// Diagnostics reports how a planning search behaved.
	Diagnostics = plan.Diagnostics

	// Outcome classifies how a planning call ended.
	Outcome = plan.Outcome

	// PlanArchive persists computed plan records.
	PlanArchive = plan.Archive

	// PlanRecord is one archived plan with its search diagnostics.
	PlanRecord = plan.Record

	// PlanListFilter narrows plan archive listings.
	PlanListFilter = plan.ListFilter

	// Pack is a named bundle of related actions and goals.
	Pack = pack.Pack

	// Run tracks one execution of the plan-act-replan cycle.
	Run = run.Run

	// Phase is a stage of the run lifecycle.
	Phase = run.Phase

	// RunStatus is the coarse run state.
	RunStatus = run.Status

	// Heuristic estimates remaining cost from a state to goal conditions.
	Heuristic = application.Heuristic

	// ActionHandler performs the real-world work of one action.
	ActionHandler = application.ActionHandler

	// PlanService is the planning surface the executor drives.
	PlanService = application.PlanService

	// Executor drives the plan-act-replan cycle for one agent.
	Executor = application.Executor

	// Budget tracks consumable run resources against limits.
	Budget = policy.Budget

	// BudgetSnapshot is a point-in-time view of budget consumption.
	BudgetSnapshot = policy.BudgetSnapshot

	// Ledger is the append-only record of run decisions.
	Ledger = ledger.Ledger

	// LedgerEntry is one recorded run decision.
	LedgerEntry = ledger.Entry

	// Event is one entry of the planning event stream.
	Event = event.Event

	// EventType identifies the kind of planning event.
	EventType = event.Type

	// EventStore persists the planning event stream.
	EventStore = event.Store

	// Cache is the key-value store used for plan caching.
	Cache = cache.Cache

	// Tracer traces planning operations.
	Tracer = telemetry.Tracer

	// Meter records planning metrics.
	Meter = telemetry.Meter

	// Metrics records executor metrics.
	Metrics = infratel.Metrics
)

// Re-export run phases.
const (
	PhaseIdle       = run.PhaseIdle
	PhasePlanning   = run.PhasePlanning
	PhaseExecuting  = run.PhaseExecuting
	PhaseReplanning = run.PhaseReplanning
	PhaseDone       = run.PhaseDone
	PhaseFailed     = run.PhaseFailed
)

// Re-export run statuses.
const (
	StatusPending   = run.StatusPending
	StatusRunning   = run.StatusRunning
	StatusCompleted = run.StatusCompleted
	StatusFailed    = run.StatusFailed
)

// Re-export planning outcomes.
const (
	OutcomePlanFound      = plan.OutcomePlanFound
	OutcomeNoPlan         = plan.OutcomeNoPlan
	OutcomeBudgetExceeded = plan.OutcomeBudgetExceeded
	OutcomeNoPendingGoal  = plan.OutcomeNoPendingGoal
)

// Re-export budget resource names.
const (
	ResourcePlans   = policy.ResourcePlans
	ResourceReplans = policy.ResourceReplans
	ResourceSteps   = policy.ResourceSteps
)

// Re-export search heuristics.
var (
	// HeuristicUnsatisfied counts unmatched goal conditions. Admissible
	// when each action resolves at most one condition per unit of cost.
	HeuristicUnsatisfied = application.HeuristicUnsatisfied

	// HeuristicZero disables guidance, degrading the search to uniform
	// cost. Always admissible.
	HeuristicZero = application.HeuristicZero
)

// Re-export planning and execution errors.
var (
	// ErrActionExists is returned when registering a duplicate action ID.
	ErrActionExists = action.ErrActionExists

	// ErrActionNotFound is returned when an action ID is not registered.
	ErrActionNotFound = action.ErrActionNotFound

	// ErrGoalExists is returned when registering a duplicate goal ID.
	ErrGoalExists = goal.ErrGoalExists

	// ErrGoalNotFound is returned when a goal ID is not registered.
	ErrGoalNotFound = goal.ErrGoalNotFound

	// ErrNoPlanForGoal is returned when execution could not find a plan
	// for the selected goal.
	ErrNoPlanForGoal = application.ErrNoPlanForGoal

	// ErrRunTerminal is returned by Step once the run has finished.
	ErrRunTerminal = application.ErrRunTerminal

	// ErrBudgetExceeded is returned when consuming would pass a limit.
	ErrBudgetExceeded = policy.ErrBudgetExceeded

	// ErrPlanRecordNotFound is returned when an archived plan is missing.
	ErrPlanRecordNotFound = plan.ErrRecordNotFound
)

// Engine is the main entry point: a planner, its registered handlers, and
// the storage backends runs should write to. Plan and PlanBest are safe
// for concurrent use; each Run call drives a fresh single-use executor.
type Engine struct {
	planner *application.Planner
	service application.PlanService

	handlers    map[string]ActionHandler
	agentID     string
	events      event.Store
	archive     plan.Archive
	metrics     infratel.Metrics
	budgets     map[string]int64
	maxReplans  int
	maxSteps    int
	stepTimeout time.Duration

	closers []func() error
}

// New creates a new Engine with the provided options.
func New(opts ...Option) (*Engine, error) {
	config := &engineConfig{
		handlers: make(map[string]ActionHandler),
	}
	for _, opt := range opts {
		opt(config)
	}

	initial := config.initialState
	if len(config.initialFacts) > 0 {
		initial = initial.Apply(config.initialFacts)
	}

	planner := application.NewPlanner(application.PlannerConfig{
		Actions:       config.actionRegistry,
		Goals:         config.goalRegistry,
		InitialState:  initial,
		MaxIterations: config.maxIterations,
		Heuristic:     config.heuristic,
		Tracer:        config.tracer,
		Meter:         config.meter,
	})
	if err := planner.RegisterActions(config.actions...); err != nil {
		return nil, err
	}
	if err := planner.RegisterGoals(config.goals...); err != nil {
		return nil, err
	}

	var service application.PlanService = planner
	if config.cache != nil {
		var cacheOpts []application.CachedPlannerOption
		if config.cacheTTL > 0 {
			cacheOpts = append(cacheOpts, application.WithPlanTTL(config.cacheTTL))
		}
		service = application.NewCachedPlanner(planner, config.cache, cacheOpts...)
	}

	return &Engine{
		planner:     planner,
		service:     service,
		handlers:    config.handlers,
		agentID:     config.agentID,
		events:      config.events,
		archive:     config.archive,
		metrics:     config.metrics,
		budgets:     config.budgets,
		maxReplans:  config.maxReplans,
		maxSteps:    config.maxSteps,
		stepTimeout: config.stepTimeout,
	}, nil
}

// RegisterAction adds an action to the engine's library.
func (e *Engine) RegisterAction(a Action) error {
	return e.planner.RegisterAction(a)
}

// RegisterGoal adds a goal to the engine's library.
func (e *Engine) RegisterGoal(g Goal) error {
	return e.planner.RegisterGoal(g)
}

// SetActionCost retunes the cost of a registered action.
func (e *Engine) SetActionCost(id string, cost float64) error {
	return e.planner.SetActionCost(id, cost)
}

// UpdateState sets one fact of the live world state.
func (e *Engine) UpdateState(key string, v Value) {
	e.planner.UpdateState(key, v)
}

// ApplyFacts merges facts into the live world state.
func (e *Engine) ApplyFacts(facts Facts) {
	e.planner.ApplyFacts(facts)
}

// WorldState returns a snapshot of the live world state.
func (e *Engine) WorldState() State {
	return e.planner.WorldState()
}

// SelectGoal returns the highest-priority goal not yet satisfied by the
// live world state. The second return is false when every goal holds.
func (e *Engine) SelectGoal() (Goal, bool) {
	return e.planner.SelectGoal()
}

// Plan searches for the cheapest action sequence satisfying the goal.
// A nil plan with a nil error means no plan exists; the diagnostics
// classify why.
func (e *Engine) Plan(ctx context.Context, goalID string) (*Plan, Diagnostics, error) {
	return e.service.Plan(ctx, goalID)
}

// PlanBest selects the highest-priority unsatisfied goal and plans for it.
func (e *Engine) PlanBest(ctx context.Context) (*Plan, Diagnostics, error) {
	return e.service.PlanBest(ctx)
}

// OnAction registers the handler executed for an action's plan steps.
// Actions without a handler are simulated during execution.
func (e *Engine) OnAction(actionID string, h ActionHandler) {
	e.handlers[actionID] = h
}

// NewExecutor creates a fresh single-use executor over the engine's
// planner, handlers, and storage backends.
func (e *Engine) NewExecutor() (*Executor, error) {
	handlers := make(map[string]ActionHandler, len(e.handlers))
	for id, h := range e.handlers {
		handlers[id] = h
	}

	return application.NewExecutor(application.ExecutorConfig{
		Planner:      e.service,
		Handlers:     handlers,
		AgentID:      e.agentID,
		Events:       e.events,
		Archive:      e.archive,
		Metrics:      e.metrics,
		BudgetLimits: e.budgets,
		MaxReplans:   e.maxReplans,
		MaxSteps:     e.maxSteps,
		StepTimeout:  e.stepTimeout,
	})
}

// Run executes one full plan-act-replan cycle on a fresh executor and
// returns the finished run.
func (e *Engine) Run(ctx context.Context) (*Run, error) {
	exec, err := e.NewExecutor()
	if err != nil {
		return nil, err
	}
	return exec.Run(ctx)
}

// Planner exposes the underlying planner for direct registry and state
// access.
func (e *Engine) Planner() *application.Planner {
	return e.planner
}

// Close releases storage backends the engine owns. Engines created with
// New own nothing; engines created from configuration own the backends
// the configuration built.
func (e *Engine) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

