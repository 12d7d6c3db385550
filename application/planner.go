// Package application provides the application layer for the planning
// engine: goal selection, plan search, and plan execution.
package application

import (
	"context"
	"sync"
	"time"

	"github.com/ruvnet/arcadia-goap/domain/action"
	"github.com/ruvnet/arcadia-goap/domain/goal"
	"github.com/ruvnet/arcadia-goap/domain/plan"
	"github.com/ruvnet/arcadia-goap/domain/telemetry"
	"github.com/ruvnet/arcadia-goap/domain/world"
	"github.com/ruvnet/arcadia-goap/infrastructure/logging"
	"github.com/ruvnet/arcadia-goap/infrastructure/observability"
	"github.com/ruvnet/arcadia-goap/infrastructure/storage/memory"
)

// DefaultMaxIterations bounds a single search when no explicit cap is
// configured.
const DefaultMaxIterations = 5000

// Planner is the main orchestration service for goal selection and plan
// search. The live world state it owns is shared across callers: reads and
// searches take a read lock, mutations an exclusive lock, and every search
// runs against a private snapshot taken at entry, so concurrent agents can
// plan without blocking each other or observing torn states.
type Planner struct {
	mu    sync.RWMutex
	state world.State

	actions action.Registry
	goals   goal.Registry

	maxIterations int
	heuristic     Heuristic
	tracer        telemetry.Tracer
	meter         telemetry.Meter

	plansTotal    telemetry.Counter
	planDuration  telemetry.Histogram
	planCost      telemetry.Histogram
	planLength    telemetry.Histogram
	searchBreadth telemetry.Histogram
}

// PlannerConfig contains configuration for the planner.
type PlannerConfig struct {
	// Actions is the action registry. Defaults to an in-memory registry.
	Actions action.Registry
	// Goals is the goal registry. Defaults to an in-memory registry.
	Goals goal.Registry
	// InitialState seeds the live world state.
	InitialState world.State
	// MaxIterations caps open-set pops per search. Zero or negative
	// selects DefaultMaxIterations.
	MaxIterations int
	// Heuristic is the search heuristic. Defaults to HeuristicUnsatisfied.
	Heuristic Heuristic
	// Tracer traces planning operations. Defaults to a no-op tracer.
	Tracer telemetry.Tracer
	// Meter records planning metrics. Defaults to a no-op meter.
	Meter telemetry.Meter
}

// NewPlanner creates a new planner with the given configuration.
func NewPlanner(config PlannerConfig) *Planner {
	p := &Planner{
		state:         config.InitialState.Clone(),
		actions:       config.Actions,
		goals:         config.Goals,
		maxIterations: config.MaxIterations,
		heuristic:     config.Heuristic,
		tracer:        config.Tracer,
		meter:         config.Meter,
	}

	if p.actions == nil {
		p.actions = memory.NewActionRegistry()
	}
	if p.goals == nil {
		p.goals = memory.NewGoalRegistry()
	}
	if p.maxIterations <= 0 {
		p.maxIterations = DefaultMaxIterations
	}
	if p.heuristic == nil {
		p.heuristic = HeuristicUnsatisfied
	}
	if p.tracer == nil {
		p.tracer = observability.NewNoopTracer()
	}
	if p.meter == nil {
		p.meter = observability.NewNoopMeter()
	}

	p.plansTotal = p.meter.Counter(telemetry.MetricPlansTotal,
		telemetry.WithDescription("planning searches completed"))
	p.planDuration = p.meter.Histogram(telemetry.MetricPlanDuration,
		telemetry.WithDescription("search wall time"), telemetry.WithUnit("ms"))
	p.planCost = p.meter.Histogram(telemetry.MetricPlanCost,
		telemetry.WithDescription("total cost of found plans"))
	p.planLength = p.meter.Histogram(telemetry.MetricPlanLength,
		telemetry.WithDescription("step count of found plans"))
	p.searchBreadth = p.meter.Histogram(telemetry.MetricPlanIterations,
		telemetry.WithDescription("open-set pops per search"))

	return p
}

// RegisterAction adds an action to the library. Registering an ID that
// already exists is rejected with action.ErrActionExists.
func (p *Planner) RegisterAction(a action.Action) error {
	if err := p.actions.Register(a); err != nil {
		return err
	}

	logging.Debug().
		Add(logging.Component("planner")).
		Add(logging.ActionID(a.ID)).
		Msg("action registered")
	return nil
}

// RegisterActions adds several actions, stopping at the first failure.
func (p *Planner) RegisterActions(actions ...action.Action) error {
	for _, a := range actions {
		if err := p.RegisterAction(a); err != nil {
			return err
		}
	}
	return nil
}

// RegisterGoal adds a goal. Registering an ID that already exists is
// rejected with goal.ErrGoalExists.
func (p *Planner) RegisterGoal(g goal.Goal) error {
	if err := p.goals.Register(g); err != nil {
		return err
	}

	logging.Debug().
		Add(logging.Component("planner")).
		Add(logging.GoalID(g.ID)).
		Add(logging.Priority(g.Priority)).
		Msg("goal registered")
	return nil
}

// RegisterGoals adds several goals, stopping at the first failure.
func (p *Planner) RegisterGoals(goals ...goal.Goal) error {
	for _, g := range goals {
		if err := p.RegisterGoal(g); err != nil {
			return err
		}
	}
	return nil
}

// SetActionCost overwrites a registered action's cost. This is the
// coupling point for external modules that adapt agent behavior between
// planning calls.
func (p *Planner) SetActionCost(id string, cost float64) error {
	return p.actions.SetCost(id, cost)
}

// Actions returns the action registry.
func (p *Planner) Actions() action.Registry {
	return p.actions
}

// Goals returns the goal registry.
func (p *Planner) Goals() goal.Registry {
	return p.goals
}

// MaxIterations returns the configured search cap.
func (p *Planner) MaxIterations() int {
	return p.maxIterations
}

// SetWorldState replaces the live world state.
func (p *Planner) SetWorldState(s world.State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = s.Clone()
}

// WorldState returns an independent copy of the live world state.
func (p *Planner) WorldState() world.State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state.Clone()
}

// UpdateState records a single fact in the live world state.
func (p *Planner) UpdateState(key string, v world.Value) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Set(key, v)
}

// ApplyFacts records several facts in one exclusive section, so a search
// snapshot sees either all of them or none.
func (p *Planner) ApplyFacts(facts world.Facts) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for k, v := range facts {
		p.state.Set(k, v)
	}
}

// snapshot returns the consistent view a search works against.
func (p *Planner) snapshot() world.State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state.Clone()
}

// SelectGoal returns the highest-priority goal not satisfied by the live
// state. Priority ties go to the goal registered first. The second result
// is false when every registered goal is satisfied, or none are registered.
func (p *Planner) SelectGoal() (goal.Goal, bool) {
	snap := p.snapshot()

	var best goal.Goal
	found := false
	for _, g := range p.goals.All() {
		if g.Satisfied(snap) {
			continue
		}
		if !found || g.Priority > best.Priority {
			best = g
			found = true
		}
	}
	return best, found
}

// Plan searches for the cheapest action sequence that satisfies the
// registered goal, starting from a snapshot of the live world state taken
// at entry. A nil plan with a nil error is a normal outcome: the
// diagnostics distinguish an exhausted search space from an exceeded
// iteration budget. An unknown goal ID returns goal.ErrGoalNotFound.
//
// The context serves tracing only. The search itself is CPU-bound, does no
// I/O, and cannot be cancelled mid-flight: the iteration cap is the sole
// bound on search effort.
func (p *Planner) Plan(ctx context.Context, goalID string) (*plan.Plan, plan.Diagnostics, error) {
	g, err := p.goals.Get(goalID)
	if err != nil {
		return nil, plan.Diagnostics{}, err
	}

	ctx, span := p.tracer.StartSpan(ctx, telemetry.SpanPlan,
		telemetry.WithAttributes(telemetry.String(telemetry.AttrGoalID, goalID)))
	defer span.End()

	snap := p.snapshot()
	actions := p.actions.All()

	started := time.Now()
	result, diag := search(snap, g, actions, p.maxIterations, p.heuristic)
	diag.Duration = time.Since(started)

	p.record(ctx, span, result, diag)
	return result, diag, nil
}

// PlanBest composes SelectGoal and Plan. When every goal is satisfied the
// diagnostics report OutcomeNoPendingGoal and the plan is nil.
func (p *Planner) PlanBest(ctx context.Context) (*plan.Plan, plan.Diagnostics, error) {
	g, ok := p.SelectGoal()
	if !ok {
		return nil, plan.Diagnostics{Outcome: plan.OutcomeNoPendingGoal}, nil
	}
	return p.Plan(ctx, g.ID)
}

// record emits the search result to the span, the meter, and the debug
// log. It runs after the search completes, never inside it.
func (p *Planner) record(ctx context.Context, span telemetry.Span, result *plan.Plan, diag plan.Diagnostics) {
	outcome := telemetry.String(telemetry.AttrOutcome, string(diag.Outcome))

	span.SetAttributes(
		outcome,
		telemetry.Int("iterations", diag.Iterations),
		telemetry.Int("nodes_expanded", diag.NodesExpanded),
	)

	p.plansTotal.Add(ctx, 1, outcome)
	p.planDuration.Record(ctx, float64(diag.Duration.Microseconds())/1000.0, outcome)
	p.searchBreadth.Record(ctx, float64(diag.Iterations), outcome)

	if result != nil {
		span.SetStatus(telemetry.StatusCodeOK, "")
		p.planCost.Record(ctx, result.TotalCost, outcome)
		p.planLength.Record(ctx, float64(result.Len()), outcome)

		logging.Debug().
			Add(logging.Component("planner")).
			Add(logging.GoalID(diag.GoalID)).
			Add(logging.Outcome(diag.Outcome)).
			Add(logging.PlanCost(result.TotalCost)).
			Add(logging.PlanLength(result.Len())).
			Add(logging.Iterations(diag.Iterations)).
			Add(logging.Duration(diag.Duration)).
			Msg("plan computed")
		return
	}

	logging.Debug().
		Add(logging.Component("planner")).
		Add(logging.GoalID(diag.GoalID)).
		Add(logging.Outcome(diag.Outcome)).
		Add(logging.Iterations(diag.Iterations)).
		Add(logging.NodesExpanded(diag.NodesExpanded)).
		Add(logging.Duration(diag.Duration)).
		Msg("no plan")
}
