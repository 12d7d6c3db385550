package application

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/ruvnet/arcadia-goap/domain/action"
	"github.com/ruvnet/arcadia-goap/domain/event"
	"github.com/ruvnet/arcadia-goap/domain/goal"
	"github.com/ruvnet/arcadia-goap/domain/ledger"
	"github.com/ruvnet/arcadia-goap/domain/plan"
	"github.com/ruvnet/arcadia-goap/domain/policy"
	"github.com/ruvnet/arcadia-goap/domain/run"
	"github.com/ruvnet/arcadia-goap/domain/world"
	"github.com/ruvnet/arcadia-goap/infrastructure/logging"
	"github.com/ruvnet/arcadia-goap/infrastructure/resilience"
	"github.com/ruvnet/arcadia-goap/infrastructure/statemachine"
	infratel "github.com/ruvnet/arcadia-goap/infrastructure/telemetry"
)

// ActionHandler performs the real-world work of one action. Handlers do
// not apply effects: on success the executor applies the action's declared
// effects to the live state itself.
type ActionHandler func(ctx context.Context, a action.Action) error

// PlanService is the planning surface the executor drives. Planner
// satisfies it directly; CachedPlanner satisfies it as a drop-in
// decorator.
type PlanService interface {
	Plan(ctx context.Context, goalID string) (*plan.Plan, plan.Diagnostics, error)
	PlanBest(ctx context.Context) (*plan.Plan, plan.Diagnostics, error)
	Actions() action.Registry
	Goals() goal.Registry
	WorldState() world.State
	ApplyFacts(facts world.Facts)
}

var _ PlanService = (*Planner)(nil)

// ErrRunTerminal is returned by Step once the run has reached done or
// failed.
var ErrRunTerminal = errors.New("run already in terminal phase")

// ErrNoPlanForGoal is returned when planning produced no action sequence
// for the selected goal, whether the search space was exhausted or the
// iteration budget fired. The run transitions to failed.
var ErrNoPlanForGoal = errors.New("no plan satisfies the selected goal")

// Executor drives the plan-act-replan cycle for one agent: it selects
// goals and searches through its Planner, executes plan steps through
// registered handlers, applies effects to the live state, and replans when
// the world diverges from what the plan assumed.
//
// An Executor is single-use and single-threaded: it owns one run from
// Start to a terminal phase, and Step/Run must be driven from one
// goroutine. Storage side effects (event appends, archive saves) go
// through the resilience executor and never fail the run.
type Executor struct {
	planner  PlanService
	handlers map[string]ActionHandler
	storage  *resilience.Executor
	events   event.Store
	archive  plan.Archive
	metrics  infratel.Metrics
	agentID  string

	run    *run.Run
	budget *policy.Budget
	ledger *ledger.Ledger
	interp *statemachine.Interpreter

	current *plan.Plan
	stepIdx int

	replans     int
	maxReplans  int
	maxSteps    int
	stepTimeout time.Duration
}

// ExecutorConfig contains configuration for the executor.
type ExecutorConfig struct {
	// Planner is the planning service. Required.
	Planner PlanService

	// Handlers maps action IDs to their handlers. Actions without a
	// handler are simulated: the executor just applies their effects.
	Handlers map[string]ActionHandler

	// AgentID names the agent. Defaults to "agent".
	AgentID string

	// Storage protects event appends and archive saves. Defaults to
	// resilience defaults.
	Storage *resilience.Executor

	// Events receives the planning event stream. Optional.
	Events event.Store

	// Archive receives computed plan records. Optional.
	Archive plan.Archive

	// Metrics records executor metrics. Defaults to a no-op provider.
	Metrics infratel.Metrics

	// Transitions overrides the canonical phase transition rules.
	Transitions *policy.PhaseTransitions

	// BudgetLimits configures the run budget, keyed by policy resource
	// names. Empty means unlimited.
	BudgetLimits map[string]int64

	// MaxReplans caps replanning rounds. Defaults to DefaultMaxReplans.
	MaxReplans int

	// MaxSteps caps Step calls per Run. Defaults to DefaultMaxSteps.
	MaxSteps int

	// StepTimeout bounds one handler invocation. Zero means no timeout.
	StepTimeout time.Duration
}

// Executor defaults.
const (
	DefaultMaxReplans = 10
	DefaultMaxSteps   = 100
)

// NewExecutor creates a new executor with the given configuration.
func NewExecutor(config ExecutorConfig) (*Executor, error) {
	if config.Planner == nil {
		return nil, errors.New("planner is required")
	}

	e := &Executor{
		planner:     config.Planner,
		handlers:    config.Handlers,
		storage:     config.Storage,
		events:      config.Events,
		archive:     config.Archive,
		metrics:     config.Metrics,
		agentID:     config.AgentID,
		maxReplans:  config.MaxReplans,
		maxSteps:    config.MaxSteps,
		stepTimeout: config.StepTimeout,
	}

	// Set defaults
	if e.handlers == nil {
		e.handlers = make(map[string]ActionHandler)
	}
	if e.agentID == "" {
		e.agentID = "agent"
	}
	if e.storage == nil {
		e.storage = resilience.NewDefaultExecutor()
	}
	if e.metrics == nil {
		e.metrics = infratel.NewNoopMetricsProvider()
	}
	if e.maxReplans <= 0 {
		e.maxReplans = DefaultMaxReplans
	}
	if e.maxSteps <= 0 {
		e.maxSteps = DefaultMaxSteps
	}

	e.run = run.NewRun(generateID("run"), e.agentID)
	e.budget = policy.NewBudget(config.BudgetLimits)
	e.ledger = ledger.New(e.run.ID)

	machineCtx := statemachine.NewContext(e.run, e.budget, e.ledger)
	if config.Transitions != nil {
		machineCtx.Transitions = config.Transitions
	}

	machine, err := statemachine.NewRunMachine()
	if err != nil {
		return nil, fmt.Errorf("failed to create state machine: %w", err)
	}
	e.interp = statemachine.NewInterpreter(machine, machineCtx)

	return e, nil
}

// RegisterHandler binds a handler to an action ID, replacing any previous
// binding.
func (e *Executor) RegisterHandler(actionID string, h ActionHandler) {
	e.handlers[actionID] = h
}

// Run drives Step until the run reaches a terminal phase, the step cap
// fires, or the context is cancelled. The context is honored between
// steps, never inside a search. The finished run is returned either way.
func (e *Executor) Run(ctx context.Context) (*run.Run, error) {
	e.start(ctx)

	e.metrics.IncrementActiveRuns(ctx)
	defer e.metrics.DecrementActiveRuns(ctx)

	steps := 0
	for !e.interp.IsTerminal() && steps < e.maxSteps {
		select {
		case <-ctx.Done():
			e.fail(ctx, "context cancelled")
			return e.run, ctx.Err()
		default:
		}

		if err := e.Step(ctx); err != nil {
			logging.Error().
				Add(logging.RunID(e.run.ID)).
				Add(logging.Str("phase", string(e.run.Phase))).
				Add(logging.ErrorField(err)).
				Msg("run failed")
			return e.run, err
		}
		steps++
	}

	if steps >= e.maxSteps && !e.interp.IsTerminal() {
		e.fail(ctx, "max steps exceeded")
		return e.run, errors.New("max steps exceeded")
	}

	logging.Info().
		Add(logging.RunID(e.run.ID)).
		Add(logging.Str("phase", string(e.run.Phase))).
		Add(logging.Duration(e.run.Duration())).
		Msg("run finished")

	return e.run, nil
}

// Step advances the run by one action: it plans when no plan is active,
// validates the next action's preconditions against the live state,
// executes the handler, and applies the action's effects. Replanning
// triggered by divergence is part of the same call's control flow; the
// actual new search happens on the following Step.
func (e *Executor) Step(ctx context.Context) error {
	if e.interp.IsTerminal() {
		return ErrRunTerminal
	}
	e.start(ctx)

	if e.current == nil {
		if err := e.plan(ctx); err != nil {
			return err
		}
		if e.interp.IsTerminal() || e.current == nil {
			return nil
		}
	}

	return e.executeNext(ctx)
}

// start is idempotent; the first call enters the initial phase.
func (e *Executor) start(ctx context.Context) {
	if e.run.Status != run.StatusPending {
		return
	}

	e.interp.Start()
	e.ledger.RecordRunStarted(string(e.run.Phase))
	e.appendEvent(ctx, event.TypeRunStarted, event.RunStartedPayload{RunID: e.run.ID})

	logging.Info().
		Add(logging.RunID(e.run.ID)).
		Add(logging.AgentID(e.agentID)).
		Msg("run started")
}

// plan selects a goal and searches for a plan, moving the run into the
// executing phase on success.
func (e *Executor) plan(ctx context.Context) error {
	if e.interp.Phase() == run.PhaseIdle {
		if err := e.transition(ctx, run.PhasePlanning, "goal selection"); err != nil {
			e.fail(ctx, err.Error())
			return err
		}
	}
	phase := string(e.interp.Phase())

	if !e.budget.CanConsume(policy.ResourcePlans, 1) {
		e.ledger.RecordBudgetExhausted(phase, policy.ResourcePlans)
		e.fail(ctx, "plan budget exhausted")
		return policy.ErrBudgetExceeded
	}

	p, diag, err := e.planner.PlanBest(ctx)
	if err != nil {
		e.fail(ctx, err.Error())
		return err
	}
	e.consumeBudget(ctx, policy.ResourcePlans, 1)
	e.metrics.RecordPlanSearch(ctx, diag.GoalID, string(diag.Outcome), diag.Duration)

	if diag.Outcome == plan.OutcomeNoPendingGoal {
		e.complete(ctx, "no pending goal")
		return nil
	}

	if g, gerr := e.planner.Goals().Get(diag.GoalID); gerr == nil {
		e.run.GoalID = g.ID
		e.ledger.RecordGoalSelected(phase, g)
		e.appendEvent(ctx, event.TypeGoalSelected, event.GoalSelectedPayload{
			GoalID:   g.ID,
			Priority: g.Priority,
		})
	}

	if p == nil {
		e.ledger.RecordNoPlan(phase, diag)
		e.appendEvent(ctx, event.TypePlanFailed, event.PlanFailedPayload{
			GoalID:  diag.GoalID,
			Outcome: string(diag.Outcome),
		})
		e.fail(ctx, fmt.Sprintf("%s for goal %s", diag.Outcome, diag.GoalID))
		return fmt.Errorf("%w: %s (%s)", ErrNoPlanForGoal, diag.GoalID, diag.Outcome)
	}

	e.current = p
	e.stepIdx = 0
	e.ledger.RecordPlanComputed(phase, p, diag, diag.Cached)
	e.appendEvent(ctx, event.TypePlanComputed, event.PlanComputedPayload{
		GoalID:     p.GoalID,
		ActionIDs:  p.ActionIDs(),
		TotalCost:  p.TotalCost,
		Iterations: diag.Iterations,
	})
	e.archivePlan(ctx, p, diag)

	if p.Empty() {
		// The selected goal already held at planning time
		e.current = nil
		e.complete(ctx, "goal already satisfied")
		return nil
	}

	if err := e.transition(ctx, run.PhaseExecuting, "plan found"); err != nil {
		e.fail(ctx, err.Error())
		return err
	}
	if e.interp.Phase() != run.PhaseExecuting {
		// The budget guard dropped the transition
		for _, name := range e.budget.ExhaustedBudgets() {
			e.ledger.RecordBudgetExhausted(string(e.interp.Phase()), name)
		}
		e.fail(ctx, "budget exhausted before execution")
		return policy.ErrBudgetExceeded
	}
	return nil
}

// executeNext runs the next plan step against the live state.
func (e *Executor) executeNext(ctx context.Context) error {
	phase := string(e.interp.Phase())
	step := e.current.Steps[e.stepIdx]

	act, err := e.planner.Actions().Get(step.ActionID)
	if err != nil {
		e.fail(ctx, err.Error())
		return err
	}

	if !act.Applicable(e.planner.WorldState()) {
		return e.invalidate(ctx, act.ID, "precondition no longer holds")
	}

	if !e.budget.CanConsume(policy.ResourceSteps, 1) {
		e.ledger.RecordBudgetExhausted(phase, policy.ResourceSteps)
		e.fail(ctx, "step budget exhausted")
		return policy.ErrBudgetExceeded
	}

	started := time.Now()
	var execErr error
	if handler, ok := e.handlers[act.ID]; ok && handler != nil {
		execErr = e.invokeHandler(ctx, handler, act)
	}
	duration := time.Since(started)

	if execErr != nil {
		e.ledger.RecordActionFailed(phase, act.ID, execErr)
		e.metrics.RecordStepExecution(ctx, act.ID, false, duration)
		return e.invalidate(ctx, act.ID, "handler failed: "+execErr.Error())
	}

	// Success: the action's declared effects become ground truth
	e.planner.ApplyFacts(act.Effects)
	e.consumeBudget(ctx, policy.ResourceSteps, 1)
	e.run.RecordStep(act.Cost)
	e.ledger.RecordActionExecuted(phase, act.ID, act.Cost, duration)
	e.appendEvent(ctx, event.TypeActionExecuted, event.ActionExecutedPayload{
		ActionID: act.ID,
		Cost:     act.Cost,
		Step:     e.stepIdx,
		Success:  true,
	})
	e.metrics.RecordStepExecution(ctx, act.ID, true, duration)

	logging.Debug().
		Add(logging.RunID(e.run.ID)).
		Add(logging.ActionID(act.ID)).
		Add(logging.Step(e.stepIdx)).
		Add(logging.Duration(duration)).
		Msg("action executed")

	e.stepIdx++
	if e.stepIdx >= e.current.Len() {
		return e.finishPlan(ctx)
	}
	return nil
}

// invokeHandler runs one handler, bounded by the step timeout when one is
// configured.
func (e *Executor) invokeHandler(ctx context.Context, h ActionHandler, a action.Action) error {
	if e.stepTimeout <= 0 {
		return h(ctx, a)
	}
	hctx, cancel := context.WithTimeout(ctx, e.stepTimeout)
	defer cancel()
	return h(hctx, a)
}

// finishPlan checks the goal after the last step; effects that diverged
// from the goal conditions trigger one more replanning round.
func (e *Executor) finishPlan(ctx context.Context) error {
	goalID := e.current.GoalID

	if g, err := e.planner.Goals().Get(goalID); err == nil && g.Satisfied(e.planner.WorldState()) {
		e.current = nil
		e.complete(ctx, "goal satisfied")
		return nil
	}

	return e.invalidate(ctx, "", "plan completed without satisfying goal "+goalID)
}

// invalidate abandons the active plan and moves the run into replanning.
// The next Step performs the new search.
func (e *Executor) invalidate(ctx context.Context, actionID, reason string) error {
	phase := string(e.interp.Phase())
	goalID := ""
	if e.current != nil {
		goalID = e.current.GoalID
	}

	e.ledger.RecordPlanInvalidated(phase, actionID, reason)
	e.current = nil
	e.stepIdx = 0

	if e.replans >= e.maxReplans {
		e.fail(ctx, "replan limit exceeded")
		return fmt.Errorf("replan limit exceeded after %d replans", e.replans)
	}
	if !e.budget.CanConsume(policy.ResourceReplans, 1) {
		e.ledger.RecordBudgetExhausted(phase, policy.ResourceReplans)
		e.fail(ctx, "replan budget exhausted")
		return policy.ErrBudgetExceeded
	}

	if err := e.transition(ctx, run.PhaseReplanning, reason); err != nil {
		e.fail(ctx, err.Error())
		return err
	}
	if e.interp.Phase() != run.PhaseReplanning {
		// The budget guard dropped the transition
		e.fail(ctx, "budget exhausted before replanning")
		return policy.ErrBudgetExceeded
	}

	e.consumeBudget(ctx, policy.ResourceReplans, 1)
	e.replans++
	e.run.RecordReplan()
	e.ledger.RecordReplanTriggered(string(run.PhaseReplanning), reason)
	e.appendEvent(ctx, event.TypeReplanTriggered, event.ReplanTriggeredPayload{
		GoalID: goalID,
		Reason: reason,
	})
	e.metrics.RecordReplan(ctx, goalID, reason)

	logging.Debug().
		Add(logging.RunID(e.run.ID)).
		Add(logging.GoalID(goalID)).
		Add(logging.Reason(reason)).
		Msg("replan triggered")

	return nil
}

// complete moves the run to done and records the terminal bookkeeping.
func (e *Executor) complete(ctx context.Context, reason string) {
	_ = e.transition(ctx, run.PhaseDone, reason)
	e.ledger.RecordRunCompleted(string(run.PhaseDone))
	e.appendEvent(ctx, event.TypeRunCompleted, event.RunCompletedPayload{
		RunID:         e.run.ID,
		GoalID:        e.run.GoalID,
		StepsExecuted: e.run.StepsExecuted,
		TotalCost:     e.run.TotalCost,
	})
	e.metrics.RecordRunDuration(ctx, e.run.Duration(), string(run.PhaseDone), true)
}

// fail moves the run to failed and records the terminal bookkeeping.
func (e *Executor) fail(ctx context.Context, reason string) {
	if !e.interp.IsTerminal() {
		_ = e.transition(ctx, run.PhaseFailed, reason)
	}
	e.run.Fail(reason)
	e.ledger.RecordRunFailed(string(run.PhaseFailed), reason)
	e.appendEvent(ctx, event.TypeRunFailed, event.RunFailedPayload{
		RunID:  e.run.ID,
		Reason: reason,
	})
	e.metrics.RecordRunDuration(ctx, e.run.Duration(), string(run.PhaseFailed), false)
}

// transition delegates to the interpreter and records the phase move.
func (e *Executor) transition(ctx context.Context, to run.Phase, reason string) error {
	from := e.interp.Phase()
	if err := e.interp.Transition(to, reason); err != nil {
		return err
	}
	if e.interp.Phase() == to {
		e.metrics.RecordPhaseTransition(ctx, string(from), string(to), e.run.ID)
	}
	return nil
}

// consumeBudget deducts from the run budget and records it. Callers check
// CanConsume first.
func (e *Executor) consumeBudget(ctx context.Context, name string, amount int64) {
	_ = e.budget.Consume(name, amount)
	remaining := e.budget.Remaining(name)
	e.ledger.RecordBudgetConsumed(string(e.interp.Phase()), name, amount, remaining)
	e.metrics.RecordBudgetConsumption(ctx, name, amount, remaining)
}

// appendEvent writes to the event stream through the resilience layer.
// Event appends allocate a sequence number per call, so they are never
// retried; failures are logged and do not fail the run.
func (e *Executor) appendEvent(ctx context.Context, t event.Type, payload any) {
	if e.events == nil {
		return
	}

	ev, err := event.NewEvent(e.agentID, t, payload)
	if err != nil {
		logging.Warn().
			Add(logging.RunID(e.run.ID)).
			Add(logging.Str("event_type", string(t))).
			Add(logging.ErrorField(err)).
			Msg("event encode failed")
		return
	}

	err = e.storage.ExecuteOnce(ctx, func(ctx context.Context) error {
		return e.events.Append(ctx, ev)
	})
	if err != nil {
		logging.Warn().
			Add(logging.RunID(e.run.ID)).
			Add(logging.Str("event_type", string(t))).
			Add(logging.ErrorField(err)).
			Msg("event append failed")
	}
}

// archivePlan persists a computed plan through the resilience layer.
// Archive saves are idempotent per record ID and may be retried; failures
// are logged and do not fail the run.
func (e *Executor) archivePlan(ctx context.Context, p *plan.Plan, diag plan.Diagnostics) {
	if e.archive == nil {
		return
	}

	rec := plan.Record{
		ID:          generateID("rec"),
		AgentID:     e.agentID,
		GoalID:      p.GoalID,
		Plan:        p,
		Diagnostics: diag,
		CreatedAt:   time.Now(),
	}

	err := e.storage.Execute(ctx, func(ctx context.Context) error {
		return e.archive.Save(ctx, rec)
	})
	if err != nil {
		logging.Warn().
			Add(logging.RunID(e.run.ID)).
			Add(logging.GoalID(p.GoalID)).
			Add(logging.ErrorField(err)).
			Msg("plan archive failed")
	}
}

// RunState returns the run this executor drives.
func (e *Executor) RunState() *run.Run {
	return e.run
}

// Ledger returns the run's audit ledger.
func (e *Executor) Ledger() *ledger.Ledger {
	return e.ledger
}

// Budget returns the run's budget.
func (e *Executor) Budget() *policy.Budget {
	return e.budget
}

// Planner returns the planning service.
func (e *Executor) Planner() PlanService {
	return e.planner
}

// Phase returns the run's current phase.
func (e *Executor) Phase() run.Phase {
	return e.interp.Phase()
}

// ActivePlan returns the plan currently being executed, or nil.
func (e *Executor) ActivePlan() *plan.Plan {
	return e.current
}

// generateID creates a unique ID using timestamp and random bytes.
func generateID(prefix string) string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixNano(), hex.EncodeToString(b))
}
