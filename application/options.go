package application

import (
	"github.com/ruvnet/arcadia-goap/domain/action"
	"github.com/ruvnet/arcadia-goap/domain/goal"
	"github.com/ruvnet/arcadia-goap/domain/telemetry"
	"github.com/ruvnet/arcadia-goap/domain/world"
)

// Option configures the planner.
type Option func(*PlannerConfig)

// WithActionRegistry sets the action registry.
func WithActionRegistry(r action.Registry) Option {
	return func(c *PlannerConfig) {
		c.Actions = r
	}
}

// WithGoalRegistry sets the goal registry.
func WithGoalRegistry(r goal.Registry) Option {
	return func(c *PlannerConfig) {
		c.Goals = r
	}
}

// WithInitialState seeds the live world state.
func WithInitialState(s world.State) Option {
	return func(c *PlannerConfig) {
		c.InitialState = s
	}
}

// WithMaxIterations caps open-set pops per search call.
func WithMaxIterations(n int) Option {
	return func(c *PlannerConfig) {
		c.MaxIterations = n
	}
}

// WithHeuristic sets the search heuristic.
func WithHeuristic(h Heuristic) Option {
	return func(c *PlannerConfig) {
		c.Heuristic = h
	}
}

// WithTracer sets the tracer for planning spans.
func WithTracer(t telemetry.Tracer) Option {
	return func(c *PlannerConfig) {
		c.Tracer = t
	}
}

// WithMeter sets the meter for planning metrics.
func WithMeter(m telemetry.Meter) Option {
	return func(c *PlannerConfig) {
		c.Meter = m
	}
}

// NewPlannerWithOptions creates a planner with functional options.
func NewPlannerWithOptions(opts ...Option) *Planner {
	config := PlannerConfig{}
	for _, opt := range opts {
		opt(&config)
	}
	return NewPlanner(config)
}
