package api

import (
	"github.com/ruvnet/arcadia-goap/domain/action"
	"github.com/ruvnet/arcadia-goap/domain/goal"
	"github.com/ruvnet/arcadia-goap/domain/world"
	"github.com/ruvnet/arcadia-goap/infrastructure/storage/memory"
)

// NewActionBuilder creates a fluent builder for one action.
func NewActionBuilder(id string) *action.Builder {
	return action.NewBuilder(id)
}

// NewGoalBuilder creates a fluent builder for one goal.
func NewGoalBuilder(id string) *goal.Builder {
	return goal.NewBuilder(id)
}

// NewActionRegistry creates a new in-memory action registry.
func NewActionRegistry() *memory.ActionRegistry {
	return memory.NewActionRegistry()
}

// NewGoalRegistry creates a new in-memory goal registry.
func NewGoalRegistry() *memory.GoalRegistry {
	return memory.NewGoalRegistry()
}

// NewEventStore creates a new in-memory event store.
func NewEventStore() *memory.EventStore {
	return memory.NewEventStore()
}

// NewPlanArchive creates a new in-memory plan archive.
func NewPlanArchive() *memory.PlanArchive {
	return memory.NewPlanArchive()
}

// NewCache creates a new in-memory cache suitable for plan caching.
func NewCache() *memory.Cache {
	return memory.NewCache()
}

// Bool makes a boolean world value.
func Bool(v bool) Value {
	return world.Bool(v)
}

// Int makes an integer world value.
func Int(v int64) Value {
	return world.Int(v)
}

// Float makes a float world value.
func Float(v float64) Value {
	return world.Float(v)
}

// String makes a string world value.
func String(v string) Value {
	return world.String(v)
}

// NewState creates an empty world state.
func NewState() State {
	return world.NewState()
}

// StateOf creates a world state holding the given facts.
func StateOf(facts Facts) State {
	return world.StateOf(facts)
}
