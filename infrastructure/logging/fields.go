package logging

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"

	"github.com/ruvnet/arcadia-goap/domain/plan"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// Common field constructors for planning engine logging.

// AgentID adds an agent ID field.
func AgentID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("agent_id", id)
	}
}

// RunID adds a run ID field.
func RunID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("run_id", id)
	}
}

// GoalID adds a goal ID field.
func GoalID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("goal_id", id)
	}
}

// ActionID adds an action ID field.
func ActionID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("action_id", id)
	}
}

// Priority adds a goal priority field.
func Priority(p float64) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Float64("priority", p)
	}
}

// PlanCost adds a total plan cost field.
func PlanCost(cost float64) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Float64("plan_cost", cost)
	}
}

// PlanLength adds a plan length field.
func PlanLength(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("plan_length", n)
	}
}

// Iterations adds a search iteration count field.
func Iterations(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("iterations", n)
	}
}

// NodesExpanded adds a nodes expanded field.
func NodesExpanded(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("nodes_expanded", n)
	}
}

// Outcome adds a planning outcome field.
func Outcome(o plan.Outcome) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("outcome", string(o))
	}
}

// Step adds a plan step index field.
func Step(i int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("step", i)
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// DurationNs adds a duration field in nanoseconds.
func DurationNs(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ns", d.Nanoseconds())
	}
}

// Cached adds a cached field.
func Cached(cached bool) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Bool("cached", cached)
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

// Budget adds budget-related fields.
func Budget(name string, remaining int64) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("budget", name).Int64("remaining", remaining)
	}
}

// Reason adds a reason field.
func Reason(reason string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("reason", reason)
	}
}

// Component adds a component field for categorization.
func Component(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("component", name)
	}
}

// Backend adds a storage backend field.
func Backend(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("backend", name)
	}
}

// Str adds a string field with custom key.
func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}

// Int adds an int field with custom key.
func Int(key string, value int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int(key, value)
	}
}
