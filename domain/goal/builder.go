package goal

import (
	"fmt"

	"github.com/ruvnet/arcadia-goap/domain/world"
)

// Builder provides a fluent API for constructing goals. Condition values
// may be any supported scalar (bool, integer, float, or string);
// conversion errors latch and surface from Build.
type Builder struct {
	goal Goal
	err  error
}

// NewBuilder creates a new goal builder with the given ID and a default
// priority of 0.
func NewBuilder(id string) *Builder {
	return &Builder{
		goal: Goal{
			ID:         id,
			Conditions: world.Facts{},
		},
	}
}

// WithPriority sets the selection priority, in [0, 1].
func (b *Builder) WithPriority(priority float64) *Builder {
	if b.err != nil {
		return b
	}
	b.goal.Priority = priority
	return b
}

// WithCondition adds a condition fact.
func (b *Builder) WithCondition(key string, value any) *Builder {
	if b.err != nil {
		return b
	}
	v, err := world.FromAny(value)
	if err != nil {
		b.err = fmt.Errorf("condition %q: %w", key, err)
		return b
	}
	b.goal.Conditions[key] = v
	return b
}

// Build validates and returns the goal.
func (b *Builder) Build() (Goal, error) {
	if b.err != nil {
		return Goal{}, b.err
	}
	if err := b.goal.Validate(); err != nil {
		return Goal{}, err
	}
	return b.goal.Clone(), nil
}

// MustBuild constructs the goal or panics on error.
func (b *Builder) MustBuild() Goal {
	g, err := b.Build()
	if err != nil {
		panic(err)
	}
	return g
}
