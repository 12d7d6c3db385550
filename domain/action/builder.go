package action

import (
	"fmt"

	"github.com/ruvnet/arcadia-goap/domain/world"
)

// Builder provides a fluent API for constructing actions. Condition and
// effect values may be any supported scalar (bool, integer, float, or
// string); conversion errors latch and surface from Build.
type Builder struct {
	act Action
	err error
}

// NewBuilder creates a new action builder with the given ID and a default
// cost of 1.
func NewBuilder(id string) *Builder {
	return &Builder{
		act: Action{
			ID:            id,
			Cost:          1,
			Preconditions: world.Facts{},
			Effects:       world.Facts{},
		},
	}
}

// WithCost sets the planning cost.
func (b *Builder) WithCost(cost float64) *Builder {
	if b.err != nil {
		return b
	}
	b.act.Cost = cost
	return b
}

// WithPrecondition adds a precondition fact.
func (b *Builder) WithPrecondition(key string, value any) *Builder {
	if b.err != nil {
		return b
	}
	v, err := world.FromAny(value)
	if err != nil {
		b.err = fmt.Errorf("precondition %q: %w", key, err)
		return b
	}
	b.act.Preconditions[key] = v
	return b
}

// WithEffect adds an effect fact.
func (b *Builder) WithEffect(key string, value any) *Builder {
	if b.err != nil {
		return b
	}
	v, err := world.FromAny(value)
	if err != nil {
		b.err = fmt.Errorf("effect %q: %w", key, err)
		return b
	}
	b.act.Effects[key] = v
	return b
}

// Build validates and returns the action.
func (b *Builder) Build() (Action, error) {
	if b.err != nil {
		return Action{}, b.err
	}
	if err := b.act.Validate(); err != nil {
		return Action{}, err
	}
	return b.act.Clone(), nil
}

// MustBuild constructs the action or panics on error.
func (b *Builder) MustBuild() Action {
	a, err := b.Build()
	if err != nil {
		panic(err)
	}
	return a
}
