// Package pack provides types for bundled action and goal libraries.
//
// A pack is a reusable planning domain fragment: plain action and goal
// data that can be installed into an engine's registries as a unit. The
// bundled packs under pack/ cover common game domains and double as
// realistic fixtures for examples and tests.
package pack

import (
	"github.com/ruvnet/arcadia-goap/domain/action"
	"github.com/ruvnet/arcadia-goap/domain/goal"
)

// Pack is a named collection of related actions and goals.
type Pack struct {
	// Name is the unique identifier for the pack.
	Name string

	// Description explains what the pack provides.
	Description string

	// Version is the semantic version of the pack.
	Version string

	// Actions is the action library provided by this pack.
	Actions []action.Action

	// Goals is the goal library provided by this pack.
	Goals []goal.Goal
}

// ActionIDs returns the IDs of all actions in the pack.
func (p *Pack) ActionIDs() []string {
	ids := make([]string, len(p.Actions))
	for i, a := range p.Actions {
		ids[i] = a.ID
	}
	return ids
}

// GoalIDs returns the IDs of all goals in the pack.
func (p *Pack) GoalIDs() []string {
	ids := make([]string, len(p.Goals))
	for i, g := range p.Goals {
		ids[i] = g.ID
	}
	return ids
}

// GetAction returns an action by ID from the pack.
func (p *Pack) GetAction(id string) (action.Action, bool) {
	for _, a := range p.Actions {
		if a.ID == id {
			return a.Clone(), true
		}
	}
	return action.Action{}, false
}

// GetGoal returns a goal by ID from the pack.
func (p *Pack) GetGoal(id string) (goal.Goal, bool) {
	for _, g := range p.Goals {
		if g.ID == id {
			return g.Clone(), true
		}
	}
	return goal.Goal{}, false
}

// Install registers every action and goal of the pack. Registration stops
// at the first error, so installing over a registry that already holds one
// of the IDs fails without unwinding earlier registrations.
func (p *Pack) Install(actions action.Registry, goals goal.Registry) error {
	for _, a := range p.Actions {
		if err := actions.Register(a); err != nil {
			return err
		}
	}
	for _, g := range p.Goals {
		if err := goals.Register(g); err != nil {
			return err
		}
	}
	return nil
}

// Builder provides a fluent API for constructing packs.
type Builder struct {
	pack *Pack
}

// NewBuilder creates a new pack builder.
func NewBuilder(name string) *Builder {
	return &Builder{
		pack: &Pack{
			Name: name,
		},
	}
}

// WithDescription sets the pack description.
func (b *Builder) WithDescription(desc string) *Builder {
	b.pack.Description = desc
	return b
}

// WithVersion sets the pack version.
func (b *Builder) WithVersion(version string) *Builder {
	b.pack.Version = version
	return b
}

// AddActions adds actions to the pack.
func (b *Builder) AddActions(actions ...action.Action) *Builder {
	b.pack.Actions = append(b.pack.Actions, actions...)
	return b
}

// AddGoals adds goals to the pack.
func (b *Builder) AddGoals(goals ...goal.Goal) *Builder {
	b.pack.Goals = append(b.pack.Goals, goals...)
	return b
}

// Build returns the constructed pack.
func (b *Builder) Build() *Pack {
	return b.pack
}
