package memory

import (
	"fmt"
	"sync"

	"github.com/ruvnet/arcadia-goap/domain/goal"
)

// GoalRegistry is an in-memory implementation of goal.Registry. The
// backing slice preserves registration order, which goal selection uses to
// break priority ties.
type GoalRegistry struct {
	goals []goal.Goal
	index map[string]int
	mu    sync.RWMutex
}

// NewGoalRegistry creates a new in-memory goal registry.
func NewGoalRegistry() *GoalRegistry {
	return &GoalRegistry{
		index: make(map[string]int),
	}
}

// Register adds a goal to the registry.
func (r *GoalRegistry) Register(g goal.Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[g.ID]; exists {
		return fmt.Errorf("%w: %s", goal.ErrGoalExists, g.ID)
	}

	r.index[g.ID] = len(r.goals)
	r.goals = append(r.goals, g.Clone())
	return nil
}

// Get retrieves a goal by ID.
func (r *GoalRegistry) Get(id string) (goal.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return goal.Goal{}, fmt.Errorf("%w: %s", goal.ErrGoalNotFound, id)
	}
	return r.goals[i].Clone(), nil
}

// All returns copies of every registered goal in registration order.
func (r *GoalRegistry) All() []goal.Goal {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]goal.Goal, len(r.goals))
	for i, g := range r.goals {
		out[i] = g.Clone()
	}
	return out
}

// Has checks if a goal is registered.
func (r *GoalRegistry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.index[id]
	return ok
}

// Len returns the number of registered goals.
func (r *GoalRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.goals)
}

var _ goal.Registry = (*GoalRegistry)(nil)
