// Package memory provides in-memory storage implementations.
package memory

import (
	"fmt"
	"math"
	"sync"

	"github.com/ruvnet/arcadia-goap/domain/action"
)

// ActionRegistry is an in-memory implementation of action.Registry. The
// backing slice preserves registration order, which candidate generation
// during search depends on for determinism.
type ActionRegistry struct {
	actions []action.Action
	index   map[string]int
	version uint64
	mu      sync.RWMutex
}

// NewActionRegistry creates a new in-memory action registry.
func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{
		index: make(map[string]int),
	}
}

// Register adds an action to the registry.
func (r *ActionRegistry) Register(a action.Action) error {
	if err := a.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[a.ID]; exists {
		return fmt.Errorf("%w: %s", action.ErrActionExists, a.ID)
	}

	r.index[a.ID] = len(r.actions)
	r.actions = append(r.actions, a.Clone())
	r.version++
	return nil
}

// Get retrieves an action by ID.
func (r *ActionRegistry) Get(id string) (action.Action, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return action.Action{}, fmt.Errorf("%w: %s", action.ErrActionNotFound, id)
	}
	return r.actions[i].Clone(), nil
}

// All returns copies of every registered action in registration order.
func (r *ActionRegistry) All() []action.Action {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]action.Action, len(r.actions))
	for i, a := range r.actions {
		out[i] = a.Clone()
	}
	return out
}

// SetCost overwrites a registered action's cost.
func (r *ActionRegistry) SetCost(id string, cost float64) error {
	if math.IsNaN(cost) || cost < 0 {
		return fmt.Errorf("%w: %g", action.ErrInvalidCost, cost)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", action.ErrActionNotFound, id)
	}

	r.actions[i].Cost = cost
	r.version++
	return nil
}

// Has checks if an action is registered.
func (r *ActionRegistry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.index[id]
	return ok
}

// Len returns the number of registered actions.
func (r *ActionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.actions)
}

// Version returns the mutation counter. It increments on Register and
// SetCost; plan caches key on it to drop entries computed against stale
// libraries.
func (r *ActionRegistry) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

var _ action.Registry = (*ActionRegistry)(nil)
