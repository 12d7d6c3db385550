package action

// Registry manages the library of registered actions. Implementations must
// preserve registration order in All: candidate generation during search
// iterates that order, and plan determinism depends on it.
type Registry interface {
	// Register adds an action. Returns ErrActionExists for a duplicate ID
	// and a validation error for a malformed definition.
	Register(a Action) error

	// Get returns the action with the given ID, or ErrActionNotFound.
	Get(id string) (Action, error)

	// All returns copies of every registered action in registration order.
	All() []Action

	// SetCost overwrites a registered action's cost. This is the coupling
	// point for external modules that adapt behavior between planning
	// calls.
	SetCost(id string, cost float64) error

	// Has reports whether an action is registered.
	Has(id string) bool

	// Len returns the number of registered actions.
	Len() int

	// Version increments on every mutation (Register, SetCost). Plan
	// caches use it to invalidate entries computed against stale
	// libraries.
	Version() uint64
}
