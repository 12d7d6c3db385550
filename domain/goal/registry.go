package goal

// Registry manages the set of registered goals. Implementations must
// preserve registration order in All: goal selection breaks priority ties
// in favor of the goal registered first.
type Registry interface {
	// Register adds a goal. Returns ErrGoalExists for a duplicate ID and a
	// validation error for a malformed definition.
	Register(g Goal) error

	// Get returns the goal with the given ID, or ErrGoalNotFound.
	Get(id string) (Goal, error)

	// All returns copies of every registered goal in registration order.
	All() []Goal

	// Has reports whether a goal is registered.
	Has(id string) bool

	// Len returns the number of registered goals.
	Len() int
}
