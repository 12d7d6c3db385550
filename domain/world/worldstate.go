package world

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Facts is a partial fact set: the shape of action preconditions and
// effects, and of goal conditions.
type Facts map[string]Value

// Clone returns an independent copy of the fact set.
func (f Facts) Clone() Facts {
	if f == nil {
		return nil
	}
	out := make(Facts, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Keys returns the fact names in sorted order.
func (f Facts) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// State is the full world state: a mapping from fact name to Value. Identity
// is content-based over the sorted key/value pairs; insertion order never
// matters. Set mutates the receiver's backing map and is reserved for the
// owner of the live state; independent states are derived with Apply or
// Clone so historical states in a search stay uncorrupted.
type State struct {
	facts map[string]Value
}

// NewState returns an empty world state.
func NewState() State {
	return State{facts: make(map[string]Value)}
}

// StateOf returns a world state seeded from the given facts. The input map
// is copied.
func StateOf(facts Facts) State {
	s := State{facts: make(map[string]Value, len(facts))}
	for k, v := range facts {
		s.facts[k] = v
	}
	return s
}

// Get returns the value of a fact. The second result is false when the fact
// is unknown.
func (s State) Get(key string) (Value, bool) {
	v, ok := s.facts[key]
	return v, ok
}

// Set records a fact in place.
func (s *State) Set(key string, v Value) {
	if s.facts == nil {
		s.facts = make(map[string]Value)
	}
	s.facts[key] = v
}

// Matches reports whether every fact in partial is present with an equal
// value. An unknown fact fails the match: unknown is conservatively
// unsatisfied.
func (s State) Matches(partial Facts) bool {
	for k, want := range partial {
		got, ok := s.facts[k]
		if !ok || !got.Equal(want) {
			return false
		}
	}
	return true
}

// Apply returns a new state equal to the receiver with every effect
// overwritten or inserted. The receiver is never modified.
func (s State) Apply(effects Facts) State {
	next := State{facts: make(map[string]Value, len(s.facts)+len(effects))}
	for k, v := range s.facts {
		next.facts[k] = v
	}
	for k, v := range effects {
		next.facts[k] = v
	}
	return next
}

// DistanceTo counts the conditions not currently matched: the planning
// heuristic. Admissible when each action resolves at most one unmatched
// condition per unit of cost.
func (s State) DistanceTo(conditions Facts) int {
	distance := 0
	for k, want := range conditions {
		got, ok := s.facts[k]
		if !ok || !got.Equal(want) {
			distance++
		}
	}
	return distance
}

// Key returns a deterministic fingerprint over the sorted contents. Two
// states are equal exactly when their keys are equal; the planner uses keys
// as closed-set identities.
func (s State) Key() string {
	keys := make([]string, 0, len(s.facts))
	for k := range s.facts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(strconv.Quote(k))
		b.WriteByte('=')
		b.WriteString(s.facts[k].String())
		b.WriteByte(';')
	}
	return b.String()
}

// Equal reports whether two states hold identical contents.
func (s State) Equal(o State) bool {
	if len(s.facts) != len(o.facts) {
		return false
	}
	for k, v := range s.facts {
		ov, ok := o.facts[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the state.
func (s State) Clone() State {
	next := State{facts: make(map[string]Value, len(s.facts))}
	for k, v := range s.facts {
		next.facts[k] = v
	}
	return next
}

// Len returns the number of known facts.
func (s State) Len() int {
	return len(s.facts)
}

// Keys returns the known fact names in sorted order.
func (s State) Keys() []string {
	keys := make([]string, 0, len(s.facts))
	for k := range s.facts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Facts returns a copy of the state's contents as a partial fact set.
func (s State) Facts() Facts {
	out := make(Facts, len(s.facts))
	for k, v := range s.facts {
		out[k] = v
	}
	return out
}

// String renders the state in sorted order for logs and test output.
func (s State) String() string {
	keys := s.Keys()
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(s.facts[k].String())
	}
	b.WriteByte('}')
	return b.String()
}

// MarshalJSON encodes the state as an object of tagged values.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.facts)
}

// UnmarshalJSON decodes an object of tagged values.
func (s *State) UnmarshalJSON(data []byte) error {
	var facts map[string]Value
	if err := json.Unmarshal(data, &facts); err != nil {
		return err
	}
	if facts == nil {
		facts = make(map[string]Value)
	}
	s.facts = facts
	return nil
}
