package policy

import (
	"github.com/ruvnet/arcadia-goap/domain/run"
)

// PhaseTransitions defines allowed run phase transitions.
//
// Thread Safety: PhaseTransitions is NOT safe for concurrent modification.
// It should be fully configured before being passed to the executor and
// treated as immutable thereafter. The read methods (CanTransition,
// AllowedTransitions) are safe for concurrent use after configuration is
// complete.
type PhaseTransitions struct {
	transitions map[run.Phase][]run.Phase
}

// TransitionRules maps phases to the phases they can transition to.
// This is the preferred way to configure transitions declaratively.
type TransitionRules map[run.Phase][]run.Phase

// NewPhaseTransitions creates a new empty transition configuration.
// Use the Allow method to add rules, or DefaultTransitions() for the
// canonical configuration.
func NewPhaseTransitions() *PhaseTransitions {
	return &PhaseTransitions{
		transitions: make(map[run.Phase][]run.Phase),
	}
}

// NewPhaseTransitionsWith creates a transition configuration from a rules map.
func NewPhaseTransitionsWith(rules TransitionRules) *PhaseTransitions {
	t := NewPhaseTransitions()
	for from, toPhases := range rules {
		for _, to := range toPhases {
			t.Allow(from, to)
		}
	}
	return t
}

// Allow permits a transition from one phase to another.
func (t *PhaseTransitions) Allow(from, to run.Phase) *PhaseTransitions {
	t.transitions[from] = append(t.transitions[from], to)
	return t
}

// CanTransition checks if a transition is allowed.
func (t *PhaseTransitions) CanTransition(from, to run.Phase) bool {
	allowed, exists := t.transitions[from]
	if !exists {
		return false
	}

	for _, phase := range allowed {
		if phase == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns all phases reachable from the given phase.
func (t *PhaseTransitions) AllowedTransitions(from run.Phase) []run.Phase {
	return t.transitions[from]
}

// DefaultTransitions returns the canonical phase transition configuration.
//
// The default flow is:
//
//	idle → planning → executing → done
//	            ↑          ↓
//	            └── replanning
//
// Planning may end directly in done when the selected goal is already
// satisfied. All non-terminal phases can transition to failed.
func DefaultTransitions() *PhaseTransitions {
	return NewPhaseTransitionsWith(TransitionRules{
		run.PhaseIdle:       {run.PhasePlanning, run.PhaseDone, run.PhaseFailed},
		run.PhasePlanning:   {run.PhaseExecuting, run.PhaseDone, run.PhaseFailed},
		run.PhaseExecuting:  {run.PhaseReplanning, run.PhaseDone, run.PhaseFailed},
		run.PhaseReplanning: {run.PhaseExecuting, run.PhaseDone, run.PhaseFailed},
	})
}
