package run

import (
	"testing"
)

func TestPhaseIsTerminal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		phase    Phase
		terminal bool
	}{
		{PhaseIdle, false},
		{PhasePlanning, false},
		{PhaseExecuting, false},
		{PhaseReplanning, false},
		{PhaseDone, true},
		{PhaseFailed, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.phase), func(t *testing.T) {
			t.Parallel()

			if got := tt.phase.IsTerminal(); got != tt.terminal {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.terminal)
			}
		})
	}
}

func TestPhaseIsValid(t *testing.T) {
	t.Parallel()

	for _, p := range AllPhases() {
		if !p.IsValid() {
			t.Errorf("IsValid(%s) = false, want true", p)
		}
	}
	if Phase("daydreaming").IsValid() {
		t.Error("IsValid(daydreaming) = true, want false")
	}
}

func TestRunLifecycle(t *testing.T) {
	t.Parallel()

	r := NewRun("run-1", "agent-1")

	if r.Phase != PhaseIdle {
		t.Errorf("initial Phase = %s, want idle", r.Phase)
	}
	if r.Status != StatusPending {
		t.Errorf("initial Status = %s, want pending", r.Status)
	}

	r.Start()
	if r.Status != StatusRunning {
		t.Errorf("Status after Start = %s, want running", r.Status)
	}

	r.TransitionTo(PhasePlanning)
	r.TransitionTo(PhaseExecuting)
	r.RecordStep(1)
	r.RecordStep(2.5)
	r.RecordReplan()

	if r.StepsExecuted != 2 {
		t.Errorf("StepsExecuted = %d, want 2", r.StepsExecuted)
	}
	if r.TotalCost != 3.5 {
		t.Errorf("TotalCost = %v, want 3.5", r.TotalCost)
	}
	if r.ReplanCount != 1 {
		t.Errorf("ReplanCount = %d, want 1", r.ReplanCount)
	}

	r.TransitionTo(PhaseDone)
	if r.Status != StatusCompleted {
		t.Errorf("Status = %s, want completed", r.Status)
	}
	if !r.IsTerminal() {
		t.Error("IsTerminal() = false after done")
	}
	if r.EndTime.IsZero() {
		t.Error("EndTime not set on terminal transition")
	}
	if r.Duration() < 0 {
		t.Errorf("Duration() = %v, want non-negative", r.Duration())
	}
}

func TestRunFail(t *testing.T) {
	t.Parallel()

	r := NewRun("run-2", "agent-1")
	r.Start()
	r.Fail("no plan found")

	if r.Status != StatusFailed {
		t.Errorf("Status = %s, want failed", r.Status)
	}
	if r.Phase != PhaseFailed {
		t.Errorf("Phase = %s, want failed", r.Phase)
	}
	if r.Error != "no plan found" {
		t.Errorf("Error = %q", r.Error)
	}
}

func TestTransitionToFailedSetsStatus(t *testing.T) {
	t.Parallel()

	r := NewRun("run-3", "agent-1")
	r.Start()
	r.TransitionTo(PhaseFailed)

	if r.Status != StatusFailed {
		t.Errorf("Status = %s, want failed", r.Status)
	}
}
