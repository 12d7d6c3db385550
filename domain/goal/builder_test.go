package goal

import (
	"errors"
	"testing"

	"github.com/ruvnet/arcadia-goap/domain/world"
)

func TestBuilder_Build(t *testing.T) {
	g, err := NewBuilder("kill_enemy").
		WithPriority(0.9).
		WithCondition("enemy_dead", true).
		WithCondition("health", 100).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if g.ID != "kill_enemy" {
		t.Errorf("ID = %q, want kill_enemy", g.ID)
	}
	if g.Priority != 0.9 {
		t.Errorf("Priority = %v, want 0.9", g.Priority)
	}
	if got := g.Conditions["enemy_dead"]; !got.Equal(world.Bool(true)) {
		t.Errorf("condition enemy_dead = %v, want true", got)
	}
	if got := g.Conditions["health"]; !got.Equal(world.Int(100)) {
		t.Errorf("condition health = %v, want 100", got)
	}
}

func TestBuilder_UnsupportedValue(t *testing.T) {
	_, err := NewBuilder("bad").
		WithCondition("positions", map[string]int{"x": 1}).
		Build()
	if err == nil {
		t.Fatal("Build() expected error for unsupported value")
	}
}

func TestBuilder_ErrorLatches(t *testing.T) {
	_, err := NewBuilder("bad").
		WithCondition("positions", map[string]int{"x": 1}).
		WithCondition("safe", true).
		WithPriority(0.5).
		Build()
	if err == nil {
		t.Fatal("Build() expected latched error")
	}
}

func TestBuilder_InvalidDefinition(t *testing.T) {
	if _, err := NewBuilder("").Build(); !errors.Is(err, ErrEmptyGoalID) {
		t.Errorf("Build() error = %v, want ErrEmptyGoalID", err)
	}
	if _, err := NewBuilder("x").WithPriority(1.5).Build(); !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("Build() error = %v, want ErrInvalidPriority", err)
	}
}

func TestBuilder_MustBuildPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustBuild() expected panic")
		}
	}()
	NewBuilder("x").WithPriority(-1).MustBuild()
}
