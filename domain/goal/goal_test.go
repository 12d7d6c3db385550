package goal

import (
	"errors"
	"testing"

	"github.com/ruvnet/arcadia-goap/domain/world"
)

func TestGoal_Satisfied(t *testing.T) {
	stayArmed := Goal{
		ID:       "stay_armed",
		Priority: 0.8,
		Conditions: world.Facts{
			"has_weapon": world.Bool(true),
			"ammo":       world.Int(6),
		},
	}

	tests := []struct {
		name  string
		state world.State
		want  bool
	}{
		{
			"all conditions hold",
			world.StateOf(world.Facts{
				"has_weapon": world.Bool(true),
				"ammo":       world.Int(6),
				"extra":      world.String("ignored"),
			}),
			true,
		},
		{
			"one condition short",
			world.StateOf(world.Facts{"has_weapon": world.Bool(true)}),
			false,
		},
		{"empty state", world.NewState(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stayArmed.Satisfied(tt.state); got != tt.want {
				t.Errorf("Satisfied(%s) = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}

func TestGoal_SatisfiedIsPure(t *testing.T) {
	g := Goal{ID: "hold", Priority: 0.5, Conditions: world.Facts{"x": world.Bool(true)}}
	s := world.StateOf(world.Facts{"x": world.Bool(true)})
	snapshot := s.Clone()

	for i := 0; i < 3; i++ {
		if !g.Satisfied(s) {
			t.Fatalf("Satisfied() = false on call %d, want true", i+1)
		}
	}
	if !s.Equal(snapshot) {
		t.Error("Satisfied mutated the state")
	}
}

func TestGoal_Validate(t *testing.T) {
	tests := []struct {
		name    string
		g       Goal
		wantErr error
	}{
		{"valid", Goal{ID: "survive", Priority: 1.0}, nil},
		{"zero priority valid", Goal{ID: "tidy", Priority: 0}, nil},
		{"empty id", Goal{Priority: 0.5}, ErrEmptyGoalID},
		{"priority above range", Goal{ID: "x", Priority: 1.5}, ErrInvalidPriority},
		{"negative priority", Goal{ID: "x", Priority: -0.1}, ErrInvalidPriority},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.g.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGoal_Clone(t *testing.T) {
	g := Goal{ID: "hide", Priority: 0.4, Conditions: world.Facts{"in_cover": world.Bool(true)}}
	c := g.Clone()
	c.Conditions["in_cover"] = world.Bool(false)

	if !g.Conditions["in_cover"].Equal(world.Bool(true)) {
		t.Error("mutating a clone's conditions changed the original")
	}
}
