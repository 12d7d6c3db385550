package action

import (
	"errors"
	"math"
	"testing"

	"github.com/ruvnet/arcadia-goap/domain/world"
)

func TestAction_Applicable(t *testing.T) {
	attack := Action{
		ID:   "attack",
		Cost: 2,
		Preconditions: world.Facts{
			"has_weapon": world.Bool(true),
			"in_range":   world.Bool(true),
		},
		Effects: world.Facts{"enemy_defeated": world.Bool(true)},
	}

	tests := []struct {
		name  string
		state world.State
		want  bool
	}{
		{
			"all preconditions hold",
			world.StateOf(world.Facts{
				"has_weapon": world.Bool(true),
				"in_range":   world.Bool(true),
			}),
			true,
		},
		{
			"one precondition missing",
			world.StateOf(world.Facts{"has_weapon": world.Bool(true)}),
			false,
		},
		{
			"precondition mismatched",
			world.StateOf(world.Facts{
				"has_weapon": world.Bool(true),
				"in_range":   world.Bool(false),
			}),
			false,
		},
		{"empty state", world.NewState(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := attack.Applicable(tt.state); got != tt.want {
				t.Errorf("Applicable(%s) = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}

func TestAction_ApplyIsPure(t *testing.T) {
	reload := Action{
		ID:      "reload",
		Cost:    1,
		Effects: world.Facts{"ammo": world.Int(6)},
	}
	before := world.StateOf(world.Facts{"ammo": world.Int(0)})
	snapshot := before.Clone()

	after := reload.Apply(before)

	if v, _ := after.Get("ammo"); !v.Equal(world.Int(6)) {
		t.Errorf("applied ammo = %v, want i:6", v)
	}
	if !before.Equal(snapshot) {
		t.Errorf("Apply mutated its input: %s", before)
	}
}

func TestAction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		a       Action
		wantErr error
	}{
		{"valid", Action{ID: "idle", Cost: 0}, nil},
		{"empty id", Action{Cost: 1}, ErrEmptyActionID},
		{"negative cost", Action{ID: "x", Cost: -1}, ErrInvalidCost},
		{"nan cost", Action{ID: "x", Cost: math.NaN()}, ErrInvalidCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.a.Validate()
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

func TestAction_Clone(t *testing.T) {
	a := Action{
		ID:            "pickup_weapon",
		Cost:          1,
		Preconditions: world.Facts{"weapon_nearby": world.Bool(true)},
		Effects:       world.Facts{"has_weapon": world.Bool(true)},
	}

	c := a.Clone()
	c.Effects["has_weapon"] = world.Bool(false)
	c.Cost = 99

	if !a.Effects["has_weapon"].Equal(world.Bool(true)) {
		t.Error("mutating a clone's effects changed the original")
	}
	if a.Cost != 1 {
		t.Errorf("original cost = %v, want 1", a.Cost)
	}
}
