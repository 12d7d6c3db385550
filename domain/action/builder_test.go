package action

import (
	"errors"
	"testing"

	"github.com/ruvnet/arcadia-goap/domain/world"
)

func TestBuilder_Build(t *testing.T) {
	a, err := NewBuilder("pickup_weapon").
		WithCost(2).
		WithPrecondition("weapon_nearby", true).
		WithEffect("has_weapon", true).
		WithEffect("weapon_nearby", false).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if a.ID != "pickup_weapon" {
		t.Errorf("ID = %q, want pickup_weapon", a.ID)
	}
	if a.Cost != 2 {
		t.Errorf("Cost = %v, want 2", a.Cost)
	}
	if got := a.Preconditions["weapon_nearby"]; !got.Equal(world.Bool(true)) {
		t.Errorf("precondition weapon_nearby = %v, want true", got)
	}
	if got := a.Effects["has_weapon"]; !got.Equal(world.Bool(true)) {
		t.Errorf("effect has_weapon = %v, want true", got)
	}
	if got := a.Effects["weapon_nearby"]; !got.Equal(world.Bool(false)) {
		t.Errorf("effect weapon_nearby = %v, want false", got)
	}
}

func TestBuilder_DefaultCost(t *testing.T) {
	a, err := NewBuilder("wait").Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if a.Cost != 1 {
		t.Errorf("Cost = %v, want 1", a.Cost)
	}
}

func TestBuilder_ScalarKinds(t *testing.T) {
	a, err := NewBuilder("gather").
		WithPrecondition("location", "forest").
		WithEffect("wood", 5).
		WithEffect("energy", 0.5).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := a.Preconditions["location"]; !got.Equal(world.String("forest")) {
		t.Errorf("location = %v, want forest", got)
	}
	if got := a.Effects["wood"]; !got.Equal(world.Int(5)) {
		t.Errorf("wood = %v, want 5", got)
	}
	if got := a.Effects["energy"]; !got.Equal(world.Float(0.5)) {
		t.Errorf("energy = %v, want 0.5", got)
	}
}

func TestBuilder_UnsupportedValue(t *testing.T) {
	_, err := NewBuilder("bad").
		WithPrecondition("targets", []string{"a", "b"}).
		Build()
	if err == nil {
		t.Fatal("Build() expected error for unsupported value")
	}
}

func TestBuilder_ErrorLatches(t *testing.T) {
	// After the first bad value, later calls must not mask the error.
	_, err := NewBuilder("bad").
		WithPrecondition("targets", []string{"a"}).
		WithEffect("done", true).
		WithCost(3).
		Build()
	if err == nil {
		t.Fatal("Build() expected latched error")
	}
}

func TestBuilder_InvalidDefinition(t *testing.T) {
	if _, err := NewBuilder("").Build(); !errors.Is(err, ErrEmptyActionID) {
		t.Errorf("Build() error = %v, want ErrEmptyActionID", err)
	}
	if _, err := NewBuilder("x").WithCost(-1).Build(); !errors.Is(err, ErrInvalidCost) {
		t.Errorf("Build() error = %v, want ErrInvalidCost", err)
	}
}

func TestBuilder_MustBuildPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustBuild() expected panic")
		}
	}()
	NewBuilder("").MustBuild()
}

func TestBuilder_BuildClones(t *testing.T) {
	b := NewBuilder("move").WithEffect("position", "door")
	a1 := b.MustBuild()
	a2 := b.WithEffect("position", "hall").MustBuild()

	if got := a1.Effects["position"]; !got.Equal(world.String("door")) {
		t.Errorf("first build mutated: position = %v, want door", got)
	}
	if got := a2.Effects["position"]; !got.Equal(world.String("hall")) {
		t.Errorf("second build position = %v, want hall", got)
	}
}
