// Package survival provides a bundled survival planning domain.
//
// The pack models hunger and exposure pressure: secure food, eat, and
// get a shelter and fire up before the elements win.
package survival

import (
	"github.com/ruvnet/arcadia-goap/domain/action"
	"github.com/ruvnet/arcadia-goap/domain/goal"
	"github.com/ruvnet/arcadia-goap/pack"
)

// New creates the survival pack.
func New() *pack.Pack {
	return pack.NewBuilder("survival").
		WithDescription("Hunger and shelter pressure with foraging, hunting, and camp building").
		WithVersion("1.0.0").
		AddActions(
			action.NewBuilder("forage_berries").
				WithCost(2).
				WithPrecondition("at_forest", true).
				WithEffect("has_food", true).
				MustBuild(),
			action.NewBuilder("hunt_game").
				WithCost(4).
				WithPrecondition("has_weapon", true).
				WithEffect("has_food", true).
				MustBuild(),
			action.NewBuilder("eat").
				WithCost(1).
				WithPrecondition("has_food", true).
				WithEffect("fed", true).
				WithEffect("has_food", false).
				MustBuild(),
			action.NewBuilder("build_shelter").
				WithCost(5).
				WithPrecondition("has_wood", true).
				WithEffect("sheltered", true).
				MustBuild(),
			action.NewBuilder("light_fire").
				WithCost(2).
				WithPrecondition("has_wood", true).
				WithPrecondition("sheltered", true).
				WithEffect("warm", true).
				MustBuild(),
		).
		AddGoals(
			goal.NewBuilder("stay_fed").
				WithPriority(0.8).
				WithCondition("fed", true).
				MustBuild(),
			goal.NewBuilder("settle_camp").
				WithPriority(0.6).
				WithCondition("sheltered", true).
				WithCondition("warm", true).
				MustBuild(),
		).
		Build()
}
