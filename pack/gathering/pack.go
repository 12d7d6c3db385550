// Package gathering provides a bundled resource gathering domain.
//
// The pack models tool-gated resource chains: fetch the right tool,
// travel to the site, and extract wood or ore.
package gathering

import (
	"github.com/ruvnet/arcadia-goap/domain/action"
	"github.com/ruvnet/arcadia-goap/domain/goal"
	"github.com/ruvnet/arcadia-goap/pack"
)

// New creates the gathering pack.
func New() *pack.Pack {
	return pack.NewBuilder("gathering").
		WithDescription("Tool-gated wood and ore extraction chains").
		WithVersion("1.0.0").
		AddActions(
			action.NewBuilder("grab_axe").
				WithCost(1).
				WithPrecondition("axe_available", true).
				WithEffect("has_axe", true).
				MustBuild(),
			action.NewBuilder("grab_pickaxe").
				WithCost(1).
				WithPrecondition("pickaxe_available", true).
				WithEffect("has_pickaxe", true).
				MustBuild(),
			action.NewBuilder("walk_to_forest").
				WithCost(2).
				WithEffect("at_forest", true).
				WithEffect("at_mine", false).
				MustBuild(),
			action.NewBuilder("walk_to_mine").
				WithCost(2).
				WithEffect("at_mine", true).
				WithEffect("at_forest", false).
				MustBuild(),
			action.NewBuilder("chop_tree").
				WithCost(3).
				WithPrecondition("has_axe", true).
				WithPrecondition("at_forest", true).
				WithEffect("has_wood", true).
				MustBuild(),
			action.NewBuilder("mine_ore").
				WithCost(4).
				WithPrecondition("has_pickaxe", true).
				WithPrecondition("at_mine", true).
				WithEffect("has_ore", true).
				MustBuild(),
		).
		AddGoals(
			goal.NewBuilder("stockpile_wood").
				WithPriority(0.8).
				WithCondition("has_wood", true).
				MustBuild(),
			goal.NewBuilder("stockpile_ore").
				WithPriority(0.5).
				WithCondition("has_ore", true).
				MustBuild(),
		).
		Build()
}
