// Package combat provides a bundled combat planning domain.
//
// The pack covers the classic engage-or-disengage loop: arm yourself,
// close the distance, attack, and fall back to safety when needed.
package combat

import (
	"github.com/ruvnet/arcadia-goap/domain/action"
	"github.com/ruvnet/arcadia-goap/domain/goal"
	"github.com/ruvnet/arcadia-goap/pack"
)

// New creates the combat pack.
func New() *pack.Pack {
	return pack.NewBuilder("combat").
		WithDescription("Arm, approach, and attack chains with a retreat escape hatch").
		WithVersion("1.0.0").
		AddActions(
			action.NewBuilder("pickup_weapon").
				WithCost(1).
				WithPrecondition("weapon_nearby", true).
				WithEffect("has_weapon", true).
				WithEffect("weapon_nearby", false).
				MustBuild(),
			action.NewBuilder("approach_enemy").
				WithCost(2).
				WithPrecondition("has_weapon", true).
				WithEffect("in_range", true).
				MustBuild(),
			action.NewBuilder("attack").
				WithCost(1).
				WithPrecondition("has_weapon", true).
				WithPrecondition("in_range", true).
				WithEffect("enemy_dead", true).
				MustBuild(),
			action.NewBuilder("take_cover").
				WithCost(1).
				WithPrecondition("cover_nearby", true).
				WithEffect("safe", true).
				MustBuild(),
			action.NewBuilder("retreat").
				WithCost(3).
				WithPrecondition("in_range", true).
				WithEffect("in_range", false).
				WithEffect("safe", true).
				MustBuild(),
		).
		AddGoals(
			goal.NewBuilder("kill_enemy").
				WithPriority(0.9).
				WithCondition("enemy_dead", true).
				MustBuild(),
			goal.NewBuilder("reach_safety").
				WithPriority(0.7).
				WithCondition("safe", true).
				MustBuild(),
		).
		Build()
}
