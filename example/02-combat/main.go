// Package main demonstrates goal priorities and cost adaptation using the
// bundled combat pack: the engine picks the most urgent goal, reacts to
// world changes, and reroutes when action costs shift.
package main

import (
	"context"
	"fmt"
	"log"

	goap "github.com/ruvnet/arcadia-goap/interfaces/api"
	"github.com/ruvnet/arcadia-goap/pack/combat"
)

func printPlan(label string, p *goap.Plan) {
	fmt.Printf("%s: ", label)
	if p == nil {
		fmt.Println("no plan")
		return
	}
	for i, step := range p.Steps {
		if i > 0 {
			fmt.Print(" -> ")
		}
		fmt.Print(step.ActionID)
	}
	fmt.Printf(" (goal %s, cost %g)\n", p.GoalID, p.TotalCost)
}

func main() {
	ctx := context.Background()

	// The agent starts armed-adjacent and already in range, with cover
	// close by.
	engine, err := goap.New(
		goap.WithPack(combat.New()),
		goap.WithInitialFacts(goap.Facts{
			"weapon_nearby": goap.Bool(true),
			"cover_nearby":  goap.Bool(true),
			"in_range":      goap.Bool(true),
		}),
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("=== Combat Pack Example ===")

	// 1. kill_enemy (priority 0.9) outranks reach_safety (0.7), and with
	// the enemy already in range the approach step drops out.
	p, _, err := engine.PlanBest(ctx)
	if err != nil {
		log.Fatal(err)
	}
	printPlan("Most urgent goal", p)

	// 2. The world changes: another hunter got the kill. The next most
	// urgent goal takes over.
	engine.ApplyFacts(goap.Facts{"enemy_dead": goap.Bool(true)})
	p, _, err = engine.PlanBest(ctx)
	if err != nil {
		log.Fatal(err)
	}
	printPlan("After the enemy fell", p)

	// 3. Costs adapt: the nearby cover turns out to be exposed, so hiding
	// there gets expensive and retreating wins instead.
	if err := engine.SetActionCost("take_cover", 5); err != nil {
		log.Fatal(err)
	}
	p, _, err = engine.PlanBest(ctx)
	if err != nil {
		log.Fatal(err)
	}
	printPlan("With cover compromised", p)
}
