// Package main demonstrates the absolute minimum working planner.
// This is the simplest possible arcadia-goap example.
package main

import (
	"context"
	"fmt"
	"log"

	goap "github.com/ruvnet/arcadia-goap/interfaces/api"
)

func main() {
	// 1. Declare actions: what the agent can do, what each move needs,
	// and what it changes.
	grabKey := goap.NewActionBuilder("grab_key").
		WithCost(1).
		WithPrecondition("key_on_table", true).
		WithEffect("has_key", true).
		MustBuild()

	unlockDoor := goap.NewActionBuilder("unlock_door").
		WithCost(1).
		WithPrecondition("has_key", true).
		WithEffect("door_locked", false).
		MustBuild()

	openDoor := goap.NewActionBuilder("open_door").
		WithCost(1).
		WithPrecondition("door_locked", false).
		WithEffect("door_open", true).
		MustBuild()

	// 2. Declare the goal: the world condition the agent wants.
	enterRoom := goap.NewGoalBuilder("enter_room").
		WithPriority(1.0).
		WithCondition("door_open", true).
		MustBuild()

	// 3. Build the engine with the starting world.
	engine, err := goap.New(
		goap.WithActions(grabKey, unlockDoor, openDoor),
		goap.WithGoals(enterRoom),
		goap.WithInitialFacts(goap.Facts{
			"key_on_table": goap.Bool(true),
			"door_locked":  goap.Bool(true),
		}),
	)
	if err != nil {
		log.Fatal(err)
	}

	// 4. Plan.
	plan, diag, err := engine.Plan(context.Background(), "enter_room")
	if err != nil {
		log.Fatal(err)
	}
	if plan == nil {
		log.Fatalf("no plan: %s", diag.Outcome)
	}

	// 5. Inspect the result.
	fmt.Println("=== Minimal Planner Example ===")
	fmt.Printf("Goal: %s\n", plan.GoalID)
	for i, step := range plan.Steps {
		fmt.Printf("  %d. %s (cost %g)\n", i+1, step.ActionID, step.Cost)
	}
	fmt.Printf("Total cost: %g\n", plan.TotalCost)
	fmt.Printf("Search: %d iterations in %s\n", diag.Iterations, diag.Duration)
}
