// Package main demonstrates the full plan-act-replan cycle: handlers do
// the work, the world diverges mid-run, and the executor replans and
// finishes anyway. The run ledger and budget are printed at the end.
package main

import (
	"context"
	"fmt"
	"log"

	goap "github.com/ruvnet/arcadia-goap/interfaces/api"
	"github.com/ruvnet/arcadia-goap/pack/combat"
)

func main() {
	ctx := context.Background()

	engine, err := goap.New(
		goap.WithPack(combat.New()),
		goap.WithAgentID("hunter-7"),
		goap.WithInitialFacts(goap.Facts{"weapon_nearby": goap.Bool(true)}),
		goap.WithBudget(goap.ResourceSteps, 10),
		goap.WithBudget(goap.ResourceReplans, 3),
	)
	if err != nil {
		log.Fatal(err)
	}

	engine.OnAction("pickup_weapon", func(ctx context.Context, a goap.Action) error {
		fmt.Printf("  [act] %s\n", a.ID)
		return nil
	})

	// Closing the distance costs the agent its grip: the weapon lands
	// back on the ground, and the attack it planned no longer applies.
	// The executor notices before the attack fires and replans.
	engine.OnAction("approach_enemy", func(ctx context.Context, a goap.Action) error {
		fmt.Printf("  [act] %s (and fumbles the weapon!)\n", a.ID)
		engine.ApplyFacts(goap.Facts{
			"has_weapon":    goap.Bool(false),
			"weapon_nearby": goap.Bool(true),
		})
		return nil
	})

	engine.OnAction("attack", func(ctx context.Context, a goap.Action) error {
		fmt.Printf("  [act] %s\n", a.ID)
		return nil
	})

	fmt.Println("=== Replanning Example ===")

	exec, err := engine.NewExecutor()
	if err != nil {
		log.Fatal(err)
	}

	run, err := exec.Run(ctx)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("\nRun %s finished\n", run.ID)
	fmt.Printf("  Status: %s (phase %s)\n", run.Status, run.Phase)
	fmt.Printf("  Steps: %d, replans: %d, total cost: %g\n",
		run.StepsExecuted, run.ReplanCount, run.TotalCost)

	snapshot := exec.Budget().Snapshot()
	fmt.Printf("  Steps budget: %d/%d consumed\n",
		snapshot.Consumed[goap.ResourceSteps], snapshot.Limits[goap.ResourceSteps])

	fmt.Printf("\nLedger:\n")
	for _, entry := range exec.Ledger().Entries() {
		fmt.Printf("  %-17s %s\n", entry.Type, entry.Phase)
	}

	fmt.Printf("\nFinal world: %s\n", engine.WorldState())
}
