package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	api "github.com/ruvnet/arcadia-goap/interfaces/api"
)

// planOptions holds options for the plan command.
type planOptions struct {
	configPath    string
	goalID        string
	stateVars     map[string]string
	maxIterations int
	jsonOutput    bool
}

// newPlanCmd creates the plan command.
func (a *App) newPlanCmd() *cobra.Command {
	opts := &planOptions{
		stateVars: make(map[string]string),
	}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute a plan for a goal",
		Long: `Compute a single plan from a domain configuration file.

Without --goal the engine selects the highest-priority unsatisfied goal.
World facts from the configuration can be overridden on the command line;
values parse as integer, float, or bool before falling back to string.

Examples:
  # Plan for the best pending goal
  goap plan -c domain.yaml

  # Plan for a specific goal
  goap plan -c domain.yaml --goal kill_enemy

  # Override world facts for this run
  goap plan -c domain.yaml --state weapon_nearby=true --state health=40

  # Machine-readable output
  goap plan -c domain.yaml --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlan(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file (required)")
	cmd.Flags().StringVar(&opts.goalID, "goal", "", "Goal ID to plan for (default: best pending goal)")
	cmd.Flags().StringToStringVar(&opts.stateVars, "state", nil, "Override world facts (key=value)")
	cmd.Flags().IntVar(&opts.maxIterations, "max-iterations", 0, "Search iteration cap (overrides config)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output results as JSON")

	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// runPlan computes one plan and prints it.
func (a *App) runPlan(ctx context.Context, opts *planOptions) error {
	loader := api.NewConfigLoader()
	config, err := loader.LoadFile(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override config values with CLI options
	if opts.maxIterations > 0 {
		config.Planner.MaxIterations = opts.maxIterations
	}

	var engineOpts []api.Option
	if len(opts.stateVars) > 0 {
		facts := make(api.Facts, len(opts.stateVars))
		for k, v := range opts.stateVars {
			facts[k] = parseFactValue(v)
		}
		engineOpts = append(engineOpts, api.WithInitialFacts(facts))
	}

	engine, err := api.NewFromConfig(ctx, config, engineOpts...)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	defer func() { _ = engine.Close() }()

	var (
		p    *api.Plan
		diag api.Diagnostics
	)
	if opts.goalID != "" {
		p, diag, err = engine.Plan(ctx, opts.goalID)
	} else {
		p, diag, err = engine.PlanBest(ctx)
	}
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}

	if opts.jsonOutput {
		output := map[string]any{
			"outcome":     diag.Outcome,
			"diagnostics": diag,
		}
		if p != nil {
			output["plan"] = p
		}
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(output)
	}

	return a.printPlanResult(p, diag)
}

// printPlanResult renders a planning result as text.
func (a *App) printPlanResult(p *api.Plan, diag api.Diagnostics) error {
	switch diag.Outcome {
	case api.OutcomePlanFound:
		fmt.Fprintf(a.stdout, "Goal: %s\n", p.GoalID)
		fmt.Fprintf(a.stdout, "Plan found (%d steps, cost %g):\n", len(p.Steps), p.TotalCost)
		for i, step := range p.Steps {
			fmt.Fprintf(a.stdout, "  %d. %s (cost %g)\n", i+1, step.ActionID, step.Cost)
		}
		fmt.Fprintf(a.stdout, "\nSearch: %d iterations, %d nodes expanded, %s\n",
			diag.Iterations, diag.NodesExpanded, diag.Duration)
		if diag.Cached {
			fmt.Fprintf(a.stdout, "Served from plan cache.\n")
		}
		return nil

	case api.OutcomeNoPendingGoal:
		fmt.Fprintf(a.stdout, "Nothing to do: every goal is already satisfied.\n")
		return nil

	case api.OutcomeBudgetExceeded:
		return fmt.Errorf("search hit the iteration cap after %d iterations (goal %s)",
			diag.Iterations, diag.GoalID)

	default:
		return fmt.Errorf("no plan reaches goal %s (%d iterations, %d nodes expanded)",
			diag.GoalID, diag.Iterations, diag.NodesExpanded)
	}
}

// parseFactValue converts a command line value into a typed world fact.
// Numbers are tried before bools so "1" stays an integer; everything
// unrecognized stays a string.
func parseFactValue(s string) api.Value {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return api.Int(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return api.Float(f)
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return api.Bool(b)
	}
	return api.String(s)
}
