package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ruvnet/arcadia-goap/infrastructure/storage/sqlite"
	api "github.com/ruvnet/arcadia-goap/interfaces/api"
)

// simulateOptions holds options for the simulate command.
type simulateOptions struct {
	configPath  string
	maxSteps    int
	archivePath string
	jsonOutput  bool
}

// newSimulateCmd creates the simulate command.
func (a *App) newSimulateCmd() *cobra.Command {
	opts := &simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the plan-act-replan cycle against a domain",
		Long: `Simulate a full executor run over a domain configuration file.

Actions without handlers execute by applying their declared effects, so a
plain domain file simulates end to end: the executor selects the best
pending goal, plans, executes every step, and keeps going until no pending
goal remains or a budget stops it. The run ledger is printed afterwards.

Examples:
  # Simulate a domain
  goap simulate -c domain.yaml

  # Bound the run and archive computed plans to SQLite
  goap simulate -c domain.yaml --steps 20 --archive plans.db

  # Machine-readable report
  goap simulate -c domain.yaml --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSimulation(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file (required)")
	cmd.Flags().IntVar(&opts.maxSteps, "steps", 0, "Maximum executor steps (overrides config)")
	cmd.Flags().StringVar(&opts.archivePath, "archive", "", "Archive computed plans to this SQLite file")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output the report as JSON")

	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// runSimulation executes one full run and prints the report.
func (a *App) runSimulation(ctx context.Context, opts *simulateOptions) error {
	var engineOpts []api.Option
	if opts.maxSteps > 0 {
		engineOpts = append(engineOpts, api.WithMaxSteps(opts.maxSteps))
	}

	if opts.archivePath != "" {
		cfg := sqlite.DefaultConfig()
		cfg.DSN = "file:" + opts.archivePath + "?cache=shared&mode=rwc"
		archive, err := sqlite.NewPlanArchive(cfg)
		if err != nil {
			return fmt.Errorf("failed to open plan archive: %w", err)
		}
		defer func() { _ = archive.Close() }()
		engineOpts = append(engineOpts, api.WithPlanArchive(archive))
	}

	engine, err := api.NewFromConfigFile(ctx, opts.configPath, engineOpts...)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	defer func() { _ = engine.Close() }()

	exec, err := engine.NewExecutor()
	if err != nil {
		return fmt.Errorf("failed to create executor: %w", err)
	}

	result, runErr := exec.Run(ctx)

	if opts.jsonOutput {
		output := map[string]any{
			"run":    result,
			"budget": exec.Budget().Snapshot(),
			"ledger": exec.Ledger().Entries(),
		}
		if runErr != nil {
			output["error"] = runErr.Error()
		}
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(output); err != nil {
			return err
		}
	} else {
		a.printRunReport(result, exec)
	}

	if runErr != nil {
		return fmt.Errorf("simulation failed: %w", runErr)
	}
	return nil
}

// printRunReport renders the run summary and ledger as text.
func (a *App) printRunReport(result *api.Run, exec *api.Executor) {
	fmt.Fprintf(a.stdout, "Run %s\n", result.ID)
	fmt.Fprintf(a.stdout, "  Agent: %s\n", result.AgentID)
	fmt.Fprintf(a.stdout, "  Status: %s (phase %s)\n", result.Status, result.Phase)
	if result.GoalID != "" {
		fmt.Fprintf(a.stdout, "  Last goal: %s\n", result.GoalID)
	}
	fmt.Fprintf(a.stdout, "  Steps executed: %d\n", result.StepsExecuted)
	fmt.Fprintf(a.stdout, "  Replans: %d\n", result.ReplanCount)
	fmt.Fprintf(a.stdout, "  Total cost: %g\n", result.TotalCost)
	fmt.Fprintf(a.stdout, "  Duration: %s\n", result.Duration())
	if result.Error != "" {
		fmt.Fprintf(a.stdout, "  Error: %s\n", result.Error)
	}

	snapshot := exec.Budget().Snapshot()
	if len(snapshot.Limits) > 0 {
		fmt.Fprintf(a.stdout, "\nBudgets:\n")
		for name, limit := range snapshot.Limits {
			fmt.Fprintf(a.stdout, "  %s: %d/%d consumed\n", name, snapshot.Consumed[name], limit)
		}
	}

	entries := exec.Ledger().Entries()
	fmt.Fprintf(a.stdout, "\nLedger (%d entries):\n", len(entries))
	for _, entry := range entries {
		fmt.Fprintf(a.stdout, "  %-17s %s", entry.Type, entry.Phase)
		if len(entry.Details) > 0 {
			fmt.Fprintf(a.stdout, "  %s", entry.Details)
		}
		fmt.Fprintf(a.stdout, "\n")
	}
}
