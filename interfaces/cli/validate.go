package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	api "github.com/ruvnet/arcadia-goap/interfaces/api"
)

// validateOptions holds options for the validate command.
type validateOptions struct {
	configPath string
	strict     bool
	showSchema bool
}

// newValidateCmd creates the validate command.
func (a *App) newValidateCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a domain configuration file",
		Long: `Validate a planning domain configuration file for correctness.

This command checks:
  - File format (YAML or JSON)
  - Required fields (name, version)
  - Field types and constraints
  - Action costs, goal priorities, and fact value kinds
  - Environment variable references (in strict mode)

Examples:
  # Validate a domain file
  goap validate -c domain.yaml

  # Strict validation (fail on missing env vars)
  goap validate -c domain.yaml --strict

  # Show the JSON schema for configuration
  goap validate --schema`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showSchema {
				return a.showConfigSchema()
			}
			return a.validateConfig(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Enable strict validation (fail on missing env vars)")
	cmd.Flags().BoolVar(&opts.showSchema, "schema", false, "Show JSON schema for configuration")

	return cmd
}

// validateConfig validates the configuration file.
func (a *App) validateConfig(ctx context.Context, opts *validateOptions) error {
	if opts.configPath == "" {
		return fmt.Errorf("configuration file path is required (-c flag)")
	}

	// Create loader with appropriate options
	loaderOpts := []api.ConfigLoaderOption{
		api.ConfigWithValidation(true),
	}
	if opts.strict {
		loaderOpts = append(loaderOpts, api.ConfigWithStrictEnv(true))
	}

	loader := api.NewConfigLoaderWithOptions(loaderOpts...)
	config, err := loader.LoadFile(opts.configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	// Additional validation via the builder. The built storage backends
	// are released right away; this run only wants the conversion errors.
	result, err := api.NewConfigBuilder(config).Build(ctx)
	if err != nil {
		return fmt.Errorf("configuration build failed: %w", err)
	}
	defer func() { _ = result.Close() }()

	fmt.Fprintf(a.stdout, "✓ Configuration is valid\n")
	fmt.Fprintf(a.stdout, "  Name: %s\n", config.Name)
	fmt.Fprintf(a.stdout, "  Version: %s\n", config.Version)
	if config.Description != "" {
		fmt.Fprintf(a.stdout, "  Description: %s\n", config.Description)
	}

	// Summary
	fmt.Fprintf(a.stdout, "\nDomain summary:\n")
	fmt.Fprintf(a.stdout, "  Actions: %d\n", len(result.Actions))
	for _, act := range result.Actions {
		fmt.Fprintf(a.stdout, "    - %s (cost %g)\n", act.ID, act.Cost)
	}
	fmt.Fprintf(a.stdout, "  Goals: %d\n", len(result.Goals))
	for _, g := range result.Goals {
		fmt.Fprintf(a.stdout, "    - %s (priority %g)\n", g.ID, g.Priority)
	}
	fmt.Fprintf(a.stdout, "  Initial facts: %d\n", result.InitialState.Len())

	fmt.Fprintf(a.stdout, "\nEngine settings:\n")
	fmt.Fprintf(a.stdout, "  Max iterations: %d\n", result.MaxIterations)
	if result.Heuristic != "" {
		fmt.Fprintf(a.stdout, "  Heuristic: %s\n", result.Heuristic)
	}
	fmt.Fprintf(a.stdout, "  Max replans: %d\n", result.MaxReplans)
	if result.StepTimeout > 0 {
		fmt.Fprintf(a.stdout, "  Step timeout: %s\n", result.StepTimeout)
	}

	if len(result.Budgets) > 0 {
		fmt.Fprintf(a.stdout, "  Budgets:\n")
		for name, limit := range result.Budgets {
			fmt.Fprintf(a.stdout, "    - %s: %d\n", name, limit)
		}
	}

	if config.Storage.Archive.Backend != "" {
		fmt.Fprintf(a.stdout, "  Plan archive: %s\n", config.Storage.Archive.Backend)
	}
	if config.Storage.Cache.Backend != "" {
		fmt.Fprintf(a.stdout, "  Plan cache: %s\n", config.Storage.Cache.Backend)
	}
	if config.Storage.Events.Backend != "" {
		fmt.Fprintf(a.stdout, "  Event journal: %s\n", config.Storage.Events.Backend)
	}

	return nil
}

// showConfigSchema displays the JSON schema for configuration.
func (a *App) showConfigSchema() error {
	schemaJSON, err := api.ConfigSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	fmt.Fprintln(a.stdout, schemaJSON)
	return nil
}
