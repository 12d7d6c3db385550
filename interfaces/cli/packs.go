package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ruvnet/arcadia-goap/domain/world"
	"github.com/ruvnet/arcadia-goap/pack"
	"github.com/ruvnet/arcadia-goap/pack/combat"
	"github.com/ruvnet/arcadia-goap/pack/gathering"
	"github.com/ruvnet/arcadia-goap/pack/survival"
)

// packsOptions holds options for the packs command.
type packsOptions struct {
	verbose bool
}

// bundledPacks returns the packs shipped with the engine.
func bundledPacks() []*pack.Pack {
	return []*pack.Pack{
		combat.New(),
		survival.New(),
		gathering.New(),
	}
}

// newPacksCmd creates the packs command.
func (a *App) newPacksCmd() *cobra.Command {
	opts := &packsOptions{}

	cmd := &cobra.Command{
		Use:   "packs",
		Short: "List bundled action packs",
		Long: `List the action and goal packs bundled with the engine.

Packs are reusable planning domain fragments. They install into an engine
with the WithPack option and double as ready-made domains for trying out
the plan and simulate commands.

Examples:
  # List bundled packs
  goap packs

  # Show every action and goal with its facts
  goap packs -v`,
		Run: func(cmd *cobra.Command, args []string) {
			a.listPacks(opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show detailed information")

	return cmd
}

// listPacks prints the bundled packs.
func (a *App) listPacks(opts *packsOptions) {
	packs := bundledPacks()
	fmt.Fprintf(a.stdout, "Bundled packs (%d):\n", len(packs))

	for _, p := range packs {
		fmt.Fprintf(a.stdout, "\n  %s (v%s): %d actions, %d goals\n",
			p.Name, p.Version, len(p.Actions), len(p.Goals))
		if p.Description != "" {
			fmt.Fprintf(a.stdout, "    %s\n", p.Description)
		}

		if !opts.verbose {
			continue
		}

		fmt.Fprintf(a.stdout, "    Actions:\n")
		for _, act := range p.Actions {
			fmt.Fprintf(a.stdout, "      %s (cost %g)\n", act.ID, act.Cost)
			if len(act.Preconditions) > 0 {
				fmt.Fprintf(a.stdout, "        requires: %s\n", formatFacts(act.Preconditions))
			}
			fmt.Fprintf(a.stdout, "        effects:  %s\n", formatFacts(act.Effects))
		}

		fmt.Fprintf(a.stdout, "    Goals:\n")
		for _, g := range p.Goals {
			fmt.Fprintf(a.stdout, "      %s (priority %g)\n", g.ID, g.Priority)
			fmt.Fprintf(a.stdout, "        wants: %s\n", formatFacts(g.Conditions))
		}
	}
}

// formatFacts renders a fact set as "k=v, k=v" in key order.
func formatFacts(f world.Facts) string {
	parts := make([]string, 0, len(f))
	for _, k := range f.Keys() {
		parts = append(parts, fmt.Sprintf("%s=%v", k, f[k].Interface()))
	}
	return strings.Join(parts, ", ")
}
