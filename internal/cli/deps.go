package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgjson/pkg/packagejson"
)

// depsCommand creates the deps command.
func (c *CLI) depsCommand() *cobra.Command {
	var groups []string

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "List declared dependencies",
		Long: `List the direct dependencies declared in the located package.json, grouped by
dependencies, devDependencies, peerDependencies and optionalDependencies.`,
		Example: `  pkgjson deps
  pkgjson deps -g dev -g peer`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var selected []packagejson.DependencyGroup
			for _, s := range groups {
				g, err := packagejson.ParseDependencyGroup(s)
				if err != nil {
					return err
				}
				selected = append(selected, g)
			}

			m, err := c.openDocument()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			deps := m.Descriptor().DependencyList(selected...)
			if len(deps) == 0 {
				printInfo(out, "No dependencies")
				return nil
			}

			var current packagejson.DependencyGroup
			for _, dep := range deps {
				if dep.Group != current {
					current = dep.Group
					printInfo(out, "%s", StyleHighlight.Render(string(current)))
				}
				fmt.Fprintln(out, "  "+StyleValue.Render(dep.Name)+" "+StyleDim.Render(dep.Range))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&groups, "group", "g", nil, "only list these groups: prod, dev, peer, optional")

	return cmd
}
