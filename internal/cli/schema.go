package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgjson/pkg/json"
	"github.com/matzehuels/pkgjson/pkg/packagejson"
)

// schemaCommand creates the schema command.
func (c *CLI) schemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of package.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := json.MarshalIndent(packagejson.Schema(), "", "  ")
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(out, '\n'))
			return err
		},
	}
}
