package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgjson/pkg/errors"
	"github.com/matzehuels/pkgjson/pkg/packagejson"
)

// Output formats for the show command.
const (
	outputJSON = "json"
	outputYAML = "yaml"
)

// showCommand creates the show command.
func (c *CLI) showCommand() *cobra.Command {
	var (
		output  string
		compact bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the located package.json",
		Long: `Print the located package.json in canonical order: known fields first, then any
other fields in the order they appear in the file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.openDocument()
			if err != nil {
				return err
			}

			var out []byte
			switch output {
			case outputJSON:
				opts, err := c.config.writeOptions()
				if err != nil {
					return err
				}
				if compact {
					opts.Format = packagejson.Compact
				}
				out, err = packagejson.Encode(m.Snapshot(), opts)
				if err != nil {
					return err
				}
				out = append(out, '\n')
			case outputYAML:
				out, err = packagejson.ToYAML(m.Snapshot())
				if err != nil {
					return err
				}
			default:
				return errors.New(errors.ErrCodeInvalidInput, "unknown output %q (want %s or %s)", output, outputJSON, outputYAML)
			}

			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputJSON, "output format: json or yaml")
	cmd.Flags().BoolVar(&compact, "compact", false, "print JSON on a single line")
	_ = cmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions([]string{outputJSON, outputYAML}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}
