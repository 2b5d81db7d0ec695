package cli

import (
	"bytes"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgjson/pkg/errors"
	"github.com/matzehuels/pkgjson/pkg/fsys"
	"github.com/matzehuels/pkgjson/pkg/manager"
	"github.com/matzehuels/pkgjson/pkg/packagejson"
)

// fmtCommand creates the fmt command.
func (c *CLI) fmtCommand() *cobra.Command {
	var (
		compact bool
		check   bool
	)

	cmd := &cobra.Command{
		Use:   "fmt",
		Short: "Rewrite package.json in canonical layout",
		Long: `Rewrite the located package.json with known fields in canonical order, other
fields after them in file order, and consistent indentation. Fields pkgjson
does not know are kept as they are. Inside the records of bugs, people,
funding, repository and directories only the known keys are kept, and empty
strings there are dropped.

With --check nothing is written and the command exits with status 1 when the
file is not already formatted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []manager.Option
			if compact {
				writeOpts, err := c.config.writeOptions()
				if err != nil {
					return err
				}
				writeOpts.Format = packagejson.Compact
				opts = append(opts, manager.WithWriteOptions(writeOpts))
			}

			m, err := c.openDocument(opts...)
			if err != nil {
				return err
			}
			path, _ := m.Path()

			current, err := fsys.ReadFile(c.FS, path)
			if err != nil {
				return errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
			}
			formatted, err := m.Encode()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if bytes.Equal(current, formatted) {
				printInfo(out, "Already formatted")
				printFile(out, path)
				return nil
			}
			if check {
				printWarning(out, "Not formatted")
				printFile(out, path)
				printDetail(out, "run %s fmt to rewrite it", appName)
				return errors.New(errors.ErrCodeInvalidInput, "%s is not formatted", path)
			}

			if err := m.Write(); err != nil {
				return err
			}
			printSuccess(out, "Formatted")
			printFile(out, path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&compact, "compact", false, "write JSON on a single line")
	cmd.Flags().BoolVar(&check, "check", false, "report whether the file is formatted without writing")

	return cmd
}
