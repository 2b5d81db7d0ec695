package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgjson/pkg/errors"
	"github.com/matzehuels/pkgjson/pkg/packagejson"
)

// locateCommand creates the locate command.
func (c *CLI) locateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "locate [dir]",
		Short: "Print the path of the closest package.json",
		Long: `Search dir (default: --dir or the working directory) and each of its parents
for a package.json and print the first one found. Siblings and subdirectories
are never searched. Exits with status 1 when the file-system root is reached
without a match.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				c.dir = args[0]
			}
			m, err := c.newManager()
			if err != nil {
				return err
			}

			var path string
			var ok bool
			if c.dir != "" {
				path, ok = m.LocateFrom(c.dir)
			} else {
				path, ok = m.Locate()
			}
			if !ok {
				printWarning(cmd.ErrOrStderr(), "No %s found in %s or any parent directory", packagejson.Filename, c.searchStart())
				return errors.New(errors.ErrCodeNotFound, "%s not found", packagejson.Filename)
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
