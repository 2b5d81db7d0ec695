package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgjson/pkg/errors"
	"github.com/matzehuels/pkgjson/pkg/fsys"
	"github.com/matzehuels/pkgjson/pkg/packagejson"
)

// initialVersion is the version written by init.
const initialVersion = "1.0.0"

// initCommand creates the init command.
func (c *CLI) initCommand() *cobra.Command {
	var (
		name  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a package.json",
		Long: `Create a package.json in --dir (default: the working directory) with a name,
version 1.0.0, and the default main and type. The name defaults to the
directory name. An existing file is only replaced with --force.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := c.dir
			if dir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return errors.Wrap(errors.ErrCodeIO, err, "working directory")
				}
				dir = wd
			}
			dir, err := filepath.Abs(dir)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "directory %s", dir)
			}

			path := filepath.Join(dir, packagejson.Filename)
			if c.file != "" {
				path = c.file
			}
			if fsys.IsFile(c.FS, path) && !force {
				return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to replace it)", path)
			}

			if name == "" {
				name = filepath.Base(dir)
			}
			d := packagejson.New()
			d.Name = name
			d.Version = initialVersion

			m, err := c.newManager()
			if err != nil {
				return err
			}
			m.SetDescriptor(d)
			if err := m.WriteTo(path); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printSuccess(out, "Created %s", StyleHighlight.Render(name))
			printFile(out, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "package name (default: directory name)")
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing package.json")

	return cmd
}
