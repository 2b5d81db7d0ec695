package cli

import (
	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgjson/pkg/errors"
	"github.com/matzehuels/pkgjson/pkg/json"
)

// Version bump levels.
const (
	bumpMajor = "major"
	bumpMinor = "minor"
	bumpPatch = "patch"
)

// versionCommand creates the version command.
func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version [major|minor|patch|<version>]",
		Short: "Print or change the package version",
		Long: `Without arguments, print the version field. With major, minor or patch,
increment that part of the semantic version and save. With an explicit
version, validate it and save.`,
		Example: `  pkgjson version
  pkgjson version patch
  pkgjson version 2.0.0-rc.1`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{bumpMajor, bumpMinor, bumpPatch},
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.openDocument()
			if err != nil {
				return err
			}
			d := m.Descriptor()
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				printKeyValue(out, "version", d.Version)
				return nil
			}

			next, err := nextVersion(d.Version, args[0])
			if err != nil {
				return err
			}
			raw, err := json.Marshal(next)
			if err != nil {
				return err
			}
			prev := d.Version
			if err := d.Set("version", raw); err != nil {
				return err
			}
			if err := m.Write(); err != nil {
				return err
			}

			path, _ := m.Path()
			printChange(out, "version", prev, next)
			printFile(out, path)
			return nil
		},
	}
}

// nextVersion applies a bump level or an explicit version to current.
func nextVersion(current, arg string) (string, error) {
	switch arg {
	case bumpMajor, bumpMinor, bumpPatch:
		v, err := semver.NewVersion(current)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "current version %q is not semantic", current)
		}
		var next semver.Version
		switch arg {
		case bumpMajor:
			next = v.IncMajor()
		case bumpMinor:
			next = v.IncMinor()
		default:
			next = v.IncPatch()
		}
		return next.String(), nil
	default:
		v, err := semver.StrictNewVersion(arg)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid version %q", arg)
		}
		return v.String(), nil
	}
}
