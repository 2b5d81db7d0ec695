// Package cli implements the pkgjson command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgjson/pkg/buildinfo"
	"github.com/matzehuels/pkgjson/pkg/errors"
	"github.com/matzehuels/pkgjson/pkg/fsys"
	"github.com/matzehuels/pkgjson/pkg/manager"
	"github.com/matzehuels/pkgjson/pkg/packagejson"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "pkgjson"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// FS is the file system documents are located in, read from and
	// written to.
	FS billy.Basic

	config     Config
	configPath string
	dir        string
	file       string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		FS:     fsys.Default,
		config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "pkgjson reads and edits package.json files",
		Long: `pkgjson locates the package.json closest to a directory, prints it, and edits it
without losing fields it does not know about.`,
		Version:       buildinfo.Resolved(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/pkgjson/config.toml)")
	flags.StringVarP(&c.dir, "dir", "C", "", "directory to search upward from (default: working directory)")
	flags.StringVarP(&c.file, "file", "f", "", "use this package.json instead of searching")

	root.AddCommand(c.locateCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.getCommand())
	root.AddCommand(c.setCommand())
	root.AddCommand(c.unsetCommand())
	root.AddCommand(c.fmtCommand())
	root.AddCommand(c.depsCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.initCommand())
	root.AddCommand(c.schemaCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Manager Factory
// =============================================================================

// newManager creates a manager configured from the loaded config.
func (c *CLI) newManager(opts ...manager.Option) (*manager.Manager, error) {
	writeOpts, err := c.config.writeOptions()
	if err != nil {
		return nil, err
	}
	base := []manager.Option{
		manager.WithFilesystem(c.FS),
		manager.WithWriteOptions(writeOpts),
		manager.WithLogger(c.Logger),
	}
	return manager.New(append(base, opts...)...), nil
}

// locateManager returns a manager pointed at --file, or at the package.json
// closest to --dir (or the working directory).
func (c *CLI) locateManager(opts ...manager.Option) (*manager.Manager, error) {
	m, err := c.newManager(opts...)
	if err != nil {
		return nil, err
	}
	if c.file != "" {
		m.SetPath(c.file)
		return m, nil
	}

	var ok bool
	if c.dir != "" {
		_, ok = m.LocateFrom(c.dir)
	} else {
		_, ok = m.Locate()
	}
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "no %s found in %s or any parent directory", packagejson.Filename, c.searchStart())
	}
	return m, nil
}

// openDocument locates and reads the document.
func (c *CLI) openDocument(opts ...manager.Option) (*manager.Manager, error) {
	m, err := c.locateManager(opts...)
	if err != nil {
		return nil, err
	}
	if _, err := m.Read(); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *CLI) searchStart() string {
	if c.dir != "" {
		return c.dir
	}
	return "the working directory"
}
