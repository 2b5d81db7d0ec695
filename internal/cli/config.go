package cli

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pkgjson/pkg/errors"
	"github.com/matzehuels/pkgjson/pkg/packagejson"
)

// configFileName is the name of the config file inside configDir.
const configFileName = "config.toml"

// Config holds user preferences read from config.toml. Command-line flags
// take precedence over every field.
//
//	format = "pretty"   # or "compact"
//	indent = "  "
//	verbose = false
type Config struct {
	Format  string `toml:"format"`
	Indent  string `toml:"indent"`
	Verbose bool   `toml:"verbose"`
}

func defaultConfig() Config {
	return Config{
		Format: packagejson.Pretty.String(),
		Indent: packagejson.DefaultIndent,
	}
}

// writeOptions converts the config to the layout used when writing.
func (cfg Config) writeOptions() (packagejson.WriteOptions, error) {
	format, err := packagejson.ParseFormat(cfg.Format)
	if err != nil {
		return packagejson.WriteOptions{}, err
	}
	return packagejson.WriteOptions{Format: format, Indent: cfg.Indent}, nil
}

// configDir returns the config directory using XDG standard (~/.config/pkgjson/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// readConfig decodes the TOML file at path over the defaults. A missing file
// yields the defaults. Unknown keys are returned so callers can warn.
func readConfig(path string) (Config, []string, error) {
	cfg := defaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if stderrors.Is(err, fs.ErrNotExist) {
		return defaultConfig(), nil, nil
	}
	if err != nil {
		return defaultConfig(), nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}

	var unknown []string
	for _, key := range md.Undecoded() {
		unknown = append(unknown, key.String())
	}
	if _, err := packagejson.ParseFormat(cfg.Format); err != nil {
		return defaultConfig(), nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if strings.Trim(cfg.Indent, " \t") != "" {
		return defaultConfig(), nil, errors.New(errors.ErrCodeInvalidInput, "config %s: indent must contain only spaces or tabs", path)
	}
	return cfg, unknown, nil
}

// loadConfig reads --config, or the default config file when the flag is
// unset, into c.config.
func (c *CLI) loadConfig() error {
	path := c.configPath
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
		}
	} else {
		dir, err := configDir()
		if err != nil {
			c.Logger.Debug("no config directory", "error", err)
			return nil
		}
		path = filepath.Join(dir, configFileName)
	}

	cfg, unknown, err := readConfig(path)
	if err != nil {
		return err
	}
	for _, key := range unknown {
		c.Logger.Warn("unknown config key", "key", key, "file", path)
	}
	if cfg.Verbose {
		c.SetLogLevel(LogDebug)
	}
	c.config = cfg
	c.Logger.Debug("config loaded", "file", path, "format", cfg.Format)
	return nil
}
