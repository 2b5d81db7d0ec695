// Package manager coordinates access to one package.json file: where it is,
// what was last read from it and what will be written back.
//
// A Manager moves through three states:
//
//	Unlocated --Locate/LocateFrom/SetPath--> Located --Read/Write--> Loaded
//
// Locating a file discards the in-memory descriptor, so callers normally
// locate, Read once, mutate through Descriptor and then Write.
//
// A Manager is not safe for concurrent use; give each goroutine its own
// instance or guard it externally.
package manager

import (
	stderrors "errors"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5"

	"github.com/matzehuels/pkgjson/pkg/errors"
	"github.com/matzehuels/pkgjson/pkg/fsys"
	"github.com/matzehuels/pkgjson/pkg/locate"
	"github.com/matzehuels/pkgjson/pkg/packagejson"
)

// State is the lifecycle position of a Manager.
type State int

const (
	// Unlocated means no path is known.
	Unlocated State = iota
	// Located means a path is known but the descriptor may be stale.
	Located
	// Loaded means the descriptor reflects the last Read or Write of the path.
	Loaded
)

func (s State) String() string {
	switch s {
	case Located:
		return "located"
	case Loaded:
		return "loaded"
	}
	return "unlocated"
}

// Option configures a Manager.
type Option func(*Manager)

// WithFilesystem sets the file system used to locate, read and write.
// Defaults to the OS file system.
func WithFilesystem(fs billy.Basic) Option { return func(m *Manager) { m.fs = fs } }

// WithWriteOptions sets the layout used by Write and WriteTo.
func WithWriteOptions(o packagejson.WriteOptions) Option {
	return func(m *Manager) { m.writeOpts = o }
}

// WithLogger sets the logger for state transitions. Defaults to log.Default().
func WithLogger(l *log.Logger) Option { return func(m *Manager) { m.logger = l } }

// Manager owns an optional package.json path and one in-memory descriptor.
type Manager struct {
	fs        billy.Basic
	writeOpts packagejson.WriteOptions
	logger    *log.Logger

	path    string
	hasPath bool
	loaded  bool
	desc    *packagejson.Descriptor
}

// New returns an Unlocated Manager holding a default descriptor.
func New(opts ...Option) *Manager {
	m := &Manager{
		fs:        fsys.Default,
		writeOpts: packagejson.DefaultWriteOptions(),
		desc:      packagejson.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.fs == nil {
		m.fs = fsys.Default
	}
	if m.logger == nil {
		m.logger = log.Default()
	}
	return m
}

// NewWithPath returns a Located Manager for path. The path is not checked.
func NewWithPath(path string, opts ...Option) *Manager {
	m := New(opts...)
	m.SetPath(path)
	return m
}

// Locate searches from the working directory upward. See LocateFrom.
func (m *Manager) Locate() (string, bool) {
	wd, err := os.Getwd()
	if err != nil {
		m.logger.Debug("working directory unavailable", "error", err)
		return "", false
	}
	return m.LocateFrom(wd)
}

// LocateFrom searches dir and its ancestors for package.json. On success it
// stores the path and resets the descriptor to its default, discarding
// unsaved edits. Otherwise the Manager is left unchanged.
func (m *Manager) LocateFrom(dir string) (string, bool) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		m.logger.Debug("cannot resolve directory", "dir", dir, "error", err)
		return "", false
	}

	path, ok := locate.FindClosest(m.fs, packagejson.Filename, abs)
	if !ok {
		m.logger.Debug("no package.json found", "from", abs)
		return "", false
	}

	m.path, m.hasPath, m.loaded = path, true, false
	m.desc = packagejson.New()
	m.logger.Debug("located package.json", "path", path)
	return path, true
}

// SetPath sets the path without checking that it exists.
func (m *Manager) SetPath(path string) {
	m.path, m.hasPath, m.loaded = path, true, false
}

// Path returns the known path, if any.
func (m *Manager) Path() (string, bool) {
	return m.path, m.hasPath
}

// TakePath returns the known path, if any, and forgets it.
func (m *Manager) TakePath() (string, bool) {
	path, ok := m.path, m.hasPath
	m.path, m.hasPath, m.loaded = "", false, false
	return path, ok
}

// State reports where the Manager is in its lifecycle.
func (m *Manager) State() State {
	switch {
	case !m.hasPath:
		return Unlocated
	case m.loaded:
		return Loaded
	}
	return Located
}

// Read decodes the file at the known path and replaces the in-memory
// descriptor with the result. On failure the descriptor is unchanged.
func (m *Manager) Read() (*packagejson.Descriptor, error) {
	if !m.hasPath {
		return nil, errors.New(errors.ErrCodeNotLocated, "no package.json has been located")
	}

	data, err := fsys.ReadFile(m.fs, m.path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", m.path)
	}
	d, err := packagejson.Decode(data)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "decode %s", m.path)
	}

	m.desc, m.loaded = d, true
	m.logger.Debug("read package.json", "path", m.path, "keys", len(d.Keys()))
	return d, nil
}

// Write encodes the in-memory descriptor and overwrites the file at the
// known path. It never guesses a path.
func (m *Manager) Write() error {
	if !m.hasPath {
		return errors.New(errors.ErrCodeNotLocated, "no package.json has been located")
	}
	if err := m.writeFile(m.path); err != nil {
		return err
	}
	m.loaded = true
	return nil
}

// WriteTo encodes the in-memory descriptor and writes it to path. The known
// path, if any, is not changed. Missing parent directories are not created.
func (m *Manager) WriteTo(path string) error {
	if err := m.writeFile(path); err != nil {
		return err
	}
	if m.hasPath && path == m.path {
		m.loaded = true
	}
	return nil
}

func (m *Manager) writeFile(path string) error {
	data, err := m.Encode()
	if err != nil {
		return errors.Wrap(errors.GetCode(err), err, "encode %s", path)
	}
	if err := fsys.WriteFile(m.fs, path, data); err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return errors.Wrap(errors.ErrCodeIO, err, "write %s: parent directory does not exist", path)
		}
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	m.logger.Debug("wrote package.json", "path", path, "bytes", len(data))
	return nil
}

// Encode returns the file contents Write would produce, including the
// trailing newline.
func (m *Manager) Encode() ([]byte, error) {
	data, err := packagejson.Encode(m.desc, m.writeOpts)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Descriptor returns the in-memory descriptor for mutation. Changes are
// persisted by the next Write.
func (m *Manager) Descriptor() *packagejson.Descriptor {
	return m.desc
}

// Snapshot returns a deep copy of the in-memory descriptor for inspection.
func (m *Manager) Snapshot() *packagejson.Descriptor {
	return m.desc.Clone()
}

// SetDescriptor replaces the in-memory descriptor wholesale. A nil d resets
// it to the default. A Loaded Manager drops back to Located until the next
// Write.
func (m *Manager) SetDescriptor(d *packagejson.Descriptor) {
	if d == nil {
		d = packagejson.New()
	}
	m.desc, m.loaded = d, false
}
