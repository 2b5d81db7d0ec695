package packagejson

import (
	"bytes"
	"maps"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/matzehuels/pkgjson/pkg/json"
)

// Filename is the only file name the locator searches for.
const Filename = "package.json"

// Document-level defaults applied when the attribute is absent.
const (
	DefaultMain = "index.js"
	DefaultType = "commonjs"
)

// Descriptor is the in-memory form of a package.json document.
//
// Optional attributes are nil when absent. An empty but present list or
// mapping (for example "files": []) is kept as a non-nil empty value and is
// written back.
//
// The json tags name each attribute and feed [Schema]; encoding and decoding
// go through [Encode] and [Decode].
type Descriptor struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Description  *string  `json:"description,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
	Homepage     *string  `json:"homepage,omitempty"`
	Bugs         *Bugs    `json:"bugs,omitempty"`
	License      *string  `json:"license,omitempty"`
	Author       *Person  `json:"author,omitempty"`
	Contributors []Person `json:"contributors,omitempty"`
	Maintainers  []Person `json:"maintainers,omitempty"`
	Funding      *Funding `json:"funding,omitempty"`
	Files        []string `json:"files,omitempty"`

	// Main is the entry point module. Always written.
	Main        string       `json:"main,omitempty" jsonschema:"default=index.js"`
	Browser     *string      `json:"browser,omitempty"`
	Bin         *Bin         `json:"bin,omitempty"`
	Man         *Man         `json:"man,omitempty"`
	Directories *Directories `json:"directories,omitempty"`
	Repository  *Repository  `json:"repository,omitempty"`

	// Scripts maps lifecycle events to commands. It is never nil after
	// New or Decode.
	Scripts map[string]string          `json:"scripts,omitempty"`
	Config  map[string]json.RawMessage `json:"config,omitempty"`

	Dependencies         map[string]string          `json:"dependencies,omitempty"`
	DevDependencies      map[string]string          `json:"devDependencies,omitempty"`
	PeerDependencies     map[string]string          `json:"peerDependencies,omitempty"`
	PeerDependenciesMeta map[string]map[string]bool `json:"peerDependenciesMeta,omitempty"`
	BundledDependencies  []string                   `json:"bundledDependencies,omitempty"`
	OptionalDependencies map[string]string          `json:"optionalDependencies,omitempty"`
	Overrides            map[string]json.RawMessage `json:"overrides,omitempty"`

	Engines       map[string]string          `json:"engines,omitempty"`
	OS            []string                   `json:"os,omitempty"`
	CPU           []string                   `json:"cpu,omitempty"`
	Private       *bool                      `json:"private,omitempty" jsonschema:"default=false"`
	PublishConfig map[string]json.RawMessage `json:"publishConfig,omitempty"`
	Workspaces    []string                   `json:"workspaces,omitempty"`

	// Type is the module system, "commonjs" or "module". Always written.
	Type    string  `json:"type,omitempty" jsonschema:"default=commonjs"`
	Types   *string `json:"types,omitempty"`
	Typings *string `json:"typings,omitempty"`

	// Unknowns holds top-level keys that are not attributes above, with
	// their compacted JSON values, in document order.
	Unknowns *orderedmap.OrderedMap[string, json.RawMessage] `json:"-"`

	// scriptsExplicit records that scripts came from the document or from
	// Set, so an empty mapping is still written back.
	scriptsExplicit bool
}

// Directories hints at the structure of the package.
type Directories struct {
	Bin     string `json:"bin,omitempty"`
	Man     string `json:"man,omitempty"`
	Lib     string `json:"lib,omitempty"`
	Doc     string `json:"doc,omitempty"`
	Test    string `json:"test,omitempty"`
	Example string `json:"example,omitempty"`
}

// New returns a Descriptor with every optional attribute absent and the
// defaulted attributes at their defaults.
func New() *Descriptor {
	return &Descriptor{
		Main:     DefaultMain,
		Scripts:  map[string]string{},
		Type:     DefaultType,
		Unknowns: orderedmap.New[string, json.RawMessage](),
	}
}

// IsPrivate reports whether the package refuses publication. An absent
// private attribute reads as false.
func (d *Descriptor) IsPrivate() bool {
	return d.Private != nil && *d.Private
}

// SetPrivate sets the private attribute.
func (d *Descriptor) SetPrivate(private bool) {
	d.Private = &private
}

// MarshalJSON encodes the descriptor in compact form.
func (d *Descriptor) MarshalJSON() ([]byte, error) {
	return Encode(d, WriteOptions{Format: Compact})
}

// UnmarshalJSON replaces d with the decoded document.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*d = *decoded
	return nil
}

// Clone returns a deep copy of d. Mutating the copy never affects d.
func (d *Descriptor) Clone() *Descriptor {
	c := *d

	c.Description = clonePtr(d.Description)
	c.Keywords = slices.Clone(d.Keywords)
	c.Homepage = clonePtr(d.Homepage)
	c.Bugs = clonePtr(d.Bugs)
	c.License = clonePtr(d.License)
	c.Author = clonePtr(d.Author)
	c.Contributors = slices.Clone(d.Contributors)
	c.Maintainers = slices.Clone(d.Maintainers)
	if d.Funding != nil {
		f := *d.Funding
		f.List = slices.Clone(d.Funding.List)
		c.Funding = &f
	}
	c.Files = slices.Clone(d.Files)
	c.Browser = clonePtr(d.Browser)
	if d.Bin != nil {
		b := *d.Bin
		b.Commands = maps.Clone(d.Bin.Commands)
		c.Bin = &b
	}
	if d.Man != nil {
		m := *d.Man
		m.Paths = slices.Clone(d.Man.Paths)
		c.Man = &m
	}
	c.Directories = clonePtr(d.Directories)
	c.Repository = clonePtr(d.Repository)
	c.Scripts = maps.Clone(d.Scripts)
	c.Config = cloneRawMap(d.Config)
	c.Dependencies = maps.Clone(d.Dependencies)
	c.DevDependencies = maps.Clone(d.DevDependencies)
	c.PeerDependencies = maps.Clone(d.PeerDependencies)
	if d.PeerDependenciesMeta != nil {
		c.PeerDependenciesMeta = make(map[string]map[string]bool, len(d.PeerDependenciesMeta))
		for k, v := range d.PeerDependenciesMeta {
			c.PeerDependenciesMeta[k] = maps.Clone(v)
		}
	}
	c.BundledDependencies = slices.Clone(d.BundledDependencies)
	c.OptionalDependencies = maps.Clone(d.OptionalDependencies)
	c.Overrides = cloneRawMap(d.Overrides)
	c.Engines = maps.Clone(d.Engines)
	c.OS = slices.Clone(d.OS)
	c.CPU = slices.Clone(d.CPU)
	c.Private = clonePtr(d.Private)
	c.PublishConfig = cloneRawMap(d.PublishConfig)
	c.Workspaces = slices.Clone(d.Workspaces)
	c.Types = clonePtr(d.Types)
	c.Typings = clonePtr(d.Typings)

	c.Unknowns = orderedmap.New[string, json.RawMessage]()
	if d.Unknowns != nil {
		for pair := d.Unknowns.Oldest(); pair != nil; pair = pair.Next() {
			c.Unknowns.Set(pair.Key, bytes.Clone(pair.Value))
		}
	}
	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneRawMap(m map[string]json.RawMessage) map[string]json.RawMessage {
	if m == nil {
		return nil
	}
	c := make(map[string]json.RawMessage, len(m))
	for k, v := range m {
		c[k] = bytes.Clone(v)
	}
	return c
}
