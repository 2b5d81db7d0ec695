package packagejson

import (
	"slices"
	"strings"

	"github.com/matzehuels/pkgjson/pkg/errors"
)

// DependencyGroup names one of the dependency mappings of a descriptor.
type DependencyGroup string

// Dependency groups in the order they appear in a document.
const (
	GroupProd     DependencyGroup = "dependencies"
	GroupDev      DependencyGroup = "devDependencies"
	GroupPeer     DependencyGroup = "peerDependencies"
	GroupOptional DependencyGroup = "optionalDependencies"
)

// DependencyGroups lists every group in document order.
var DependencyGroups = []DependencyGroup{GroupProd, GroupDev, GroupPeer, GroupOptional}

// ParseDependencyGroup accepts a group key or its short form
// (prod, dev, peer, optional).
func ParseDependencyGroup(s string) (DependencyGroup, error) {
	switch strings.ToLower(s) {
	case "prod", "dependencies":
		return GroupProd, nil
	case "dev", "devdependencies":
		return GroupDev, nil
	case "peer", "peerdependencies":
		return GroupPeer, nil
	case "optional", "optionaldependencies":
		return GroupOptional, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown dependency group %q", s)
}

// Dependency is one entry of a dependency mapping.
type Dependency struct {
	Name  string
	Range string
	Group DependencyGroup
}

// DependencyList returns the entries of the requested groups, or of every group
// when none is given. Entries are ordered by group, then by name.
func (d *Descriptor) DependencyList(groups ...DependencyGroup) []Dependency {
	if len(groups) == 0 {
		groups = DependencyGroups
	}

	var deps []Dependency
	for _, g := range DependencyGroups {
		if !slices.Contains(groups, g) {
			continue
		}
		m := d.dependencyMap(g)
		names := make([]string, 0, len(m))
		for name := range m {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			deps = append(deps, Dependency{Name: name, Range: m[name], Group: g})
		}
	}
	return deps
}

func (d *Descriptor) dependencyMap(g DependencyGroup) map[string]string {
	switch g {
	case GroupProd:
		return d.Dependencies
	case GroupDev:
		return d.DevDependencies
	case GroupPeer:
		return d.PeerDependencies
	case GroupOptional:
		return d.OptionalDependencies
	}
	return nil
}
