// Package locate finds the closest file with a given name in a directory or
// any of its ancestors.
package locate

import (
	"path/filepath"

	"github.com/go-git/go-billy/v5"

	"github.com/matzehuels/pkgjson/pkg/fsys"
)

// FindClosest walks from start up to the file-system root and returns the
// first start/…/filename that exists as a file. Siblings and descendants of
// start are never searched. The second return value is false when the root
// is reached without a match.
func FindClosest(fs billy.Basic, filename, start string) (string, bool) {
	dir := filepath.Clean(start)
	for {
		candidate := filepath.Join(dir, filename)
		if fsys.IsFile(fs, candidate) {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
