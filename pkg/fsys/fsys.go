// Package fsys provides the three file primitives pkgjson needs from its
// environment: an existence check, a whole-file read and a whole-file write.
//
// All primitives operate on a [billy.Basic] so the OS file system and the
// in-memory file system used in tests are interchangeable.
package fsys

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// FileMode is the permission used when a file is created.
const FileMode os.FileMode = 0644

// Default is the OS file system. Paths are passed through unchanged, so
// absolute and working-directory-relative paths both work.
var Default billy.Basic = osfs.Default

// ErrNotDir is returned by WriteFile when the parent path exists but is not a
// directory.
var ErrNotDir = errors.New("not a directory")

// IsFile reports whether path exists and is not a directory.
func IsFile(fs billy.Basic, path string) bool {
	info, err := fs.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ReadFile reads the whole file at path.
func ReadFile(fs billy.Basic, path string) ([]byte, error) {
	return util.ReadFile(fs, path)
}

// WriteFile creates or truncates the file at path and writes data to it.
//
// Unlike the billy file systems, WriteFile never creates missing parent
// directories; a missing parent is reported as an error wrapping
// os.ErrNotExist.
func WriteFile(fs billy.Basic, path string, data []byte) (err error) {
	if dir := filepath.Dir(path); dir != "." && dir != path {
		info, err := fs.Stat(dir)
		if err != nil {
			return &os.PathError{Op: "write", Path: path, Err: err}
		}
		if !info.IsDir() {
			return &os.PathError{Op: "write", Path: path, Err: ErrNotDir}
		}
	}

	f, err := fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, FileMode)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = f.Write(data)
	return err
}
