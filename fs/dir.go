package fs

import (
	"errors"
	iofs "io/fs"
	"os"

	"github.com/fwojciec/extrules"
)

// Ensure Dir implements extrules.SourceTree at compile time.
var _ extrules.SourceTree = (*Dir)(nil)

// Dir reads linter sources from a local directory, typically a checkout of
// the linter's repository.
type Dir struct {
	fsys iofs.FS
}

// NewDir creates a Dir rooted at root.
func NewDir(root string) *Dir {
	return &Dir{fsys: os.DirFS(root)}
}

// NewDirFS creates a Dir reading from fsys.
func NewDirFS(fsys iofs.FS) *Dir {
	return &Dir{fsys: fsys}
}

// Glob returns the slash-separated names matching pattern in lexical order.
func (d *Dir) Glob(pattern string) ([]string, error) {
	names, err := iofs.Glob(d.fsys, pattern)
	if err != nil {
		return nil, extrules.Errorf(extrules.EINVALID, "invalid pattern %q: %v", pattern, err)
	}
	return names, nil
}

// ReadFile returns the content of the named file.
func (d *Dir) ReadFile(name string) (string, error) {
	data, err := iofs.ReadFile(d.fsys, name)
	switch {
	case errors.Is(err, iofs.ErrNotExist):
		return "", extrules.Errorf(extrules.ENOTFOUND, "source file %s not found", name)
	case errors.Is(err, iofs.ErrInvalid):
		return "", extrules.Errorf(extrules.EINVALID, "invalid source file name %q", name)
	case err != nil:
		return "", err
	}
	return string(data), nil
}
