package logdir

import (
	"errors"
	"path/filepath"

	"gvtools"

	"github.com/spf13/afero"
)

var errNotDirectory = errors.New("not a directory")

// Dir is a validated, read-only handle on the directory the external logger
// writes to.
type Dir struct {
	Fs   afero.Fs
	Path string
}

// Open checks that path is a readable directory on fs. A nil fs means the
// host filesystem.
func Open(fs afero.Fs, path string) (*Dir, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	path = filepath.Clean(path)

	fi, err := fs.Stat(path)
	if err != nil {
		return nil, &gvtools.DirectoryAccessError{Path: path, Err: err}
	}
	if !fi.IsDir() {
		return nil, &gvtools.DirectoryAccessError{Path: path, Err: errNotDirectory}
	}

	// Fail fast if the listing itself is not permitted.
	f, err := fs.Open(path)
	if err != nil {
		return nil, &gvtools.DirectoryAccessError{Path: path, Err: err}
	}
	_ = f.Close()

	return &Dir{Fs: fs, Path: path}, nil
}

// Join returns the path of name inside the directory.
func (d *Dir) Join(name string) string {
	return filepath.Join(d.Path, name)
}
