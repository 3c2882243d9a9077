package script

import (
	"context"
	"os"
	"path/filepath"

	"github.com/courtdata/querydesk/internal/errors"
)

// Source is the script source capability: it resolves a script filename to
// its text. Absence of a file is a recoverable condition for the loader, not
// a fatal error.
type Source interface {
	Fetch(ctx context.Context, filename string) (string, error)
}

// DirSource fetches script files from a directory on disk
type DirSource struct {
	Dir string
}

// NewDirSource creates a filesystem-backed script source
func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir}
}

// Fetch reads the named script file from the source directory
func (s *DirSource) Fetch(_ context.Context, filename string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir, filename))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTypeScriptLoad, "failed to read script %s", filename)
	}

	return string(data), nil
}
