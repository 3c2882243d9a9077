// Package persist provides the key-value persistence capability for the
// query library: save the serialized record list, load it back on the next
// session.
package persist

import (
	"os"
	"path/filepath"

	"github.com/courtdata/querydesk/internal/errors"
)

// Store is the persistence capability consumed by the library. Load returns
// nil data (and no error) when nothing has been saved yet.
type Store interface {
	Save(data []byte) error
	Load() ([]byte, error)
}

// FileStore persists the serialized library to a single file on disk
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at the given path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save writes the serialized library atomically via a temp file rename, so a
// crash mid-write never leaves a truncated library behind.
func (s *FileStore) Save(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, errors.ErrTypePersistence, "failed to create library directory")
	}

	tmp, err := os.CreateTemp(dir, ".library-*.tmp")
	if err != nil {
		return errors.Wrap(err, errors.ErrTypePersistence, "failed to create temp file")
	}

	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)

		return errors.Wrap(err, errors.ErrTypePersistence, "failed to write library")
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, errors.ErrTypePersistence, "failed to close temp file")
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, errors.ErrTypePersistence, "failed to replace library file")
	}

	return nil
}

// Load reads the previously saved library. Absence is not an error.
func (s *FileStore) Load() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, errors.Wrap(err, errors.ErrTypePersistence, "failed to read library file")
	}

	return data, nil
}
