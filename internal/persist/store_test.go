package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtdata/querydesk/internal/errors"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	store := NewFileStore(path)

	payload := []byte(`[{"id":"demographics-active-roster-a1b2c3d4"}]`)
	require.NoError(t, store.Save(payload))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, payload, loaded)
}

func TestFileStoreLoadAbsent(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing.json"))

	data, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestFileStoreSaveCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "library.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save([]byte("[]")))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save([]byte("first")))
	require.NoError(t, store.Save([]byte("second")))

	data, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
}

func TestFileStoreSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "library.json"))

	require.NoError(t, store.Save([]byte("[]")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "library.json", entries[0].Name())
}

func TestFileStoreLoadPermissionError(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	path := filepath.Join(t.TempDir(), "library.json")
	store := NewFileStore(path)
	require.NoError(t, store.Save([]byte("[]")))
	require.NoError(t, os.Chmod(path, 0000))

	_, err := store.Load()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypePersistence))
}
