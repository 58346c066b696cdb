package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"congregate/internal/domain"
)

func TestDirStoreSaveAndOpen(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("notes.txt", strings.NewReader("hello")))

	f, err := store.Open("notes.txt")
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestDirStoreSaveOverwrites(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("notes.txt", strings.NewReader("first")))
	require.NoError(t, store.Save("notes.txt", strings.NewReader("second")))

	data, err := os.ReadFile(store.Path("notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestDirStoreRename(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("old.txt", strings.NewReader("x")))
	require.NoError(t, store.Rename("old.txt", "new.txt"))

	_, err = os.Stat(store.Path("new.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(store.Path("old.txt"))
	assert.True(t, os.IsNotExist(err))

	err = store.Rename("missing.txt", "anything.txt")
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestDirStoreRemove(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("notes.txt", strings.NewReader("x")))
	require.NoError(t, store.Remove("notes.txt"))

	// Removing a file that is already gone is fine.
	assert.NoError(t, store.Remove("notes.txt"))
}

func TestDirStoreOpenMissing(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Open("missing.txt")
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestDirStorePathConfinesToDirectory(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDirStore(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "passwd"), store.Path("../../etc/passwd"))
}

func TestNewDirStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	_, err := NewDirStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
