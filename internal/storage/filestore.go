// Package storage provides flat local-directory file stores for member
// photographs and uploaded documents. Files are addressed by bare filename;
// there is no sub-path structure.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"congregate/internal/domain"
)

// FileStore is the backing-file side of the two-phase file+record protocol.
// Services perform the file step first and only commit the record when it
// succeeds.
type FileStore interface {
	// Save writes the content to filename, overwriting any existing file.
	Save(filename string, content io.Reader) error
	// Rename moves oldName to newName. Fails when oldName does not exist.
	Rename(oldName, newName string) error
	// Remove deletes filename. A missing file is not an error.
	Remove(filename string) error
	// Open opens filename for reading.
	Open(filename string) (io.ReadCloser, error)
	// Path returns the on-disk path for filename, for handlers that serve
	// files directly.
	Path(filename string) string
}

// DirStore stores files flat in a single directory.
type DirStore struct {
	dir string
}

// NewDirStore creates the directory if needed and returns a store over it.
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory %s: %w", dir, err)
	}
	return &DirStore{dir: dir}, nil
}

func (s *DirStore) Path(filename string) string {
	// Base strips any path components a caller failed to sanitize.
	return filepath.Join(s.dir, filepath.Base(filename))
}

func (s *DirStore) Save(filename string, content io.Reader) error {
	f, err := os.Create(s.Path(filename))
	if err != nil {
		return &domain.StorageError{Op: "save", Filename: filename, Cause: err}
	}

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(s.Path(filename))
		return &domain.StorageError{Op: "save", Filename: filename, Cause: err}
	}

	if err := f.Close(); err != nil {
		return &domain.StorageError{Op: "save", Filename: filename, Cause: err}
	}

	return nil
}

func (s *DirStore) Rename(oldName, newName string) error {
	if err := os.Rename(s.Path(oldName), s.Path(newName)); err != nil {
		return &domain.StorageError{Op: "rename", Filename: oldName, Cause: err}
	}
	return nil
}

func (s *DirStore) Remove(filename string) error {
	if err := os.Remove(s.Path(filename)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &domain.StorageError{Op: "remove", Filename: filename, Cause: err}
	}
	return nil
}

func (s *DirStore) Open(filename string) (io.ReadCloser, error) {
	f, err := os.Open(s.Path(filename))
	if err != nil {
		return nil, &domain.StorageError{Op: "open", Filename: filename, Cause: err}
	}
	return f, nil
}
