package snapshot

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileStore implements Store on the local file system.
type FileStore struct {
	root string
}

// Compile time check to ensure FileStore satisfies the Store interface.
var _ Store = (*FileStore)(nil)

// NewFileStore creates a FileStore rooted at the given directory, creating
// it if necessary.
func NewFileStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{root: root}, nil
}

// Put writes the blob to a temporary file, syncs it, and renames it into
// place, so readers never observe a partial write.
func (s *FileStore) Put(name string, data []byte) error {
	tmp, err := os.CreateTemp(s.root, name+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(s.root, name))
}

// Open opens a blob for reading. Opening a missing blob returns an error
// satisfying errors.Is(err, ErrNotFound).
func (s *FileStore) Open(name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.root, name))
}

// Delete removes a blob.
func (s *FileStore) Delete(name string) error {
	err := os.Remove(filepath.Join(s.root, name))
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// List returns all blobs matching the prefix.
func (s *FileStore) List(prefix string) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), prefix) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
