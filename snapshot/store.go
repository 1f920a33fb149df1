// Package snapshot provides byte-blob stores for encoded array snapshots.
package snapshot

import (
	"bytes"
	"io"
	"os"
	"strings"
	"sync"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store persists named snapshot blobs.
type Store interface {
	// Put writes a blob atomically, replacing any existing blob with the
	// same name.
	Put(name string, data []byte) error
	// Open opens a blob for reading.
	Open(name string) (io.ReadCloser, error)
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(name string) error
	// List returns the names of all blobs with the given prefix.
	List(prefix string) ([]string, error)
}

// MemoryStore is an in-memory Store implementation for testing. It stores
// blobs without any filesystem dependency and is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// Compile time check to ensure MemoryStore satisfies the Store interface.
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a new in-memory blob store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blobs: make(map[string][]byte),
	}
}

// Put writes a blob.
func (m *MemoryStore) Put(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Copy to prevent external mutation
	copied := make([]byte, len(data))
	copy(copied, data)
	m.blobs[name] = copied
	return nil
}

// Open opens a blob for reading.
func (m *MemoryStore) Open(name string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.blobs[name]
	if !ok {
		return nil, ErrNotFound
	}

	// Return a copy to prevent external mutation
	copied := make([]byte, len(data))
	copy(copied, data)

	return io.NopCloser(bytes.NewReader(copied)), nil
}

// Delete removes a blob.
func (m *MemoryStore) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.blobs, name)
	return nil
}

// List returns all blobs matching the prefix.
func (m *MemoryStore) List(prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var names []string
	for name := range m.blobs {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	return names, nil
}
