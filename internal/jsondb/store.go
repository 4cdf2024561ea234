// Package jsondb provides a durable key to JSON-blob store with
// whole-value read/write semantics, plus a generic typed table layer
// on top of it.
//
// Each key maps to a single <key>.json file in the store directory.
// Writes replace the whole blob atomically (temp file + rename) and
// are cached in memory, read-through. The store offers no partial
// updates and no cross-key transactions; callers that need multi-table
// consistency must serialize their own compound operations.
package jsondb

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is a flat key-value store backed by one JSON file per key.
type Store struct {
	dir string

	mu    sync.Mutex
	cache map[string][]byte
}

// Open creates the store directory if needed and returns a Store.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}
	return &Store{dir: dir, cache: map[string][]byte{}}, nil
}

// Dir returns the store directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file backing the given key.
func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get returns a copy of the blob stored under key. The second return
// value is false when the key has never been written.
func (s *Store) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if data, ok := s.cache[key]; ok {
		out := make([]byte, len(data))
		copy(out, data)
		return out, true, nil
	}
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	s.cache[key] = data
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

// Put replaces the blob stored under key. The write is atomic: the
// data is written to a temp file in the store directory and renamed
// over the target.
func (s *Store) Put(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.CreateTemp(s.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for key %s: %w", key, err)
	}
	tmpPath := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file for key %s: %w", key, err)
	}
	if err := os.Rename(tmpPath, s.Path(key)); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file for key %s: %w", key, err)
	}

	// Copy so later caller mutations of data cannot corrupt the cache.
	cached := make([]byte, len(data))
	copy(cached, data)
	s.cache[key] = cached
	return nil
}
