// Package store provides the key-value persistence facevibe uses for
// daily flags, streaks, and the resilience series. Persistence is
// best-effort: a failed read falls back to defaults and a failed write is
// logged and ignored, never surfaced as a user-visible failure.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/PittPrat/facevibe/internal/log"
)

// Store is an opaque key-value store with JSON-serializable values.
type Store interface {
	// Get unmarshals the value for key into v. The boolean reports
	// whether the key was present.
	Get(key string, v any) (bool, error)

	// Set marshals v and stores it under key.
	Set(key string, v any) error

	// Delete removes a key. Deleting a missing key is a no-op.
	Delete(key string) error
}

// JSONStore implements Store backed by a single JSON file.
type JSONStore struct {
	path string
	mu   sync.RWMutex
	data map[string]json.RawMessage
}

// NewJSONStore creates a store at the given path. A missing file starts
// empty; a corrupt file is reset to empty and logged, not propagated.
func NewJSONStore(path string) (*JSONStore, error) {
	s := &JSONStore{
		path: path,
		data: make(map[string]json.RawMessage),
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		log.Warn("store file corrupt, starting empty", "path", path, "error", err)
		s.data = make(map[string]json.RawMessage)
	}
	return s, nil
}

// Get implements Store.
func (s *JSONStore) Get(key string, v any) (bool, error) {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode key %q: %w", key, err)
	}
	return true, nil
}

// Set implements Store.
func (s *JSONStore) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode key %q: %w", key, err)
	}

	s.mu.Lock()
	s.data[key] = raw
	err = s.flushLocked()
	s.mu.Unlock()
	return err
}

// Delete implements Store.
func (s *JSONStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.flushLocked()
}

// flushLocked writes the store to disk via a temp-file rename so a crash
// mid-write cannot corrupt the previous contents.
func (s *JSONStore) flushLocked() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

// Memory is an in-memory Store for tests and ephemeral sessions.
type Memory struct {
	mu   sync.RWMutex
	data map[string]json.RawMessage
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]json.RawMessage)}
}

// Get implements Store.
func (m *Memory) Get(key string, v any) (bool, error) {
	m.mu.RLock()
	raw, ok := m.data[key]
	m.mu.RUnlock()

	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, v)
}

// Set implements Store.
func (m *Memory) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	return nil
}

// Delete implements Store.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}
