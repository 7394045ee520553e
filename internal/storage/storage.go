package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// KV is a string-keyed store of JSON-encoded values. Writes are
// last-write-wins and values carry no schema version.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMany writes all entries in a single operation.
	SetMany(ctx context.Context, entries map[string][]byte) error
	Close() error
}

// JSONStore implements KV using a single JSON object file.
type JSONStore struct {
	path string

	mu     sync.Mutex
	values map[string]json.RawMessage
}

// NewJSONStore opens the JSON file at path. A missing file is an empty store.
func NewJSONStore(path string) (*JSONStore, error) {
	s := &JSONStore{path: path, values: map[string]json.RawMessage{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}

	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if s.values == nil {
		s.values = map[string]json.RawMessage{}
	}

	return s, nil
}

// Path returns the storage file path.
func (s *JSONStore) Path() string {
	return s.path
}

func (s *JSONStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *JSONStore) Set(ctx context.Context, key string, value []byte) error {
	return s.SetMany(ctx, map[string][]byte{key: value})
}

// SetMany applies every entry and rewrites the file once. The in-memory
// values change only when the write succeeds.
func (s *JSONStore) SetMany(ctx context.Context, entries map[string][]byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for key, value := range entries {
		if !json.Valid(value) {
			return fmt.Errorf("value for %q is not valid JSON", key)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]json.RawMessage, len(s.values)+len(entries))
	for key, value := range s.values {
		next[key] = value
	}
	for key, value := range entries {
		next[key] = append(json.RawMessage(nil), value...)
	}
	if err := s.save(next); err != nil {
		return err
	}
	s.values = next
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes the file through a temp file so readers never see a partial write.
// Creates the directory if it doesn't exist.
func (s *JSONStore) save(values map[string]json.RawMessage) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// Open opens the store at path: SQLite for .db and .sqlite files, JSON otherwise.
func Open(path string) (KV, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite":
		return NewSQLiteStore(path)
	default:
		return NewJSONStore(path)
	}
}

// ConfigDir returns ~/.config/bms.
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "bms"), nil
}

// DefaultStatePath returns the default state path: ~/.config/bms/state.db
func DefaultStatePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state.db"), nil
}
