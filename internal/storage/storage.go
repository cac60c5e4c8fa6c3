package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Persisted entity keys. Each key holds one whole JSON-encoded entity;
// writes always rewrite the full value, never deltas.
const (
	KeyBookmarks   = "bv_bookmarks"
	KeyCollections = "bv_collections"
	KeyTheme       = "bv_theme"
	KeyVaultPIN    = "bv_vault_pin"
	KeyPrefs       = "bv_prefs"
)

// ErrNotFound is returned by Store.Get when a key has no stored value.
var ErrNotFound = errors.New("key not found")

// Store is the raw durable key/value backend.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, data []byte) error
	Close() error
}

// Load reads and decodes the value under key. A missing key or corrupt
// payload degrades to the fallback; the caller never sees an error.
func Load[T any](s Store, key string, fallback T) T {
	data, err := s.Get(key)
	if err != nil {
		return fallback
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return fallback
	}
	return value
}

// Save encodes and writes the value under key. Best effort: callers treat
// persistence as fire-and-forget and must not fail user actions on it.
func Save[T any](s Store, key string, value T) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return s.Set(key, data)
}

// FileStore implements Store with one JSON file per key.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the storage directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Get reads the file backing the key.
func (s *FileStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Set writes the file backing the key, creating the directory if needed.
func (s *FileStore) Set(key string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path(key), data, 0644)
}

// Close implements Store. File handles are not held open.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// DefaultDataDir returns the default storage directory: ~/.config/bv
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "bv"), nil
}

// OpenStore opens the appropriate storage backend.
// Prefers SQLite if the database file exists, otherwise falls back to
// per-key JSON files.
func OpenStore() (Store, error) {
	dir, err := DefaultDataDir()
	if err != nil {
		return nil, err
	}

	sqlitePath := filepath.Join(dir, "bv.db")
	if _, err := os.Stat(sqlitePath); err == nil {
		return NewSQLiteStore(sqlitePath)
	}

	return NewFileStore(dir), nil
}
