// Package auth owns the stored API credentials. The gateway is the only
// consumer allowed to rewrite them outside the login/register/logout flows.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Tokens is the credential pair issued by the API.
type Tokens struct {
	Access  string `json:"access_token"`
	Refresh string `json:"refresh_token"`
}

// Empty reports whether no credentials are held.
func (t Tokens) Empty() bool {
	return t.Access == "" && t.Refresh == ""
}

// Store holds and persists the credential pair.
type Store interface {
	// Tokens returns the current credential pair (zero value if logged out).
	Tokens() Tokens

	// Set replaces the stored credential pair.
	Set(t Tokens) error

	// Clear removes all stored credentials.
	Clear() error
}

// FileStore persists tokens as a mode-0600 JSON file.
type FileStore struct {
	path string

	mu     sync.RWMutex
	cached Tokens
	loaded bool
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a FileStore at path, creating parent directories.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create credentials dir: %w", err)
	}
	return &FileStore{path: path}, nil
}

// DefaultPath returns the default credentials file location, honoring the
// INVESTIPET_CREDENTIALS env var.
func DefaultPath() (string, error) {
	if p := os.Getenv("INVESTIPET_CREDENTIALS"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "investipet", "credentials.json"), nil
}

func (s *FileStore) Tokens() Tokens {
	s.mu.RLock()
	if s.loaded {
		t := s.cached
		s.mu.RUnlock()
		return t
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.cached
	}
	s.loaded = true

	data, err := os.ReadFile(s.path)
	if err != nil {
		return Tokens{}
	}
	var t Tokens
	if err := json.Unmarshal(data, &t); err != nil {
		return Tokens{}
	}
	s.cached = t
	return t
}

func (s *FileStore) Set(t Tokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	s.cached = t
	s.loaded = true
	return nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cached = Tokens{}
	s.loaded = true
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu sync.RWMutex
	t  Tokens
}

var _ Store = (*MemStore)(nil)

// NewMemStore creates a MemStore holding t.
func NewMemStore(t Tokens) *MemStore {
	return &MemStore{t: t}
}

func (s *MemStore) Tokens() Tokens {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.t
}

func (s *MemStore) Set(t Tokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.t = t
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.t = Tokens{}
	return nil
}
