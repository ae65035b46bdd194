package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Credential is the persisted token material. Type distinguishes user and
// employee sessions.
type Credential struct {
	Token string `json:"token"`
	Type  string `json:"type"`
}

// ErrNoCredential is returned by TokenStore.Load when nothing is stored.
// Callers treat it as "not signed in", never as a failure.
var ErrNoCredential = errors.New("no stored credential")

// TokenStore persists the session credential between program runs.
type TokenStore interface {
	Load() (Credential, error)
	Save(Credential) error
	Clear() error
}

// FileTokenStore keeps the credential in a JSON file readable only by the
// owner.
type FileTokenStore struct {
	path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Load() (Credential, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Credential{}, ErrNoCredential
		}
		return Credential{}, fmt.Errorf("failed to read credential: %w", err)
	}

	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return Credential{}, fmt.Errorf("failed to parse credential: %w", err)
	}
	if cred.Token == "" {
		return Credential{}, ErrNoCredential
	}
	return cred, nil
}

func (s *FileTokenStore) Save(cred Credential) error {
	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("failed to encode credential: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create credential dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credential: %w", err)
	}
	return nil
}

func (s *FileTokenStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credential: %w", err)
	}
	return nil
}

// MemoryTokenStore holds the credential in memory only. Useful in tests and
// for sessions that must not outlive the process.
type MemoryTokenStore struct {
	mu   sync.Mutex
	cred Credential
	set  bool
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Load() (Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return Credential{}, ErrNoCredential
	}
	return s.cred, nil
}

func (s *MemoryTokenStore) Save(cred Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = cred
	s.set = true
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = Credential{}
	s.set = false
	return nil
}
