package client

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// TokenStore persists the access token between process runs, the same job
// browser local storage does for the web client. Implementations must
// treat "no token" as a normal state, not an error.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileTokenStore keeps the token in a single file with owner-only
// permissions.
type FileTokenStore struct {
	Path string
}

// DefaultTokenStore stores the token under ~/.wardrobe/token, falling back
// to the current directory when the home directory cannot be resolved.
func DefaultTokenStore() *FileTokenStore {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &FileTokenStore{Path: filepath.Join(home, ".wardrobe", "token")}
}

// Load returns the stored token, or "" when none has been saved.
func (s *FileTokenStore) Load() (string, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// Save writes the token with 0600 permissions, creating the parent
// directory if needed.
func (s *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.Path, []byte(token+"\n"), 0o600)
}

// Clear removes the token file; a missing file already counts as cleared.
func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.Path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// memoryTokenStore backs tests and throwaway sessions.
type memoryTokenStore struct{ token string }

// NewMemoryTokenStore returns a TokenStore that never touches disk.
func NewMemoryTokenStore() TokenStore { return &memoryTokenStore{} }

func (s *memoryTokenStore) Load() (string, error) { return s.token, nil }
func (s *memoryTokenStore) Save(token string) error {
	s.token = token
	return nil
}
func (s *memoryTokenStore) Clear() error {
	s.token = ""
	return nil
}
