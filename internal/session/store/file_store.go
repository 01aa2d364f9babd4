package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"commerce-admin-console/client/internal/session/domain"
)

// FileStore persists the session as a JSON file readable only by the owner.
type FileStore struct {
	path string
}

// NewFileStore returns a file-backed store at path. An empty path resolves
// to $HOME/.adminconsole/session.json.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("store: resolve home dir: %w", err)
		}
		path = filepath.Join(home, ".adminconsole", "session.json")
	}
	return &FileStore{path: path}, nil
}

// Load reads the stored session, or (nil, nil) when the file is absent.
func (f *FileStore) Load(ctx context.Context) (*domain.Session, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: read session file: %w", err)
	}
	var s domain.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("store: decode session file: %w", err)
	}
	return &s, nil
}

// Save writes the session atomically with 0600 permissions.
func (f *FileStore) Save(ctx context.Context, s *domain.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("store: encode session: %w", err)
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("store: create session dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "session-*.json")
	if err != nil {
		return fmt.Errorf("store: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("store: chmod temp file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("store: write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: close session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("store: replace session file: %w", err)
	}
	return nil
}

// Clear removes the session file. A missing file is not an error.
func (f *FileStore) Clear(ctx context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: remove session file: %w", err)
	}
	return nil
}
