// Package session holds the token stores backing the user's session. The
// stored token is an opaque bearer credential; expiry and invalidation are
// entirely the backend's business.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	dirPerm  = 0o700
	filePerm = 0o600
)

// FileStore persists the token as a small JSON file so the session survives
// across console invocations.
type FileStore struct {
	path string
}

type fileContents struct {
	AccessToken string `json:"access_token"`
}

// NewFileStore returns a store writing to path. The parent directory is
// created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath places the session file under the user's config directory,
// falling back to the working directory when none can be resolved.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".erp-console-session.json"
	}
	return filepath.Join(dir, "erp-console", "session.json")
}

// Token reads the stored token. A missing or unreadable file means no session.
func (s *FileStore) Token() (string, bool) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	var c fileContents
	if err := json.Unmarshal(raw, &c); err != nil || c.AccessToken == "" {
		return "", false
	}
	return c.AccessToken, true
}

// Save writes the token with owner-only permissions.
func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return err
	}
	raw, err := json.Marshal(fileContents{AccessToken: token})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, filePerm)
}

// Clear removes the session file. A file that is already gone is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
