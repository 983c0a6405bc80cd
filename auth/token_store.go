package auth

import (
	"os"
	"strings"
)

// TokenStore is a single named slot holding the admin record id between
// runs. Absence means anonymous.
type TokenStore interface {
	Read() (token string, ok bool)
	Write(token string) error
	Clear() error
}

// FileTokenStore keeps the token in one file on disk.
type FileTokenStore struct {
	path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Read() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	return token, token != ""
}

func (s *FileTokenStore) Write(token string) error {
	return os.WriteFile(s.path, []byte(token+"\n"), 0o600)
}

func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
