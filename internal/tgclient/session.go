package tgclient

import (
	"os"
	"path/filepath"

	"github.com/gotd/td/session"
)

const appName = "tg-old-chats-manager"

// SessionStorage persists the MTProto session between runs.
type SessionStorage interface {
	session.Storage
	DeleteSession() error
}

// fileStorage stores the session as a JSON file.
type fileStorage struct {
	session.FileStorage
}

func newFileStorage(path string) *fileStorage {
	_ = os.MkdirAll(filepath.Dir(path), 0o700)
	return &fileStorage{FileStorage: session.FileStorage{Path: path}}
}

// DeleteSession removes the session file.
func (s *fileStorage) DeleteSession() error {
	err := os.Remove(s.Path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// DefaultSessionPath returns the session file path under the XDG state directory.
func DefaultSessionPath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		homeDir, _ := os.UserHomeDir()
		stateHome = filepath.Join(homeDir, ".local", "state")
	}
	return filepath.Join(stateHome, appName, "session.json")
}
