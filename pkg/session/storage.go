package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pinepals/volunteer-cli/pkg/core/model"
)

// PersistedSession is the durable on-disk session record. The plain UserID
// and UserName fields mirror the legacy identifiers some older views still
// read alongside the full user object.
type PersistedSession struct {
	Token    string      `json:"token,omitempty"`
	User     *model.User `json:"user"`
	UserID   string      `json:"pp_user_id,omitempty"`
	UserName string      `json:"pp_user_name,omitempty"`
}

// Storage persists a session across application runs
type Storage interface {
	// Load returns the stored session, nil when none exists, or an error
	// when the stored value is unreadable
	Load() (*PersistedSession, error)
	Save(sess *PersistedSession) error
	Clear() error
}

// FileStorage keeps the session in a JSON file under the user's config
// directory
type FileStorage struct {
	path string
}

// NewFileStorage creates file-backed storage at the given path. An empty
// path uses the default location under the user config dir.
func NewFileStorage(path string) (*FileStorage, error) {
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config directory: %w", err)
		}
		path = filepath.Join(configDir, "pinepals", "session.json")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	return &FileStorage{path: path}, nil
}

// Path returns the file the session is stored in
func (f *FileStorage) Path() string {
	return f.path
}

func (f *FileStorage) Load() (*PersistedSession, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var sess PersistedSession
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	if sess.User == nil {
		return nil, nil
	}

	return &sess, nil
}

func (f *FileStorage) Save(sess *PersistedSession) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

func (f *FileStorage) Clear() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// MemoryStorage is an in-memory Storage for tests and ephemeral sessions
type MemoryStorage struct {
	sess *PersistedSession
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Load() (*PersistedSession, error) {
	return m.sess, nil
}

func (m *MemoryStorage) Save(sess *PersistedSession) error {
	m.sess = sess
	return nil
}

func (m *MemoryStorage) Clear() error {
	m.sess = nil
	return nil
}
