package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/realtydash/realty-dashboard/internal/ledger"
)

// FileStore is the local fallback backend: one JSON file per user under a
// directory, holding credentials and data together. It stands in for the
// primary store when the database is unavailable, so a user registered
// offline can keep working.
type FileStore struct {
	dir string
}

// NewFileStore creates the fallback directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create fallback dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

type fileUser struct {
	Username         string           `json:"username"`
	PasswordHash     string           `json:"passwordHash"`
	SecurityQuestion string           `json:"securityQuestion"`
	AnswerHash       string           `json:"answerHash"`
	Data             *ledger.UserData `json:"data,omitempty"`
}

// Usernames are validated to [A-Za-z0-9_]{3,20} before reaching the store,
// so they are safe as file names.
func (s *FileStore) path(username string) string {
	return filepath.Join(s.dir, username+".json")
}

func (s *FileStore) read(username string) (fileUser, error) {
	raw, err := os.ReadFile(s.path(username))
	if errors.Is(err, fs.ErrNotExist) {
		return fileUser{}, ErrNotFound
	}
	if err != nil {
		return fileUser{}, fmt.Errorf("read user file: %w", err)
	}
	var u fileUser
	if err := json.Unmarshal(raw, &u); err != nil {
		return fileUser{}, fmt.Errorf("decode user file: %w", err)
	}
	return u, nil
}

func (s *FileStore) write(u fileUser) error {
	raw, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return fmt.Errorf("encode user file: %w", err)
	}
	if err := os.WriteFile(s.path(u.Username), raw, 0o600); err != nil {
		return fmt.Errorf("write user file: %w", err)
	}
	return nil
}

// CreateUser writes a new credential file.
func (s *FileStore) CreateUser(u User) error {
	if _, err := s.read(u.Username); err == nil {
		return ErrUserExists
	}
	return s.write(fileUser{
		Username:         u.Username,
		PasswordHash:     u.PasswordHash,
		SecurityQuestion: u.SecurityQuestion,
		AnswerHash:       u.AnswerHash,
	})
}

// GetUser reads a credential file.
func (s *FileStore) GetUser(username string) (User, error) {
	u, err := s.read(username)
	if err != nil {
		return User{}, err
	}
	return User{
		Username:         u.Username,
		PasswordHash:     u.PasswordHash,
		SecurityQuestion: u.SecurityQuestion,
		AnswerHash:       u.AnswerHash,
	}, nil
}

// UpdatePasswordHash rewrites the credential file with a new hash.
func (s *FileStore) UpdatePasswordHash(username, hash string) error {
	u, err := s.read(username)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return s.write(u)
}

// Load returns the user's dashboard data.
func (s *FileStore) Load(userKey string) (ledger.UserData, error) {
	u, err := s.read(userKey)
	if err != nil {
		return ledger.UserData{}, err
	}
	if u.Data == nil {
		return ledger.UserData{}, ErrNotFound
	}
	return *u.Data, nil
}

// Save replaces the user's dashboard data. A save for a user with no
// credential file still succeeds: an offline save must never lose data.
func (s *FileStore) Save(userKey string, data ledger.UserData) error {
	u, err := s.read(userKey)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if u.Username == "" {
		u.Username = userKey
	}
	u.Data = &data
	return s.write(u)
}
