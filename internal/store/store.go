// Package store implements the persistence boundary: user credential records
// and the per-user dashboard data blob, with a primary SQLite store and a
// local JSON-file fallback.
package store

import (
	"errors"

	"github.com/realtydash/realty-dashboard/internal/ledger"
)

var (
	// ErrNotFound indicates the user or their data does not exist.
	ErrNotFound = errors.New("store: not found")

	// ErrUserExists indicates a registration collision.
	ErrUserExists = errors.New("store: user already exists")
)

// User is a stored credential record. Password and security answer are
// bcrypt hashes; the plaintext never reaches this layer.
type User struct {
	Username         string
	PasswordHash     string
	SecurityQuestion string
	AnswerHash       string
}

// UserStore manages credential records.
type UserStore interface {
	CreateUser(u User) error
	GetUser(username string) (User, error)
	UpdatePasswordHash(username, hash string) error
}

// DataStore manages the per-user dashboard data blob. Load returns
// ErrNotFound when no data has been saved for the user; the caller decides
// how to seed a first run.
type DataStore interface {
	Load(userKey string) (ledger.UserData, error)
	Save(userKey string, data ledger.UserData) error
}

// Store is the full persistence boundary.
type Store interface {
	UserStore
	DataStore
}
