package store

import (
	"errors"

	"github.com/realtydash/realty-dashboard/internal/ledger"
	"go.uber.org/zap"
)

// Fallback chains a primary store with a local fallback. Infrastructure
// failures on the primary degrade to the fallback instead of surfacing;
// domain outcomes (user exists, not found on both) propagate. Reads always
// consult the fallback when the primary misses, so users registered while
// the primary was down stay reachable.
type Fallback struct {
	primary  Store
	fallback Store
	logger   *zap.Logger
}

// NewFallback constructs the chained store. If logger is nil, it will use a
// no-op logger to prevent panics.
func NewFallback(primary, fallback Store, logger *zap.Logger) *Fallback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fallback{primary: primary, fallback: fallback, logger: logger}
}

// CreateUser registers on the primary, degrading to the fallback on
// infrastructure failure. A username collision is final.
func (f *Fallback) CreateUser(u User) error {
	err := f.primary.CreateUser(u)
	if err == nil || errors.Is(err, ErrUserExists) {
		return err
	}
	f.logger.Warn("primary store unavailable, registering user in fallback",
		zap.String("op", "store.Fallback.CreateUser"),
		zap.Error(err),
	)
	return f.fallback.CreateUser(u)
}

// GetUser reads from the primary, then the fallback on any failure.
func (f *Fallback) GetUser(username string) (User, error) {
	u, err := f.primary.GetUser(username)
	if err == nil {
		return u, nil
	}
	return f.fallback.GetUser(username)
}

// UpdatePasswordHash updates in the primary, then the fallback if the user
// only exists there.
func (f *Fallback) UpdatePasswordHash(username, hash string) error {
	err := f.primary.UpdatePasswordHash(username, hash)
	if err == nil {
		return nil
	}
	return f.fallback.UpdatePasswordHash(username, hash)
}

// Load reads dashboard data from the primary, then the fallback.
func (f *Fallback) Load(userKey string) (ledger.UserData, error) {
	data, err := f.primary.Load(userKey)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, ErrNotFound) {
		f.logger.Warn("primary store unavailable, loading from fallback",
			zap.String("op", "store.Fallback.Load"),
			zap.Error(err),
		)
	}
	return f.fallback.Load(userKey)
}

// Save writes to the primary, degrading to the fallback so edits survive a
// database outage.
func (f *Fallback) Save(userKey string, data ledger.UserData) error {
	err := f.primary.Save(userKey, data)
	if err == nil {
		return nil
	}
	f.logger.Warn("primary store unavailable, saving to fallback",
		zap.String("op", "store.Fallback.Save"),
		zap.Error(err),
	)
	return f.fallback.Save(userKey, data)
}
