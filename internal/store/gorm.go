package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/realtydash/realty-dashboard/internal/config"
	"github.com/realtydash/realty-dashboard/internal/ledger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// userModel is the SQLite row backing a user: credentials plus the dashboard
// data as a single JSON blob, mirroring the one-blob-per-user contract of the
// hosted backend.
type userModel struct {
	Username         string `gorm:"primaryKey;size:255"`
	PasswordHash     string `gorm:"size:255;not null"`
	SecurityQuestion string
	AnswerHash       string `gorm:"size:255"`
	Data             string // JSON-encoded ledger.UserData; empty until first save
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (userModel) TableName() string { return "users" }

// GormStore is the primary persistence backend.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the SQLite database with basic tuning and migrates the
// users table.
func NewGormStore(cfg config.DatabaseConfig) (*GormStore, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	gormLogger := logger.Default
	if !cfg.LogMode {
		gormLogger = gormLogger.LogMode(logger.Silent)
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// SQLite performance and reliability tuning
	_, _ = sqlDB.Exec("PRAGMA journal_mode = WAL;")
	_, _ = sqlDB.Exec("PRAGMA synchronous = NORMAL;")

	if err := db.AutoMigrate(&userModel{}); err != nil {
		return nil, fmt.Errorf("migrate users table: %w", err)
	}

	return &GormStore{db: db}, nil
}

// CreateUser inserts a credential record.
func (s *GormStore) CreateUser(u User) error {
	var count int64
	if err := s.db.Model(&userModel{}).
		Where("LOWER(username) = LOWER(?)", u.Username).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return ErrUserExists
	}

	row := userModel{
		Username:         u.Username,
		PasswordHash:     u.PasswordHash,
		SecurityQuestion: u.SecurityQuestion,
		AnswerHash:       u.AnswerHash,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUser fetches a credential record.
func (s *GormStore) GetUser(username string) (User, error) {
	var row userModel
	err := s.db.Where("username = ?", username).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("get user: %w", err)
	}
	return User{
		Username:         row.Username,
		PasswordHash:     row.PasswordHash,
		SecurityQuestion: row.SecurityQuestion,
		AnswerHash:       row.AnswerHash,
	}, nil
}

// UpdatePasswordHash replaces a user's password hash after a reset.
func (s *GormStore) UpdatePasswordHash(username, hash string) error {
	res := s.db.Model(&userModel{}).
		Where("username = ?", username).
		Update("password_hash", hash)
	if res.Error != nil {
		return fmt.Errorf("update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Load returns the user's dashboard data. ErrNotFound covers both a missing
// user and a user who has never saved.
func (s *GormStore) Load(userKey string) (ledger.UserData, error) {
	var row userModel
	err := s.db.Where("username = ?", userKey).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ledger.UserData{}, ErrNotFound
	}
	if err != nil {
		return ledger.UserData{}, fmt.Errorf("load data: %w", err)
	}
	if row.Data == "" {
		return ledger.UserData{}, ErrNotFound
	}

	var data ledger.UserData
	if err := json.Unmarshal([]byte(row.Data), &data); err != nil {
		return ledger.UserData{}, fmt.Errorf("decode data: %w", err)
	}
	return data, nil
}

// Save replaces the user's dashboard data blob.
func (s *GormStore) Save(userKey string, data ledger.UserData) error {
	blob, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode data: %w", err)
	}
	res := s.db.Model(&userModel{}).
		Where("username = ?", userKey).
		Update("data", string(blob))
	if res.Error != nil {
		return fmt.Errorf("save data: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
