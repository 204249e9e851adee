package auth

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/realtydash/realty-dashboard/internal/ledger"
	"github.com/realtydash/realty-dashboard/internal/store"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials covers both unknown users and wrong passwords so
	// the API does not leak which usernames exist.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrBadSecurityAnswer indicates a failed password-reset challenge.
	ErrBadSecurityAnswer = errors.New("auth: security answer incorrect")
)

// Usernames double as storage keys, so they are restricted to a filesystem-
// and URL-safe alphabet.
var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

// Service implements register/login/reset over the persistence boundary.
type Service struct {
	store      store.Store
	bcryptCost int
	logger     *zap.Logger
	clock      func() time.Time
}

// NewService constructs the auth service. If logger is nil, it will use a
// no-op logger to prevent panics.
func NewService(st store.Store, bcryptCost int, logger *zap.Logger) *Service {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: st, bcryptCost: bcryptCost, logger: logger, clock: time.Now}
}

// WithClock overrides the service clock; intended for tests.
func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

// normalizeAnswer makes security answers case- and whitespace-insensitive
// before hashing, matching how they are checked on reset.
func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

// Register creates a user and seeds their dashboard with the starter dataset
// so every derivation has non-degenerate output on first login.
func (s *Service) Register(username, password, securityQuestion, securityAnswer string) error {
	username = strings.TrimSpace(username)
	if !usernameRe.MatchString(username) {
		return fmt.Errorf("auth: username must be 3-20 letters, digits, or underscores")
	}
	if len(password) < 8 {
		return fmt.Errorf("auth: password must be at least 8 characters")
	}
	if strings.TrimSpace(securityQuestion) == "" || strings.TrimSpace(securityAnswer) == "" {
		return fmt.Errorf("auth: security question and answer are required")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	answerHash, err := bcrypt.GenerateFromPassword([]byte(normalizeAnswer(securityAnswer)), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash answer: %w", err)
	}

	err = s.store.CreateUser(store.User{
		Username:         username,
		PasswordHash:     string(passwordHash),
		SecurityQuestion: securityQuestion,
		AnswerHash:       string(answerHash),
	})
	if err != nil {
		return err
	}

	if err := s.store.Save(username, ledger.SeedUserData(s.clock())); err != nil {
		// The account exists; the first load will seed instead.
		s.logger.Warn("failed to seed initial data",
			zap.String("op", "auth.Service.Register"),
			zap.String("username", username),
			zap.Error(err),
		)
	}
	return nil
}

// Login verifies a password.
func (s *Service) Login(username, password string) error {
	u, err := s.store.GetUser(username)
	if errors.Is(err, store.ErrNotFound) {
		return ErrInvalidCredentials
	}
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// SecurityQuestion returns the user's recovery question.
func (s *Service) SecurityQuestion(username string) (string, error) {
	u, err := s.store.GetUser(username)
	if err != nil {
		return "", err
	}
	return u.SecurityQuestion, nil
}

// ResetPassword replaces the password after a successful security-answer
// challenge.
func (s *Service) ResetPassword(username, answer, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("auth: password must be at least 8 characters")
	}

	u, err := s.store.GetUser(username)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.AnswerHash), []byte(normalizeAnswer(answer))) != nil {
		return ErrBadSecurityAnswer
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.store.UpdatePasswordHash(username, string(newHash))
}
