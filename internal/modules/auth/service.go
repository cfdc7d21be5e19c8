package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"questionbank/internal/domain"
	"questionbank/internal/pkg/validator"
	"questionbank/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

// Session is the explicit session context handed to protected handlers.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

func sessionFromRow(row *domain.AuthSession) *Session {
	return &Session{
		ID:        row.ID,
		UserID:    row.UserID,
		Email:     row.Email,
		ExpiresAt: row.ExpiresAt,
	}
}

// Service is the email/password auth contract: sign-in returns a session
// and its bearer token, sign-out revokes the session server-side, and
// Current re-validates a token against the stored session.
type Service struct {
	users    UserRepositoryInterface
	sessions SessionRepositoryInterface
	tokens   tokenService
	now      func() time.Time
}

func NewService(users UserRepositoryInterface, sessions SessionRepositoryInterface, tokens tokenService) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		now:      time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignIn checks the credential and opens a new session.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, string, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	now := s.now().UTC()
	row := &domain.AuthSession{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokens.TTL()),
	}
	if err := s.sessions.Create(ctx, row); err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email, row.ID, row.ExpiresAt)
	if err != nil {
		_ = s.sessions.Revoke(ctx, row.ID)
		return nil, "", fmt.Errorf("sign token: %w", err)
	}

	return sessionFromRow(row), token, nil
}

// SignOut revokes a session. Signing out twice is not an error.
func (s *Service) SignOut(ctx context.Context, sessionID string) error {
	return s.sessions.Revoke(ctx, sessionID)
}

// Current returns the live session behind token. The signature alone is
// not enough: the session must still exist, unrevoked and unexpired.
func (s *Service) Current(ctx context.Context, token string) (*Session, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	row, err := s.sessions.GetByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if row.IsRevoked() {
		return nil, ErrSessionRevoked
	}
	if row.IsExpired(s.now()) {
		return nil, ErrSessionExpired
	}
	if row.UserID != claims.UserID {
		return nil, ErrUnauthorized
	}

	return sessionFromRow(row), nil
}

// CreateUser registers a credential. It does not grant admin rights.
func (s *Service) CreateUser(ctx context.Context, email, password string) (*domain.AuthUser, error) {
	email = normalizeEmail(email)
	if !validator.IsEmail(email) {
		return nil, ErrInvalidEmail
	}
	if err := s.validateEmailUnique(ctx, email); err != nil {
		return nil, err
	}
	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.AuthUser{Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// SetPassword replaces the password of an existing credential.
func (s *Service) SetPassword(ctx context.Context, email, password string) error {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	hash, err := s.hashPassword(password)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, hash)
}

func (s *Service) validateEmailUnique(ctx context.Context, email string) error {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return ErrEmailAlreadyExists
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

func (s *Service) hashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
