package auth

import (
	"context"
	"time"

	"questionbank/internal/domain"
	"questionbank/internal/pkg/jwt"
)

// UserRepositoryInterface lists the credential storage the auth service uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.AuthUser) error
	GetByEmail(ctx context.Context, email string) (*domain.AuthUser, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
}

// SessionRepositoryInterface is the storage for signed-in sessions.
type SessionRepositoryInterface interface {
	Create(ctx context.Context, s *domain.AuthSession) error
	GetByID(ctx context.Context, id string) (*domain.AuthSession, error)
	Revoke(ctx context.Context, id string) error
}

type tokenService interface {
	GenerateToken(userID int64, email, sessionID string, expiresAt time.Time) (string, error)
	ValidateToken(token string) (*jwt.Claims, error)
	TTL() time.Duration
}
