package repository

import (
	"context"
	"time"

	"questionbank/internal/domain"

	"gorm.io/gorm"
)

// SessionRepository provides DB access for auth sessions.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.AuthSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (*domain.AuthSession, error) {
	var s domain.AuthSession
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Revoke marks the session revoked. Revoking twice is a no-op.
func (r *SessionRepository) Revoke(ctx context.Context, id string) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&domain.AuthSession{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", now).Error
}

// DeleteStale removes sessions that expired before now, and revoked sessions
// older than revokedBefore.
func (r *SessionRepository) DeleteStale(ctx context.Context, now, revokedBefore time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("expires_at < ? OR (revoked_at IS NOT NULL AND created_at < ?)", now, revokedBefore).
		Delete(&domain.AuthSession{})
	return tx.RowsAffected, tx.Error
}
