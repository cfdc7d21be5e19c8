package repository

import (
	"context"

	"questionbank/internal/domain"

	"gorm.io/gorm"
)

type AuthUserRepository struct {
	db *gorm.DB
}

func NewAuthUserRepository(db *gorm.DB) *AuthUserRepository {
	return &AuthUserRepository{db: db}
}

func (r *AuthUserRepository) Create(ctx context.Context, u *domain.AuthUser) error {
	u.Email = normalizeEmail(u.Email)
	return mapDBError(r.db.WithContext(ctx).Create(u).Error)
}

// GetByEmail is case-insensitive; a miss is gorm.ErrRecordNotFound.
func (r *AuthUserRepository) GetByEmail(ctx context.Context, email string) (*domain.AuthUser, error) {
	var u domain.AuthUser
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", normalizeEmail(email)).
		First(&u)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &u, nil
}

func (r *AuthUserRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	tx := r.db.WithContext(ctx).Model(&domain.AuthUser{}).
		Where("id = ?", id).
		Update("password_hash", hash)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
