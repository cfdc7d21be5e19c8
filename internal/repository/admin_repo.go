package repository

import (
	"context"
	"strings"

	"questionbank/internal/domain"

	"gorm.io/gorm"
)

// AdminRepository manages the admin allow-list.
type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ExistsByEmail reports whether email is on the allow-list. Comparison is
// case-insensitive.
func (r *AdminRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.AdminUser{}).
		Where("LOWER(email) = ?", normalizeEmail(email)).
		Count(&count).Error
	return count > 0, err
}

func (r *AdminRepository) Add(ctx context.Context, email string) (*domain.AdminUser, error) {
	a := &domain.AdminUser{Email: normalizeEmail(email)}
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, mapDBError(err)
	}
	return a, nil
}

// Remove deletes email from the allow-list and reports whether it was present.
func (r *AdminRepository) Remove(ctx context.Context, email string) (bool, error) {
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", normalizeEmail(email)).
		Delete(&domain.AdminUser{})
	return tx.RowsAffected > 0, tx.Error
}

func (r *AdminRepository) List(ctx context.Context) ([]domain.AdminUser, error) {
	admins := []domain.AdminUser{}
	err := r.db.WithContext(ctx).Order("email ASC").Find(&admins).Error
	return admins, err
}
