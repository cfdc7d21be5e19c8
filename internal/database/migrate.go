package database

import (
	"fmt"

	"gorm.io/gorm"

	"questionbank/internal/domain"
)

// Models lists every table owned by the service, parents first.
func Models() []interface{} {
	return []interface{}{
		&domain.Branch{},
		&domain.Semester{},
		&domain.ExamType{},
		&domain.Paper{},
		&domain.AuthUser{},
		&domain.AuthSession{},
		&domain.AdminUser{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	for _, m := range Models() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("migrate %T: %w", m, err)
		}
	}

	// Rows written before subject_folded existed.
	err := db.Model(&domain.Paper{}).
		Where("subject_folded = '' AND subject_name IS NOT NULL AND subject_name <> ''").
		UpdateColumn("subject_folded", gorm.Expr("LOWER(subject_name)")).Error
	if err != nil {
		return fmt.Errorf("backfill subject_folded: %w", err)
	}
	return nil
}
