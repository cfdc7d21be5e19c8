package domain

import "time"

// AuthUser is a credential known to the auth service. Holding a credential
// does not make someone an admin; see AdminUser.
type AuthUser struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (AuthUser) TableName() string { return "auth_users" }

// AdminUser is an entry of the admin allow-list.
type AdminUser struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (AdminUser) TableName() string { return "admin_users" }
