package domain

import "time"

// AuthSession is a signed-in session of an AuthUser.
//
// The session row is the source of truth: a token whose session was revoked
// or has expired is rejected even if its signature is still valid.
type AuthSession struct {
	ID string `json:"id" gorm:"type:varchar(36);primaryKey"`

	UserID int64    `json:"user_id" gorm:"index;not null"`
	User   AuthUser `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	Email string `json:"email" gorm:"size:255;not null"`

	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"index;not null"`
	RevokedAt *time.Time `json:"revoked_at" gorm:"index"`
}

func (AuthSession) TableName() string { return "auth_sessions" }

func (s *AuthSession) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

func (s *AuthSession) IsRevoked() bool {
	return s.RevokedAt != nil
}
