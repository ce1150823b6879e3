package models

import "time"

type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RoleInterviewer UserRole = "interviewer"
	RoleFrontdesk   UserRole = "frontdesk"
)

// AuthorizedUser is a staff member allowed into the system. Identity comes
// from the external OAuth provider; this table carries the app-level role.
type AuthorizedUser struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Name      string    `gorm:"type:text" json:"name"`
	Role      UserRole  `gorm:"type:text;not null;default:interviewer" json:"role"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AuthorizedUser) TableName() string { return "authorized_users" }

// RefreshToken stores the bcrypt hash of an issued refresh token.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	TokenHash string    `gorm:"type:text;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Revoked   bool      `gorm:"not null;default:false" json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
}

func (RefreshToken) TableName() string { return "refresh_tokens" }
