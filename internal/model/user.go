package model

import "time"

// Role restricts what a user may access on role-gated routes.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleUser      Role = "user"
)

// User represents a registered account.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Confirmed    bool      `json:"confirmed" gorm:"default:false"`
	RefreshToken *string   `json:"-" gorm:"size:512"` // at most one outstanding refresh token
	Avatar       string    `json:"avatar,omitempty" gorm:"size:512"`
	Role         Role      `json:"role" gorm:"size:50;default:'user'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
