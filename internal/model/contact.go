package model

import "time"

// Contact is an address-book entry owned by a single user.
type Contact struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Fullname    string    `json:"fullname" gorm:"size:255;not null;index"`
	Email       string    `json:"email" gorm:"size:255;not null;index:idx_owner_email,unique"`
	PhoneNumber string    `json:"phone_number" gorm:"size:50"`
	Birthday    time.Time `json:"birthday"`
	UserID      uint      `json:"user_id" gorm:"not null;index:idx_owner_email,unique"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
