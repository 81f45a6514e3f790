package user

import "time"

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"uniqueIndex;size:120" json:"email"`
	PassHash       string    `gorm:"size:255" json:"-"`
	Name           string    `gorm:"size:50" json:"name"`
	RememberDigest string    `gorm:"size:64" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
