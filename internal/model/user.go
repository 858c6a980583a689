package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User is an account that can lead projects and configure report formats.
// Email is stored lowercase; uniqueness is case-insensitive as a consequence.
type User struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	Name              string    `json:"name" gorm:"type:varchar(20);not null"`
	Email             string    `json:"email" gorm:"type:varchar(100);not null;uniqueIndex"`
	EncryptedPassword string    `json:"-" gorm:"not null"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// BeforeSave normalizes the email before any insert or update hits the
// database.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Email = strings.ToLower(u.Email)
	return nil
}
