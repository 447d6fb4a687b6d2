package models

import "time"

const MaxEmailLength = 255

// User logs in with an email address; there is no separate username.
// Email is stored trimmed and lowercased.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string `gorm:"not null"`
	FirstName    string `gorm:"not null;default:''"`
	LastName     string `gorm:"not null;default:''"`
	IsStaff      bool   `gorm:"not null;default:false"`
	IsSuperuser  bool   `gorm:"not null;default:false"`
	IsActive     bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
}
