package models

import "time"

// TokenKeyLength is the length of an issued token key (40 hex characters).
const TokenKeyLength = 40

// Token is an opaque bearer token. Keys never expire; a token stays valid
// until its row (or its owning user) is deleted.
type Token struct {
	Key       string `gorm:"primaryKey;size:40"`
	UserID    uint   `gorm:"not null;index"`
	User      User
	CreatedAt time.Time
}
