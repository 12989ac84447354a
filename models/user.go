package models

import (
	"time"
)

// User model
type User struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time `gorm:"index"`
	Username       string     `gorm:"size:64;not null;unique"`
	Email          string     `gorm:"size:120;not null;unique"`
	HashedPassword []byte     `gorm:"not null"`
	Categories     []Category
	Transactions   []Transaction
}
