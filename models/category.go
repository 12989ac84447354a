package models

import "time"

// Category is a user-defined label for grouping transactions.
// Names are unique per user, enforced by a composite index.
type Category struct {
	ID           uint `gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	UserID       uint   `gorm:"index;not null;uniqueIndex:idx_user_category_name"`
	Name         string `gorm:"size:64;not null;uniqueIndex:idx_user_category_name"`
	Kind         string `gorm:"size:10"` // "income", "expense" or empty for mixed use
	Transactions []Transaction
}
