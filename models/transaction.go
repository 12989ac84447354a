package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction kind flags.
const (
	KindIncome  = "income"
	KindExpense = "expense"
)

// Transaction is a single dated financial record belonging to a user.
// Amount is always stored positive; the direction lives in Kind.
type Transaction struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	UserID      uint            `gorm:"index;not null"`
	CategoryID  *uint           `gorm:"index"`
	Category    *Category       `gorm:"foreignKey:CategoryID"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Kind        string          `gorm:"size:10;not null;index"`
	Description string          `gorm:"size:200"`
	Date        time.Time       `gorm:"not null;index"`
}
