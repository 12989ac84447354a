package main

import (
	"errors"
	"strings"
	"time"

	"fintrack/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// TransactionInput carries validated values from a form (or an API caller)
// into the service layer.
type TransactionInput struct {
	Amount      decimal.Decimal
	Kind        string
	Description string
	Date        time.Time
	CategoryID  *uint
}

// normalize folds signed amounts into the kind flag: a negative amount is
// stored as a positive expense regardless of the submitted kind.
func (in *TransactionInput) normalize() {
	if in.Amount.IsNegative() {
		in.Amount = in.Amount.Neg()
		in.Kind = models.KindExpense
	} else if in.Kind == "" {
		in.Kind = models.KindIncome
	}
}

func createTransaction(userID uint, in TransactionInput) (models.Transaction, error) {
	in.normalize()
	t := models.Transaction{
		UserID:      userID,
		Amount:      in.Amount,
		Kind:        in.Kind,
		Description: in.Description,
		Date:        in.Date,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if in.CategoryID != nil {
			// the category must belong to the same user
			var count int64
			tx.Model(&models.Category{}).Where("id = ? AND user_id = ?", *in.CategoryID, userID).Count(&count)
			if count == 0 {
				return ErrNotFound
			}
			t.CategoryID = in.CategoryID
		}
		return tx.Create(&t).Error
	})
	if err != nil {
		return models.Transaction{}, err
	}
	return t, nil
}

func getTransaction(userID, id uint) (models.Transaction, error) {
	var t models.Transaction
	if err := db.Preload("Category").Where("id = ? AND user_id = ?", id, userID).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return t, ErrNotFound
		}
		return t, err
	}
	return t, nil
}

func updateTransaction(userID, id uint, in TransactionInput) error {
	in.normalize()
	return db.Transaction(func(tx *gorm.DB) error {
		var t models.Transaction
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&t).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if in.CategoryID != nil {
			var count int64
			tx.Model(&models.Category{}).Where("id = ? AND user_id = ?", *in.CategoryID, userID).Count(&count)
			if count == 0 {
				return ErrNotFound
			}
		}
		t.Amount = in.Amount
		t.Kind = in.Kind
		t.Description = in.Description
		t.Date = in.Date
		t.CategoryID = in.CategoryID
		return tx.Save(&t).Error
	})
}

func deleteTransaction(userID, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Transaction{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// SearchFilter narrows the transaction listing and the exports.
type SearchFilter struct {
	Query      string
	CategoryID uint   // 0 = all
	Kind       string // "" = all
}

// searchQuery builds the owner-scoped filtered query shared by the list
// page and the exporters. The free-text query matches description, kind or
// category name, case-insensitively.
func searchQuery(userID uint, f SearchFilter) *gorm.DB {
	q := db.Model(&models.Transaction{}).Where("transactions.user_id = ?", userID)
	if f.Query != "" {
		like := "%" + strings.ToLower(f.Query) + "%"
		q = q.Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
			Where("LOWER(transactions.description) LIKE ? OR LOWER(transactions.kind) LIKE ? OR LOWER(categories.name) LIKE ?", like, like, like)
	}
	if f.CategoryID != 0 {
		q = q.Where("transactions.category_id = ?", f.CategoryID)
	}
	if f.Kind != "" {
		q = q.Where("transactions.kind = ?", f.Kind)
	}
	return q
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// searchTransactions returns one page ordered by date then id, newest
// first, plus the total match count for pagination controls.
func searchTransactions(userID uint, f SearchFilter, page, pageSize int) ([]models.Transaction, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	var total int64
	if err := searchQuery(userID, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []models.Transaction
	err := searchQuery(userID, f).Preload("Category").
		Order("transactions.date DESC, transactions.id DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&items).Error
	return items, total, err
}

// searchAll returns every matching transaction in search order, for the
// exporters.
func searchAll(userID uint, f SearchFilter) ([]models.Transaction, error) {
	var items []models.Transaction
	err := searchQuery(userID, f).Preload("Category").
		Order("transactions.date DESC, transactions.id DESC").
		Find(&items).Error
	return items, err
}

// MonthTotal is one month of aggregated activity. Months with no
// transactions stay at zero.
type MonthTotal struct {
	Month   time.Month
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// monthlySummary aggregates income and expense per calendar month of one
// year. Sums are computed with decimals in Go so they stay exact and the
// query stays portable between postgres and sqlite.
func monthlySummary(userID uint, year int) ([]MonthTotal, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	var rows []models.Transaction
	if err := db.Select("amount", "kind", "date").
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]MonthTotal, 12)
	for i := range out {
		out[i].Month = time.Month(i + 1)
		out[i].Income = decimal.Zero
		out[i].Expense = decimal.Zero
	}
	for _, t := range rows {
		m := &out[t.Date.Month()-1]
		if t.Kind == models.KindIncome {
			m.Income = m.Income.Add(t.Amount)
		} else {
			m.Expense = m.Expense.Add(t.Amount)
		}
	}
	return out, nil
}

// Totals holds the all-time dashboard aggregates.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

func accountTotals(userID uint) (Totals, error) {
	var rows []models.Transaction
	if err := db.Select("amount", "kind").Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return Totals{}, err
	}
	t := Totals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, r := range rows {
		if r.Kind == models.KindIncome {
			t.Income = t.Income.Add(r.Amount)
		} else {
			t.Expense = t.Expense.Add(r.Amount)
		}
	}
	t.Balance = t.Income.Sub(t.Expense)
	return t, nil
}

func recentTransactions(userID uint, limit int) ([]models.Transaction, error) {
	var items []models.Transaction
	err := db.Preload("Category").Where("user_id = ?", userID).
		Order("date DESC, id DESC").Limit(limit).Find(&items).Error
	return items, err
}
