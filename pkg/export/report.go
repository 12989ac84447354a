// Package export renders a user's transaction set as CSV, PDF or a
// monthly summary chart.
package export

import (
	"time"

	"fintrack/models"

	"github.com/shopspring/decimal"
)

// Row is one exported transaction line.
type Row struct {
	Date        time.Time
	Category    string
	Description string
	Amount      decimal.Decimal
	Kind        string
}

// Header is the documented CSV column layout. The PDF table uses the same
// columns.
var Header = []string{"date", "category", "description", "amount", "type"}

// FromTransactions converts model rows to export rows, preserving order.
func FromTransactions(items []models.Transaction) []Row {
	rows := make([]Row, 0, len(items))
	for _, t := range items {
		r := Row{Date: t.Date, Description: t.Description, Amount: t.Amount, Kind: t.Kind}
		if t.Category != nil {
			r.Category = t.Category.Name
		}
		rows = append(rows, r)
	}
	return rows
}

func (r Row) cells() []string {
	return []string{r.Date.Format("2006-01-02"), r.Category, r.Description, r.Amount.StringFixed(2), r.Kind}
}

// totals sums income and expense over the rows.
func totals(rows []Row) (income, expense decimal.Decimal) {
	income, expense = decimal.Zero, decimal.Zero
	for _, r := range rows {
		if r.Kind == models.KindIncome {
			income = income.Add(r.Amount)
		} else {
			expense = expense.Add(r.Amount)
		}
	}
	return income, expense
}
