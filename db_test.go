package main

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"fintrack/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the package-global handle at a fresh in-memory
// database so the full stack runs in tests without postgres.
func setupTestDB(t *testing.T) {
	t.Helper()
	name := strings.NewReplacer("/", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	// a single connection keeps the shared in-memory database alive
	sqlDB.SetMaxOpenConns(1)
	db = gdb
	migrateDB()
	secretKey = []byte("test-secret")
	t.Cleanup(func() { _ = sqlDB.Close() })
}

func mustRegister(t *testing.T, username string) models.User {
	t.Helper()
	u, err := Register(username, username+"@example.com", "pass123")
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return u
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date %s: %v", s, err)
	}
	return d
}

func mustAmount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse amount %s: %v", s, err)
	}
	return d
}

func mustTx(t *testing.T, userID uint, amount, kind, date, desc string, catID *uint) models.Transaction {
	t.Helper()
	tx, err := createTransaction(userID, TransactionInput{
		Amount:      mustAmount(t, amount),
		Kind:        kind,
		Description: desc,
		Date:        mustDate(t, date),
		CategoryID:  catID,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	return tx
}
