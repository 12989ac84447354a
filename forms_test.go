package main

import (
	"testing"

	"fintrack/models"
)

func TestTransactionFormParse(t *testing.T) {
	cats := []models.Category{{ID: 7, UserID: 1, Name: "Groceries"}}

	cases := []struct {
		name string
		form TransactionForm
		ok   bool
	}{
		{"valid", TransactionForm{Amount: "12.34", Kind: "expense", Date: "2024-03-01"}, true},
		{"comma decimal", TransactionForm{Amount: "12,34", Kind: "expense", Date: "2024-03-01"}, true},
		{"signed amount", TransactionForm{Amount: "-50.00", Kind: "expense", Date: "2024-03-01"}, true},
		{"owned category", TransactionForm{Amount: "1", Kind: "income", Date: "2024-03-01", CategoryID: "7"}, true},
		{"empty date defaults", TransactionForm{Amount: "1", Kind: "income"}, true},
		{"zero amount", TransactionForm{Amount: "0", Kind: "expense", Date: "2024-03-01"}, false},
		{"not a number", TransactionForm{Amount: "abc", Kind: "expense", Date: "2024-03-01"}, false},
		{"three decimals", TransactionForm{Amount: "1.234", Kind: "expense", Date: "2024-03-01"}, false},
		{"too large", TransactionForm{Amount: "10000000000", Kind: "expense", Date: "2024-03-01"}, false},
		{"bad kind", TransactionForm{Amount: "1", Kind: "transfer", Date: "2024-03-01"}, false},
		{"bad date", TransactionForm{Amount: "1", Kind: "expense", Date: "01/03/2024"}, false},
		{"foreign category", TransactionForm{Amount: "1", Kind: "income", Date: "2024-03-01", CategoryID: "99"}, false},
		{"garbage category", TransactionForm{Amount: "1", Kind: "income", Date: "2024-03-01", CategoryID: "x"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in, errs := tc.form.Parse(cats)
			if tc.ok && errs.Has() {
				t.Fatalf("expected valid, got %v", errs)
			}
			if !tc.ok && !errs.Has() {
				t.Fatalf("expected errors, got input %+v", in)
			}
		})
	}

	// description length boundary
	long := make([]byte, 201)
	for i := range long {
		long[i] = 'x'
	}
	f := TransactionForm{Amount: "1", Kind: "expense", Date: "2024-03-01", Description: string(long)}
	if _, errs := f.Parse(nil); !errs.Has() {
		t.Fatal("201-char description accepted")
	}
}

func TestRegisterFormValidate(t *testing.T) {
	cases := []struct {
		name string
		form RegisterForm
		ok   bool
	}{
		{"valid", RegisterForm{Username: "alice", Email: "a@example.com", Password: "secret1", Password2: "secret1"}, true},
		{"short username", RegisterForm{Username: "al", Email: "a@example.com", Password: "secret1", Password2: "secret1"}, false},
		{"missing email", RegisterForm{Username: "alice", Password: "secret1", Password2: "secret1"}, false},
		{"bad email", RegisterForm{Username: "alice", Email: "nope", Password: "secret1", Password2: "secret1"}, false},
		{"short password", RegisterForm{Username: "alice", Email: "a@example.com", Password: "12345", Password2: "12345"}, false},
		{"mismatch", RegisterForm{Username: "alice", Email: "a@example.com", Password: "secret1", Password2: "secret2"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := tc.form.Validate()
			if tc.ok != !errs.Has() {
				t.Fatalf("ok=%v but errors=%v", tc.ok, errs)
			}
		})
	}
}

func TestCategoryFormValidate(t *testing.T) {
	if errs := (CategoryForm{Name: "Groceries", Kind: "expense"}).Validate(); errs.Has() {
		t.Fatalf("valid form rejected: %v", errs)
	}
	if errs := (CategoryForm{Name: "Groceries"}).Validate(); errs.Has() {
		t.Fatalf("empty kind should be allowed: %v", errs)
	}
	if errs := (CategoryForm{Name: ""}).Validate(); !errs.Has() {
		t.Fatal("empty name accepted")
	}
	if errs := (CategoryForm{Name: "x", Kind: "transfer"}).Validate(); !errs.Has() {
		t.Fatal("bad kind accepted")
	}
}
