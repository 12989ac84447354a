package main

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"fintrack/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// FieldError is a single user-visible validation failure.
type FieldError struct {
	Field   string
	Message string
}

type FieldErrors []FieldError

func (e FieldErrors) Has() bool { return len(e) > 0 }

// Field validators. Each returns "" when the value passes, a user-visible
// message otherwise; per-form Validate methods compose them.

func required(v string) string {
	if strings.TrimSpace(v) == "" {
		return "This field is required."
	}
	return ""
}

func lengthBetween(v string, min, max int) string {
	if len(v) < min || len(v) > max {
		return fmt.Sprintf("Must be between %d and %d characters.", min, max)
	}
	return ""
}

func validEmail(v string) string {
	if _, err := mail.ParseAddress(v); err != nil {
		return "Enter a valid email address."
	}
	return ""
}

func validKind(v string) string {
	if v != models.KindIncome && v != models.KindExpense {
		return "Type must be income or expense."
	}
	return ""
}

// maxAmount keeps values inside the decimal(12,2) column.
var maxAmount = decimal.New(1, 10)

// RegisterForm carries the registration fields.
type RegisterForm struct {
	Username  string
	Email     string
	Password  string
	Password2 string
}

func bindRegisterForm(c *gin.Context) RegisterForm {
	return RegisterForm{
		Username:  strings.TrimSpace(c.PostForm("username")),
		Email:     strings.TrimSpace(c.PostForm("email")),
		Password:  c.PostForm("password"),
		Password2: c.PostForm("password2"),
	}
}

func (f RegisterForm) Validate() FieldErrors {
	var errs FieldErrors
	add := func(field, msg string) {
		if msg != "" {
			errs = append(errs, FieldError{Field: field, Message: msg})
		}
	}
	if msg := required(f.Username); msg != "" {
		add("username", msg)
	} else {
		add("username", lengthBetween(f.Username, 3, 64))
	}
	if msg := required(f.Email); msg != "" {
		add("email", msg)
	} else {
		add("email", validEmail(f.Email))
	}
	add("password", lengthBetween(f.Password, 6, 128))
	if f.Password2 != f.Password {
		add("password2", "Passwords do not match.")
	}
	return errs
}

// LoginForm carries the login fields.
type LoginForm struct {
	Username string
	Password string
}

func bindLoginForm(c *gin.Context) LoginForm {
	return LoginForm{
		Username: strings.TrimSpace(c.PostForm("username")),
		Password: c.PostForm("password"),
	}
}

func (f LoginForm) Validate() FieldErrors {
	var errs FieldErrors
	if msg := required(f.Username); msg != "" {
		errs = append(errs, FieldError{Field: "username", Message: msg})
	}
	if msg := required(f.Password); msg != "" {
		errs = append(errs, FieldError{Field: "password", Message: msg})
	}
	return errs
}

// CategoryForm carries the category fields.
type CategoryForm struct {
	Name string
	Kind string
}

func bindCategoryForm(c *gin.Context) CategoryForm {
	return CategoryForm{
		Name: strings.TrimSpace(c.PostForm("name")),
		Kind: c.PostForm("kind"),
	}
}

func (f CategoryForm) Validate() FieldErrors {
	var errs FieldErrors
	if msg := required(f.Name); msg != "" {
		errs = append(errs, FieldError{Field: "name", Message: msg})
	} else if msg := lengthBetween(f.Name, 1, 64); msg != "" {
		errs = append(errs, FieldError{Field: "name", Message: msg})
	}
	if f.Kind != "" {
		if msg := validKind(f.Kind); msg != "" {
			errs = append(errs, FieldError{Field: "kind", Message: msg})
		}
	}
	return errs
}

// TransactionForm carries the raw transaction form values; Parse validates
// and converts them into a service input.
type TransactionForm struct {
	Amount      string
	Kind        string
	CategoryID  string
	Date        string
	Description string
}

func bindTransactionForm(c *gin.Context) TransactionForm {
	return TransactionForm{
		Amount:      strings.TrimSpace(c.PostForm("amount")),
		Kind:        c.PostForm("type"),
		CategoryID:  c.PostForm("category"),
		Date:        strings.TrimSpace(c.PostForm("date")),
		Description: strings.TrimSpace(c.PostForm("description")),
	}
}

// Parse validates the form against the user's categories. A signed amount
// is accepted; the service folds the sign into the type flag.
func (f TransactionForm) Parse(categories []models.Category) (TransactionInput, FieldErrors) {
	var errs FieldErrors
	var in TransactionInput

	amt, err := decimal.NewFromString(strings.ReplaceAll(f.Amount, ",", "."))
	switch {
	case err != nil || amt.IsZero():
		errs = append(errs, FieldError{Field: "amount", Message: "Enter a non-zero amount."})
	case amt.Exponent() < -2:
		errs = append(errs, FieldError{Field: "amount", Message: "Amounts have at most two decimal places."})
	case amt.Abs().GreaterThanOrEqual(maxAmount):
		errs = append(errs, FieldError{Field: "amount", Message: "Amount is too large."})
	default:
		in.Amount = amt
	}

	if msg := validKind(f.Kind); msg != "" {
		errs = append(errs, FieldError{Field: "type", Message: msg})
	}
	in.Kind = f.Kind

	if f.Date == "" {
		in.Date = time.Now().UTC().Truncate(24 * time.Hour)
	} else if d, err := time.Parse("2006-01-02", f.Date); err != nil {
		errs = append(errs, FieldError{Field: "date", Message: "Enter a date as YYYY-MM-DD."})
	} else {
		in.Date = d
	}

	if len(f.Description) > 200 {
		errs = append(errs, FieldError{Field: "description", Message: "Description is limited to 200 characters."})
	}
	in.Description = f.Description

	if f.CategoryID != "" {
		id64, err := strconv.ParseUint(f.CategoryID, 10, 32)
		owned := false
		if err == nil {
			for _, cat := range categories {
				if cat.ID == uint(id64) {
					owned = true
					break
				}
			}
		}
		if !owned {
			errs = append(errs, FieldError{Field: "category", Message: "Choose one of your categories."})
		} else {
			id := uint(id64)
			in.CategoryID = &id
		}
	}
	return in, errs
}
