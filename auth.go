package main

import (
	"strings"

	"fintrack/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// defaultCategories are seeded for every new account.
var defaultCategories = []string{"Food", "Transport", "Bills", "Salary", "Shopping", "Other"}

// Register creates a user with a bcrypt-hashed password and seeds the
// default categories in the same database transaction.
func Register(username, email, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	user := models.User{Username: username, Email: email, HashedPassword: hashed}
	err = db.Transaction(func(tx *gorm.DB) error {
		// pre-check existing (optimistic)
		var count int64
		tx.Model(&models.User{}).Where("username = ? OR email = ?", username, email).Count(&count)
		if count > 0 {
			return ErrDuplicateUser
		}
		if err := tx.Create(&user).Error; err != nil {
			if isUniqueConstraintError(err) { // race condition after initial check
				return ErrDuplicateUser
			}
			return err
		}
		for _, name := range defaultCategories {
			if err := tx.Create(&models.Category{UserID: user.ID, Name: name}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Authenticate verifies credentials. The returned error is identical for an
// unknown username and a wrong password so existence is never revealed.
func Authenticate(username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}
