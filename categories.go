package main

import (
	"errors"

	"fintrack/models"

	"gorm.io/gorm"
)

func listCategories(userID uint) ([]models.Category, error) {
	var cats []models.Category
	err := db.Where("user_id = ?", userID).Order("name asc").Find(&cats).Error
	return cats, err
}

func getCategory(userID, id uint) (models.Category, error) {
	var cat models.Category
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return cat, ErrNotFound
		}
		return cat, err
	}
	return cat, nil
}

// createCategory adds a category for the user. Names are unique per user.
func createCategory(userID uint, name, kind string) (models.Category, error) {
	cat := models.Category{UserID: userID, Name: name, Kind: kind}
	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		tx.Model(&models.Category{}).Where("user_id = ? AND name = ?", userID, name).Count(&count)
		if count > 0 {
			return ErrDuplicateCategory
		}
		if err := tx.Create(&cat).Error; err != nil {
			if isUniqueConstraintError(err) { // race condition after initial check
				return ErrDuplicateCategory
			}
			return err
		}
		return nil
	})
	return cat, err
}

func updateCategory(userID, id uint, name, kind string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var cat models.Category
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&cat).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		var count int64
		tx.Model(&models.Category{}).Where("user_id = ? AND name = ? AND id <> ?", userID, name, id).Count(&count)
		if count > 0 {
			return ErrDuplicateCategory
		}
		cat.Name = name
		cat.Kind = kind
		return tx.Save(&cat).Error
	})
}

// deleteCategory removes a category. Deletion is blocked while any
// transaction still references it, so historical rows never lose their
// categorization silently.
func deleteCategory(userID, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var cat models.Category
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&cat).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		var inUse int64
		tx.Model(&models.Transaction{}).Where("category_id = ?", cat.ID).Count(&inUse)
		if inUse > 0 {
			return ErrCategoryInUse
		}
		return tx.Delete(&cat).Error
	})
}
