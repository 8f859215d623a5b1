// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repositories for the reference entities
// transactions point at: accounts, categories, and legal cases.
package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/advokatia/go-finance-backend/internal/domain"
)

// CreateAccount inserts a new account row.
func CreateAccount(ctx context.Context, db *gorm.DB, a *domain.Account) error {
	return db.WithContext(ctx).Create(a).Error
}

// ListAccounts returns all accounts belonging to the user.
func ListAccounts(ctx context.Context, db *gorm.DB, userID string) ([]domain.Account, error) {
	var out []domain.Account
	err := db.WithContext(ctx).Where("user_id = ?", userID).Order("name ASC").Find(&out).Error
	return out, err
}

// GetAccount fetches an account by ID ensuring it belongs to the user.
func GetAccount(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Account, error) {
	var out domain.Account
	err := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAccount soft-deletes an account owned by userID.
func DeleteAccount(ctx context.Context, db *gorm.DB, id, userID string) error {
	res := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Account{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateCategory inserts a new category row.
func CreateCategory(ctx context.Context, db *gorm.DB, c *domain.Category) error {
	return db.WithContext(ctx).Create(c).Error
}

// ListCategories returns all categories belonging to the user.
func ListCategories(ctx context.Context, db *gorm.DB, userID string) ([]domain.Category, error) {
	var out []domain.Category
	err := db.WithContext(ctx).Where("user_id = ?", userID).Order("name ASC").Find(&out).Error
	return out, err
}

// DeleteCategory soft-deletes a category owned by userID.
func DeleteCategory(ctx context.Context, db *gorm.DB, id, userID string) error {
	res := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Category{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateLegalCase inserts a new legal case row.
func CreateLegalCase(ctx context.Context, db *gorm.DB, lc *domain.LegalCase) error {
	return db.WithContext(ctx).Create(lc).Error
}

// ListLegalCases returns all legal cases belonging to the user.
func ListLegalCases(ctx context.Context, db *gorm.DB, userID string) ([]domain.LegalCase, error) {
	var out []domain.LegalCase
	err := db.WithContext(ctx).Where("user_id = ?", userID).Order("title ASC").Find(&out).Error
	return out, err
}

// GetLegalCase fetches a legal case by ID ensuring it belongs to the user.
func GetLegalCase(ctx context.Context, db *gorm.DB, id, userID string) (*domain.LegalCase, error) {
	var out domain.LegalCase
	err := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteLegalCase soft-deletes a legal case owned by userID.
func DeleteLegalCase(ctx context.Context, db *gorm.DB, id, userID string) error {
	res := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&domain.LegalCase{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
