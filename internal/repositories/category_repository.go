package repositories

import (
	"errors"
	"fmt"

	"bankledger/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryInUse    = errors.New("category is referenced by transactions")
)

// categoryRepository implements CategoryRepositoryInterface
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepositoryInterface {
	return &categoryRepository{db: db}
}

// Create creates a new category
func (r *categoryRepository) Create(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrCategoryExists
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetByID retrieves a category by its dotted-path id
func (r *categoryRepository) GetByID(id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

// GetAll retrieves all categories ordered by id, which sorts parents before
// their children for dotted-path ids.
func (r *categoryRepository) GetAll() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// GetChildren retrieves the direct children of a category
func (r *categoryRepository) GetChildren(parentID string) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Where("parent_id = ?", parentID).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get child categories: %w", err)
	}
	return categories, nil
}

// Update updates a category
func (r *categoryRepository) Update(category *models.Category) error {
	result := r.db.Model(&models.Category{}).Where("id = ?", category.ID).
		Updates(map[string]interface{}{
			"name":            category.Name,
			"parent_id":       category.ParentID,
			"category_type":   category.CategoryType,
			"tax_type":        category.TaxType,
			"is_bank_account": category.IsBankAccount,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// Delete removes a category. Categories still referenced by transactions or
// child categories cannot be deleted.
func (r *categoryRepository) Delete(id string) error {
	count, err := r.CountTransactions(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	var children int64
	if err := r.db.Model(&models.Category{}).Where("parent_id = ?", id).Count(&children).Error; err != nil {
		return fmt.Errorf("failed to count child categories: %w", err)
	}
	if children > 0 {
		return ErrCategoryInUse
	}

	result := r.db.Where("id = ?", id).Delete(&models.Category{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// Exists checks whether a category with the given id exists
func (r *categoryRepository) Exists(id string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check category existence: %w", err)
	}
	return count > 0, nil
}

// CountTransactions counts ledger rows assigned to the category
func (r *categoryRepository) CountTransactions(categoryID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Transaction{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count category transactions: %w", err)
	}
	return count, nil
}
