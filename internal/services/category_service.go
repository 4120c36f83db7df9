package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"bankledger/internal/dto"
	"bankledger/internal/models"
	"bankledger/internal/repositories"
)

var ErrParentNotFound = errors.New("parent category does not exist")

// categoryService implements CategoryServiceInterface
type categoryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
}

// NewCategoryService creates the category management service
func NewCategoryService(categoryRepo repositories.CategoryRepositoryInterface) CategoryServiceInterface {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) CreateCategory(req *dto.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{
		ID:           req.ID,
		Name:         req.Name,
		CategoryType: req.CategoryType,
		TaxType:      req.TaxType,
	}
	if req.ParentID != "" {
		parentID := req.ParentID
		category.ParentID = &parentID
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	if category.ParentID != nil {
		exists, err := s.categoryRepo.Exists(*category.ParentID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrParentNotFound
		}
	}

	exists, err := s.categoryRepo.Exists(category.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, repositories.ErrCategoryExists
	}

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) GetCategory(id string) (*models.Category, error) {
	return s.categoryRepo.GetByID(id)
}

func (s *categoryService) GetAllCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

func (s *categoryService) UpdateCategory(id string, req *dto.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		category.Name = req.Name
	}
	if req.TaxType != "" {
		if !models.IsValidTaxType(req.TaxType) {
			return nil, models.ErrInvalidTaxType
		}
		category.TaxType = req.TaxType
	}

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, fmt.Errorf("failed to update category %s: %w", id, err)
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(id string) error {
	return s.categoryRepo.Delete(id)
}

// NextChildID allocates the next free dotted id under a parent: one past the
// highest existing child number, or "<parent>.1" for the first child.
func (s *categoryService) NextChildID(parentID string) (string, error) {
	if _, err := s.categoryRepo.GetByID(parentID); err != nil {
		return "", err
	}

	children, err := s.categoryRepo.GetChildren(parentID)
	if err != nil {
		return "", err
	}

	maxChild := 0
	for _, child := range children {
		segments := strings.Split(child.ID, ".")
		number, err := strconv.Atoi(segments[len(segments)-1])
		if err != nil {
			continue
		}
		if number > maxChild {
			maxChild = number
		}
	}

	return fmt.Sprintf("%s.%d", parentID, maxChild+1), nil
}
