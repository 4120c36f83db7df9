package models

import (
	"errors"
	"strings"
	"time"
)

const (
	CategoryTypeGroup       = "group"
	CategoryTypeTransaction = "transaction"

	TaxTypeGST  = "GST"
	TaxTypeFRE  = "FRE"
	TaxTypeNT   = "NT"
	TaxTypeNone = ""
)

// InternalTransferCategoryID is the sentinel rule target meaning "mark the
// transaction as an internal transfer" instead of assigning a category.
const InternalTransferCategoryID = "0"

var (
	ErrInvalidCategoryType = errors.New("invalid category type")
	ErrInvalidTaxType      = errors.New("invalid tax type")
	ErrInvalidCategoryID   = errors.New("invalid category id")
)

// Category is a node in the category forest. IDs are dotted hierarchical
// paths ("2.1.1"); the parent link is redundant with the path but kept so the
// hierarchy can be rebuilt without string parsing.
type Category struct {
	ID            string    `gorm:"type:varchar(50);primary_key" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	ParentID      *string   `gorm:"type:varchar(50);index" json:"parent_id,omitempty"`
	CategoryType  string    `gorm:"type:varchar(20);not null" json:"category_type"`
	TaxType       string    `gorm:"type:varchar(10)" json:"tax_type,omitempty"`
	IsBankAccount bool      `gorm:"not null;default:false" json:"is_bank_account"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`

	// Associations
	Parent *Category `gorm:"foreignKey:ParentID" json:"-"`
}

// TableName returns the table name for Category
func (c *Category) TableName() string {
	return "categories"
}

// Validate validates the category fields
func (c *Category) Validate() error {
	if !IsValidCategoryID(c.ID) {
		return ErrInvalidCategoryID
	}
	if c.Name == "" {
		return errors.New("category name is required")
	}
	if !IsValidCategoryType(c.CategoryType) {
		return ErrInvalidCategoryType
	}
	if !IsValidTaxType(c.TaxType) {
		return ErrInvalidTaxType
	}
	return nil
}

// IsAssignable reports whether transactions may be categorized under this
// category. Group categories exist purely for hierarchy and filtering.
func (c *Category) IsAssignable() bool {
	return c.CategoryType == CategoryTypeTransaction
}

// IsValidCategoryType checks if the category type is valid
func IsValidCategoryType(categoryType string) bool {
	switch categoryType {
	case CategoryTypeGroup, CategoryTypeTransaction:
		return true
	default:
		return false
	}
}

// IsValidTaxType checks if the tax type is valid
func IsValidTaxType(taxType string) bool {
	switch taxType {
	case TaxTypeGST, TaxTypeFRE, TaxTypeNT, TaxTypeNone:
		return true
	default:
		return false
	}
}

// IsValidCategoryID checks that an id is a dotted path of positive integers
// ("3", "2.1", "2.1.4"). The internal-transfer sentinel "0" is not a real
// category id.
func IsValidCategoryID(id string) bool {
	if id == "" || id == InternalTransferCategoryID {
		return false
	}
	for _, part := range strings.Split(id, ".") {
		if part == "" {
			return false
		}
		for _, r := range part {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}
