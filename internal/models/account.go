package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidBSB        = errors.New("invalid BSB format")
	ErrAccountNameEmpty  = errors.New("account name is required")
	ErrNotABankAccount   = errors.New("category is not a bank account")
	ErrAccountIDMismatch = errors.New("bank account id must match its category id")
)

// BankAccount is the bank-account face of a category flagged is_bank_account.
// It shares its primary key with that category.
type BankAccount struct {
	ID             string          `gorm:"type:varchar(50);primary_key" json:"id"`
	Name           string          `gorm:"type:varchar(255);not null" json:"name"`
	AccountNumber  string          `gorm:"type:varchar(20)" json:"account_number"`
	BSB            string          `gorm:"type:varchar(7);column:bsb" json:"bsb"`
	BankName       string          `gorm:"type:varchar(255)" json:"bank_name"`
	CurrentBalance decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"current_balance"`
	LastImportDate *time.Time      `json:"last_import_date,omitempty"`
	CreatedAt      time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null" json:"updated_at"`

	// Associations
	Category Category `gorm:"foreignKey:ID" json:"-"`
}

// TableName returns the table name for BankAccount
func (a *BankAccount) TableName() string {
	return "bank_accounts"
}

// BeforeCreate hook for BankAccount
func (a *BankAccount) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}
	return a.Validate()
}

// BeforeUpdate hook for BankAccount
func (a *BankAccount) BeforeUpdate(tx *gorm.DB) error {
	a.UpdatedAt = time.Now()
	return nil
}

// Validate validates the bank account fields
func (a *BankAccount) Validate() error {
	if !IsValidCategoryID(a.ID) {
		return ErrInvalidCategoryID
	}
	if a.Name == "" {
		return ErrAccountNameEmpty
	}
	if a.BSB != "" && !IsValidBSB(a.BSB) {
		return ErrInvalidBSB
	}
	return nil
}

// IsValidBSB checks an Australian BSB: six digits, optionally hyphenated
// ("063-000" or "063000").
func IsValidBSB(bsb string) bool {
	switch len(bsb) {
	case 6:
		return allDigits(bsb)
	case 7:
		return bsb[3] == '-' && allDigits(bsb[:3]) && allDigits(bsb[4:])
	default:
		return false
	}
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
