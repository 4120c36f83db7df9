package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNegativeAmount  = errors.New("withdrawal and deposit must be non-negative")
	ErrBothSidesSet    = errors.New("a transaction cannot carry both a withdrawal and a deposit")
	ErrMissingAccount  = errors.New("transaction account id is required")
	ErrEmptyDescripton = errors.New("transaction description is required")
)

// Transaction list filter types
const (
	FilterTypeAll               = "all"
	FilterTypeUncategorised     = "uncategorised"
	FilterTypeCategorised       = "categorised"
	FilterTypeInternalTransfers = "internal_transfers"
	FilterTypeHidden            = "hidden"
)

// IsValidFilterType checks if the provided filter type is recognized
func IsValidFilterType(filterType string) bool {
	switch filterType {
	case "", FilterTypeAll, FilterTypeUncategorised, FilterTypeCategorised,
		FilterTypeInternalTransfers, FilterTypeHidden:
		return true
	}
	return false
}

// Transaction is one ledger row imported from a bank statement. Amounts are
// kept as two non-negative sides rather than one signed field; at most one
// side is non-zero.
type Transaction struct {
	ID                 int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	Date               time.Time        `gorm:"type:date;not null;index" json:"date"`
	AccountID          string           `gorm:"type:varchar(50);not null;index" json:"account_id"`
	Description        string           `gorm:"type:text;not null" json:"description"`
	Withdrawal         decimal.Decimal  `gorm:"type:decimal(15,2);not null;default:0" json:"withdrawal"`
	Deposit            decimal.Decimal  `gorm:"type:decimal(15,2);not null;default:0" json:"deposit"`
	CategoryID         *string          `gorm:"type:varchar(50);index" json:"category_id,omitempty"`
	TaxType            string           `gorm:"type:varchar(10)" json:"tax_type,omitempty"`
	Balance            *decimal.Decimal `gorm:"type:decimal(15,2)" json:"balance,omitempty"`
	StatementReference string           `gorm:"type:varchar(100)" json:"statement_reference,omitempty"`
	IsHidden           bool             `gorm:"not null;default:false" json:"is_hidden"`
	IsMatched          bool             `gorm:"not null;default:false" json:"is_matched"`
	IsInternalTransfer bool             `gorm:"not null;default:false" json:"is_internal_transfer"`
	CreatedAt          time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time        `gorm:"not null" json:"updated_at"`

	// Associations
	Account  BankAccount `gorm:"foreignKey:AccountID" json:"-"`
	Category *Category   `gorm:"foreignKey:CategoryID" json:"-"`
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}
	return t.Validate()
}

// BeforeUpdate hook for Transaction
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return nil
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.AccountID == "" {
		return ErrMissingAccount
	}
	if t.Description == "" {
		return ErrEmptyDescripton
	}
	if t.Withdrawal.IsNegative() || t.Deposit.IsNegative() {
		return ErrNegativeAmount
	}
	if t.Withdrawal.IsPositive() && t.Deposit.IsPositive() {
		return ErrBothSidesSet
	}
	return nil
}

// Amount returns the non-zero side of the transaction as a magnitude.
// Zero-amount entries return zero.
func (t *Transaction) Amount() decimal.Decimal {
	if t.Withdrawal.IsPositive() {
		return t.Withdrawal
	}
	return t.Deposit
}

// SignedAmount returns deposit minus withdrawal, the signed single-field view
// used for fingerprinting and transfer matching.
func (t *Transaction) SignedAmount() decimal.Decimal {
	return t.Deposit.Sub(t.Withdrawal)
}

// IsCategorized reports whether the transaction has a category assigned.
func (t *Transaction) IsCategorized() bool {
	return t.CategoryID != nil && *t.CategoryID != ""
}

// NormalizeDescription lower-cases and trims a statement description for
// duplicate detection, so "ALDI " and "aldi" fingerprint identically.
func NormalizeDescription(description string) string {
	return strings.ToLower(strings.TrimSpace(description))
}

// SplitSignedAmount converts a signed statement amount into the dual-field
// model: positive amounts are deposits, negative ones withdrawals.
func SplitSignedAmount(amount decimal.Decimal) (withdrawal, deposit decimal.Decimal) {
	if amount.IsNegative() {
		return amount.Neg(), decimal.Zero
	}
	return decimal.Zero, amount
}
