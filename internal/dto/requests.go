package dto

import "github.com/shopspring/decimal"

// CreateCategoryRequest creates a category in the chart of categories
type CreateCategoryRequest struct {
	ID           string `json:"id" validate:"required,category_id"`
	Name         string `json:"name" validate:"required,max=255"`
	ParentID     string `json:"parent_id" validate:"omitempty,category_id"`
	CategoryType string `json:"category_type" validate:"required,oneof=group transaction"`
	TaxType      string `json:"tax_type" validate:"omitempty,tax_type"`
}

// UpdateCategoryRequest updates mutable category fields
type UpdateCategoryRequest struct {
	Name    string `json:"name" validate:"omitempty,max=255"`
	TaxType string `json:"tax_type" validate:"omitempty,tax_type"`
}

// CreateAccountRequest registers a bank account against a category id
type CreateAccountRequest struct {
	ID            string `json:"id" validate:"required,category_id"`
	Name          string `json:"name" validate:"required,max=255"`
	AccountNumber string `json:"account_number" validate:"required,max=20"`
	BSB           string `json:"bsb" validate:"required,bsb"`
	BankName      string `json:"bank_name" validate:"required,max=255"`
}

// UpdateAccountRequest updates mutable bank account fields
type UpdateAccountRequest struct {
	Name          string `json:"name" validate:"omitempty,max=255"`
	AccountNumber string `json:"account_number" validate:"omitempty,max=20"`
	BSB           string `json:"bsb" validate:"omitempty,bsb"`
	BankName      string `json:"bank_name" validate:"omitempty,max=255"`
}

// ConditionRequest is one description condition in a rule request
type ConditionRequest struct {
	Operator      string `json:"operator" validate:"omitempty,oneof=AND OR"`
	Text          string `json:"text" validate:"required,max=255"`
	CaseSensitive bool   `json:"case_sensitive"`
}

// CreateRuleRequest creates a categorization rule. Conditions are ordered;
// the first must carry no operator.
type CreateRuleRequest struct {
	CategoryID     string             `json:"category_id" validate:"required"`
	AmountOperator string             `json:"amount_operator" validate:"omitempty,amount_operator"`
	AmountValue    *decimal.Decimal   `json:"amount_value"`
	AmountValue2   *decimal.Decimal   `json:"amount_value2"`
	AccountID      string             `json:"account_id" validate:"omitempty"`
	DateRange      string             `json:"date_range" validate:"omitempty,oneof=Any 'Last 30 days' 'Last 90 days' 'This year'"`
	ApplyFuture    *bool              `json:"apply_future"`
	Conditions     []ConditionRequest `json:"conditions" validate:"required,min=1,dive"`
}

// UpdateTransactionRequest patches a single transaction. Nil fields are left
// untouched; an explicit empty CategoryID clears the assignment.
type UpdateTransactionRequest struct {
	CategoryID *string `json:"category_id"`
	IsHidden   *bool   `json:"is_hidden"`
}
