package repositories

import (
	"time"

	"bankledger/internal/models"

	"github.com/shopspring/decimal"
)

// TransactionFilters narrows ledger queries. FilterType is one of the
// models.FilterType* constants; empty string means all.
type TransactionFilters struct {
	AccountID  string
	FilterType string
	Search     string
	StartDate  *time.Time
	EndDate    *time.Time
}

// CategoryRepositoryInterface defines category persistence operations
type CategoryRepositoryInterface interface {
	Create(category *models.Category) error
	GetByID(id string) (*models.Category, error)
	GetAll() ([]models.Category, error)
	GetChildren(parentID string) ([]models.Category, error)
	Update(category *models.Category) error
	Delete(id string) error
	Exists(id string) (bool, error)
	CountTransactions(categoryID string) (int64, error)
}

// AccountRepositoryInterface defines bank account persistence operations
type AccountRepositoryInterface interface {
	Create(account *models.BankAccount) error
	GetByID(id string) (*models.BankAccount, error)
	GetAll() ([]models.BankAccount, error)
	Update(account *models.BankAccount) error
	Delete(id string) error
	UpdateBalanceAndImportDate(id string, balance decimal.Decimal, importDate time.Time) error
}

// TransactionRepositoryInterface defines ledger transaction persistence operations
type TransactionRepositoryInterface interface {
	CreateBatch(transactions []models.Transaction) error
	GetByID(id int64) (*models.Transaction, error)
	GetByAccount(accountID string) ([]models.Transaction, error)
	GetWithFilters(filters TransactionFilters, offset, limit int) ([]models.Transaction, int64, error)
	GetUncategorized(accountID string) ([]models.Transaction, error)
	GetUnmatchedCandidates(accountID string, start, end time.Time) ([]models.Transaction, error)
	Update(transaction *models.Transaction) error
	UpdateCategory(id int64, categoryID *string, taxType string, isInternalTransfer bool) error
	MarkInternalTransferPair(firstID, secondID int64) error
	Delete(id int64) error
}

// RuleRepositoryInterface defines categorization rule persistence operations
type RuleRepositoryInterface interface {
	Create(rule *models.CategorizationRule) error
	GetByID(id int64) (*models.CategorizationRule, error)
	GetAllOrdered() ([]models.CategorizationRule, error)
	Update(rule *models.CategorizationRule) error
	Delete(id int64) error
}
