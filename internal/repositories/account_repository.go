package repositories

import (
	"errors"
	"fmt"
	"time"

	"bankledger/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrAccountNotFound = errors.New("bank account not found")
	ErrAccountExists   = errors.New("bank account already exists")
)

// accountRepository implements AccountRepositoryInterface
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new bank account repository
func NewAccountRepository(db *gorm.DB) AccountRepositoryInterface {
	return &accountRepository{db: db}
}

// Create creates a new bank account
func (r *accountRepository) Create(account *models.BankAccount) error {
	if err := r.db.Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAccountExists
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetByID retrieves a bank account by id
func (r *accountRepository) GetByID(id string) (*models.BankAccount, error) {
	var account models.BankAccount
	if err := r.db.Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// GetAll retrieves all bank accounts
func (r *accountRepository) GetAll() ([]models.BankAccount, error) {
	var accounts []models.BankAccount
	if err := r.db.Order("id ASC").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}
	return accounts, nil
}

// Update updates a bank account
func (r *accountRepository) Update(account *models.BankAccount) error {
	result := r.db.Model(&models.BankAccount{}).Where("id = ?", account.ID).
		Updates(map[string]interface{}{
			"name":           account.Name,
			"account_number": account.AccountNumber,
			"bsb":            account.BSB,
			"bank_name":      account.BankName,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// Delete removes a bank account
func (r *accountRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.BankAccount{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// UpdateBalanceAndImportDate records the post-import balance and the time of
// the import on the account.
func (r *accountRepository) UpdateBalanceAndImportDate(id string, balance decimal.Decimal, importDate time.Time) error {
	result := r.db.Model(&models.BankAccount{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_balance":  balance,
			"last_import_date": importDate,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update account balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}
