package repositories

import (
	"errors"
	"fmt"
	"time"

	"bankledger/internal/models"

	"gorm.io/gorm"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{db: db}
}

// CreateBatch inserts a batch of imported transactions
func (r *transactionRepository) CreateBatch(transactions []models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}
	if err := r.db.Create(&transactions).Error; err != nil {
		return fmt.Errorf("failed to create transactions: %w", err)
	}
	return nil
}

// GetByID retrieves a transaction by id
func (r *transactionRepository) GetByID(id int64) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.Where("id = ?", id).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

// GetByAccount retrieves every transaction on an account in date order.
// Fingerprint checks and reconciliation both need the full account history.
func (r *transactionRepository) GetByAccount(accountID string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("account_id = ?", accountID).
		Order("date ASC, id ASC").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get account transactions: %w", err)
	}
	return transactions, nil
}

// GetWithFilters retrieves transactions matching the filters with pagination
func (r *transactionRepository) GetWithFilters(filters TransactionFilters, offset, limit int) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	query := r.db.Model(&models.Transaction{})

	if filters.AccountID != "" {
		query = query.Where("account_id = ?", filters.AccountID)
	}

	// Hidden rows stay out of every listing except the hidden filter itself.
	switch filters.FilterType {
	case models.FilterTypeUncategorised:
		query = query.Where("(category_id IS NULL OR category_id = '') AND is_hidden = ?", false)
	case models.FilterTypeCategorised:
		query = query.Where("category_id IS NOT NULL AND category_id != '' AND is_hidden = ?", false)
	case models.FilterTypeInternalTransfers:
		query = query.Where("is_internal_transfer = ? AND is_hidden = ?", true, false)
	case models.FilterTypeHidden:
		query = query.Where("is_hidden = ?", true)
	default:
		query = query.Where("is_hidden = ?", false)
	}

	if filters.Search != "" {
		query = query.Where("LOWER(description) LIKE ?", "%"+models.NormalizeDescription(filters.Search)+"%")
	}
	if filters.StartDate != nil {
		query = query.Where("date >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("date <= ?", *filters.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count filtered transactions: %w", err)
	}

	if err := query.Offset(offset).Limit(limit).
		Order("date DESC, id DESC").Find(&transactions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get filtered transactions: %w", err)
	}

	return transactions, total, nil
}

// GetUncategorized retrieves visible transactions without a category on an
// account, the working set for a rule run. Empty accountID means all accounts.
func (r *transactionRepository) GetUncategorized(accountID string) ([]models.Transaction, error) {
	query := r.db.Where("(category_id IS NULL OR category_id = '') AND is_hidden = ?", false)
	if accountID != "" {
		query = query.Where("account_id = ?", accountID)
	}

	var transactions []models.Transaction
	if err := query.Order("date ASC, id ASC").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get uncategorized transactions: %w", err)
	}
	return transactions, nil
}

// GetUnmatchedCandidates retrieves transactions on other accounts that are not
// yet part of a transfer pair, within the date window. These are the
// candidates for pairing against an internal-transfer-flagged transaction.
func (r *transactionRepository) GetUnmatchedCandidates(accountID string, start, end time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("account_id != ? AND is_matched = ? AND is_hidden = ?", accountID, false, false).
		Where("date >= ? AND date <= ?", start, end).
		Order("date ASC, id ASC").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transfer candidates: %w", err)
	}
	return transactions, nil
}

// Update updates a transaction
func (r *transactionRepository) Update(transaction *models.Transaction) error {
	result := r.db.Model(&models.Transaction{}).Where("id = ?", transaction.ID).
		Updates(map[string]interface{}{
			"category_id":          transaction.CategoryID,
			"tax_type":             transaction.TaxType,
			"is_hidden":            transaction.IsHidden,
			"is_matched":           transaction.IsMatched,
			"is_internal_transfer": transaction.IsInternalTransfer,
			"updated_at":           time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// UpdateCategory assigns a category to a transaction. The tax type is
// denormalized from the category at assignment time.
func (r *transactionRepository) UpdateCategory(id int64, categoryID *string, taxType string, isInternalTransfer bool) error {
	result := r.db.Model(&models.Transaction{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"category_id":          categoryID,
			"tax_type":             taxType,
			"is_internal_transfer": isInternalTransfer,
			"updated_at":           time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update transaction category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// MarkInternalTransferPair flags both sides of a matched transfer. The
// sentinel internal-transfer category is never written to category_id; the
// boolean flags carry the classification.
func (r *transactionRepository) MarkInternalTransferPair(firstID, secondID int64) error {
	result := r.db.Model(&models.Transaction{}).Where("id IN ?", []int64{firstID, secondID}).
		Updates(map[string]interface{}{
			"is_matched":           true,
			"is_internal_transfer": true,
			"updated_at":           time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark transfer pair: %w", result.Error)
	}
	if result.RowsAffected != 2 {
		return fmt.Errorf("expected to mark 2 transactions, marked %d", result.RowsAffected)
	}
	return nil
}

// Delete removes a transaction
func (r *transactionRepository) Delete(id int64) error {
	result := r.db.Where("id = ?", id).Delete(&models.Transaction{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}
