package services

import (
	"errors"

	"bankledger/internal/dto"
	"bankledger/internal/models"
	"bankledger/internal/repositories"
)

var (
	ErrInvalidFilterType     = errors.New("unknown transaction filter type")
	ErrCategoryNotAssignable = errors.New("group categories cannot be assigned to transactions")
)

// transactionService implements TransactionServiceInterface
type transactionService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	categoryRepo    repositories.CategoryRepositoryInterface
}

// NewTransactionService creates the ledger query service
func NewTransactionService(transactionRepo repositories.TransactionRepositoryInterface, categoryRepo repositories.CategoryRepositoryInterface) TransactionServiceInterface {
	return &transactionService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

func (s *transactionService) GetTransactions(filters repositories.TransactionFilters, page, pageSize int) (*dto.TransactionListResponse, error) {
	if !models.IsValidFilterType(filters.FilterType) {
		return nil, ErrInvalidFilterType
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 500 {
		pageSize = 50
	}

	transactions, total, err := s.transactionRepo.GetWithFilters(filters, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	return &dto.TransactionListResponse{
		Transactions: transactions,
		Total:        total,
		Page:         page,
		PageSize:     pageSize,
	}, nil
}

// UpdateTransaction applies a manual category assignment or visibility
// change. Manual assignments follow the same rules as the engine: only
// transaction-type categories, tax type denormalized from the category.
func (s *transactionService) UpdateTransaction(id int64, req *dto.UpdateTransactionRequest) (*models.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			transaction.CategoryID = nil
			transaction.TaxType = ""
			transaction.IsInternalTransfer = false
		} else if *req.CategoryID == models.InternalTransferCategoryID {
			transaction.CategoryID = nil
			transaction.TaxType = ""
			transaction.IsInternalTransfer = true
		} else {
			category, err := s.categoryRepo.GetByID(*req.CategoryID)
			if err != nil {
				return nil, err
			}
			if !category.IsAssignable() {
				return nil, ErrCategoryNotAssignable
			}
			categoryID := category.ID
			transaction.CategoryID = &categoryID
			transaction.TaxType = category.TaxType
			transaction.IsInternalTransfer = false
		}
	}

	if req.IsHidden != nil {
		transaction.IsHidden = *req.IsHidden
	}

	if err := s.transactionRepo.Update(transaction); err != nil {
		return nil, err
	}
	return transaction, nil
}
