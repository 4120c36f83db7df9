package services

import (
	"errors"

	"bankledger/internal/dto"
	"bankledger/internal/models"
	"bankledger/internal/repositories"
)

var ErrCategoryNotBankAccount = errors.New("category is not flagged as a bank account")

// accountService implements AccountServiceInterface. Bank accounts share
// their id with a category carrying is_bank_account=true; the service keeps
// the two rows consistent.
type accountService struct {
	accountRepo  repositories.AccountRepositoryInterface
	categoryRepo repositories.CategoryRepositoryInterface
}

// NewAccountService creates the bank account management service
func NewAccountService(accountRepo repositories.AccountRepositoryInterface, categoryRepo repositories.CategoryRepositoryInterface) AccountServiceInterface {
	return &accountService{
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *accountService) CreateAccount(req *dto.CreateAccountRequest) (*models.BankAccount, error) {
	account := &models.BankAccount{
		ID:            req.ID,
		Name:          req.Name,
		AccountNumber: req.AccountNumber,
		BSB:           req.BSB,
		BankName:      req.BankName,
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.GetByID(req.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			// The backing category is created alongside the account.
			category = &models.Category{
				ID:            req.ID,
				Name:          req.Name,
				CategoryType:  models.CategoryTypeTransaction,
				TaxType:       models.TaxTypeNone,
				IsBankAccount: true,
			}
			if err := s.categoryRepo.Create(category); err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	} else if !category.IsBankAccount {
		return nil, ErrCategoryNotBankAccount
	}

	if err := s.accountRepo.Create(account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccount(id string) (*models.BankAccount, error) {
	return s.accountRepo.GetByID(id)
}

func (s *accountService) GetAllAccounts() ([]models.BankAccount, error) {
	return s.accountRepo.GetAll()
}

func (s *accountService) UpdateAccount(id string, req *dto.UpdateAccountRequest) (*models.BankAccount, error) {
	account, err := s.accountRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		account.Name = req.Name
	}
	if req.AccountNumber != "" {
		account.AccountNumber = req.AccountNumber
	}
	if req.BSB != "" {
		if !models.IsValidBSB(req.BSB) {
			return nil, models.ErrInvalidBSB
		}
		account.BSB = req.BSB
	}
	if req.BankName != "" {
		account.BankName = req.BankName
	}

	if err := s.accountRepo.Update(account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *accountService) DeleteAccount(id string) error {
	return s.accountRepo.Delete(id)
}
