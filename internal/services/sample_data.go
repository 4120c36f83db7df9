package services

import (
	"context"
	"fmt"
	"time"

	"bankledger/internal/models"
	"bankledger/internal/repositories"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

// sampleDataService seeds a development database with a category tree, two
// bank accounts and a few months of plausible statement history, including a
// handful of cross-account transfers so the matcher has something to find.
type sampleDataService struct {
	categoryRepo    repositories.CategoryRepositoryInterface
	accountRepo     repositories.AccountRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	ruleRepo        repositories.RuleRepositoryInterface
	faker           *gofakeit.Faker
}

// NewSampleDataService creates the development data seeder
func NewSampleDataService(
	categoryRepo repositories.CategoryRepositoryInterface,
	accountRepo repositories.AccountRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	ruleRepo repositories.RuleRepositoryInterface,
) SampleDataServiceInterface {
	return &sampleDataService{
		categoryRepo:    categoryRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		ruleRepo:        ruleRepo,
		faker:           gofakeit.New(0),
	}
}

var seedCategories = []models.Category{
	{ID: "1", Name: "Income", CategoryType: models.CategoryTypeGroup},
	{ID: "1.1", Name: "Salary", CategoryType: models.CategoryTypeTransaction, TaxType: models.TaxTypeNT},
	{ID: "2", Name: "Living", CategoryType: models.CategoryTypeGroup},
	{ID: "2.1", Name: "Groceries", CategoryType: models.CategoryTypeTransaction, TaxType: models.TaxTypeGST},
	{ID: "2.2", Name: "Fuel", CategoryType: models.CategoryTypeTransaction, TaxType: models.TaxTypeGST},
	{ID: "2.3", Name: "Dining Out", CategoryType: models.CategoryTypeTransaction, TaxType: models.TaxTypeGST},
	{ID: "3", Name: "Utilities", CategoryType: models.CategoryTypeGroup},
	{ID: "3.1", Name: "Electricity", CategoryType: models.CategoryTypeTransaction, TaxType: models.TaxTypeGST},
	{ID: "3.2", Name: "Internet", CategoryType: models.CategoryTypeTransaction, TaxType: models.TaxTypeGST},
}

var seedMerchants = []struct {
	name string
	min  float64
	max  float64
}{
	{"WOOLWORTHS", 20, 250},
	{"COLES", 20, 220},
	{"ALDI", 15, 150},
	{"BP FUEL", 40, 110},
	{"SHELL", 40, 110},
	{"CORNER CAFE", 4, 35},
	{"NETFLIX.COM", 17, 26},
	{"ORIGIN ENERGY", 90, 380},
	{"TELSTRA INTERNET", 75, 110},
}

func (s *sampleDataService) Seed(ctx context.Context) (int, int, error) {
	parents := map[string]string{
		"1.1": "1", "2.1": "2", "2.2": "2", "2.3": "2", "3.1": "3", "3.2": "3",
	}
	for _, category := range seedCategories {
		c := category
		if parent, ok := parents[c.ID]; ok {
			c.ParentID = &parent
		}
		if exists, err := s.categoryRepo.Exists(c.ID); err != nil {
			return 0, 0, err
		} else if exists {
			continue
		}
		if err := s.categoryRepo.Create(&c); err != nil {
			return 0, 0, err
		}
	}

	accounts := []models.BankAccount{
		{ID: "10", Name: "Everyday", AccountNumber: s.faker.AchAccount(), BSB: "063-000", BankName: "Sample Bank"},
		{ID: "11", Name: "Savings", AccountNumber: s.faker.AchAccount(), BSB: "063-001", BankName: "Sample Bank"},
	}
	created := 0
	for i := range accounts {
		account := &accounts[i]
		if _, err := s.accountRepo.GetByID(account.ID); err == nil {
			continue
		}
		if err := s.categoryRepo.Create(&models.Category{
			ID:            account.ID,
			Name:          account.Name,
			CategoryType:  models.CategoryTypeTransaction,
			IsBankAccount: true,
		}); err != nil {
			return 0, 0, err
		}
		if err := s.accountRepo.Create(account); err != nil {
			return created, 0, err
		}
		created++
	}

	transactions := s.generateHistory("10", 90)
	transactions = append(transactions, s.transferPair("10", "11", 91)...)
	if err := s.transactionRepo.CreateBatch(transactions); err != nil {
		return created, 0, err
	}
	return created, len(transactions), nil
}

// generateHistory emits daily merchant spend plus a fortnightly salary
// deposit over the trailing day span.
func (s *sampleDataService) generateHistory(accountID string, days int) []models.Transaction {
	var transactions []models.Transaction
	start := time.Now().AddDate(0, 0, -days)

	for day := 0; day < days; day++ {
		date := start.AddDate(0, 0, day)

		if day%14 == 0 {
			transactions = append(transactions, models.Transaction{
				Date:        date,
				AccountID:   accountID,
				Description: fmt.Sprintf("SALARY %s", s.faker.Company()),
				Deposit:     decimal.NewFromFloat(s.faker.Float64Range(2800, 3400)).Round(2),
			})
		}

		purchases := s.faker.Number(0, 3)
		for p := 0; p < purchases; p++ {
			merchant := seedMerchants[s.faker.Number(0, len(seedMerchants)-1)]
			transactions = append(transactions, models.Transaction{
				Date:        date,
				AccountID:   accountID,
				Description: merchant.name,
				Withdrawal:  decimal.NewFromFloat(s.faker.Float64Range(merchant.min, merchant.max)).Round(2),
			})
		}
	}
	return transactions
}

// transferPair emits an unmatched withdrawal/deposit pair one day apart.
func (s *sampleDataService) transferPair(fromAccountID, toAccountID string, daysAgo int) []models.Transaction {
	amount := decimal.NewFromFloat(s.faker.Float64Range(100, 900)).Round(2)
	date := time.Now().AddDate(0, 0, -daysAgo)
	return []models.Transaction{
		{
			Date:        date,
			AccountID:   fromAccountID,
			Description: "TRANSFER TO SAVINGS",
			Withdrawal:  amount,
		},
		{
			Date:        date.AddDate(0, 0, 1),
			AccountID:   toAccountID,
			Description: "TRANSFER FROM EVERYDAY",
			Deposit:     amount,
		},
	}
}
