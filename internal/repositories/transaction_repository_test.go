package repositories

import (
	"testing"
	"time"

	"bankledger/internal/database"
	"bankledger/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransactionRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo TransactionRepositoryInterface
}

func (s *TransactionRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewTransactionRepository(s.db.DB)

	database.CreateTestAccount(s.T(), s.db, "10", "Everyday")
	database.CreateTestAccount(s.T(), s.db, "11", "Savings")
	database.CreateTestCategory(s.T(), s.db, "2.1", "Groceries")
}

func (s *TransactionRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func TestTransactionRepositorySuite(t *testing.T) {
	suite.Run(t, new(TransactionRepositorySuite))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *TransactionRepositorySuite) TestCreateBatch_FillsIDs() {
	batch := []models.Transaction{
		{Date: day(2024, 3, 15), AccountID: "10", Description: "WOOLWORTHS", Withdrawal: decimal.NewFromFloat(42.50)},
		{Date: day(2024, 3, 16), AccountID: "10", Description: "SALARY", Deposit: decimal.NewFromFloat(2800)},
	}

	err := s.repo.CreateBatch(batch)
	s.NoError(err)
	s.NotZero(batch[0].ID)
	s.NotZero(batch[1].ID)
	s.NotEqual(batch[0].ID, batch[1].ID)
}

func (s *TransactionRepositorySuite) TestCreateBatch_EmptyIsNoop() {
	s.NoError(s.repo.CreateBatch(nil))
}

func (s *TransactionRepositorySuite) TestGetByAccount_OrderedByDate() {
	database.CreateTestTransaction(s.T(), s.db, "10", day(2024, 3, 20), "LATER", decimal.NewFromFloat(-5))
	database.CreateTestTransaction(s.T(), s.db, "10", day(2024, 3, 10), "EARLIER", decimal.NewFromFloat(-5))
	database.CreateTestTransaction(s.T(), s.db, "11", day(2024, 3, 12), "OTHER ACCOUNT", decimal.NewFromFloat(-5))

	transactions, err := s.repo.GetByAccount("10")
	s.NoError(err)
	s.Len(transactions, 2)
	s.Equal("EARLIER", transactions[0].Description)
	s.Equal("LATER", transactions[1].Description)
}

func (s *TransactionRepositorySuite) TestGetWithFilters_Uncategorised() {
	uncategorized := database.CreateTestTransaction(s.T(), s.db, "10", day(2024, 3, 15), "MYSTERY SHOP", decimal.NewFromFloat(-10))
	categorized := database.CreateTestTransaction(s.T(), s.db, "10", day(2024, 3, 16), "WOOLWORTHS", decimal.NewFromFloat(-20))
	s.NoError(s.repo.UpdateCategory(categorized.ID, strPtr("2.1"), models.TaxTypeGST, false))

	transactions, total, err := s.repo.GetWithFilters(TransactionFilters{
		AccountID:  "10",
		FilterType: models.FilterTypeUncategorised,
	}, 0, 50)
	s.NoError(err)
	s.Equal(int64(1), total)
	s.Len(transactions, 1)
	s.Equal(uncategorized.ID, transactions[0].ID)
}

func (s *TransactionRepositorySuite) TestGetWithFilters_HiddenExcludedByDefault() {
	hidden := database.CreateTestTransaction(s.T(), s.db, "10", day(2024, 3, 15), "HIDDEN ROW", decimal.NewFromFloat(-10))
	hidden.IsHidden = true
	s.NoError(s.repo.Update(hidden))
	database.CreateTestTransaction(s.T(), s.db, "10", day(2024, 3, 16), "VISIBLE ROW", decimal.NewFromFloat(-20))

	transactions, total, err := s.repo.GetWithFilters(TransactionFilters{AccountID: "10"}, 0, 50)
	s.NoError(err)
	s.Equal(int64(1), total)
	s.Equal("VISIBLE ROW", transactions[0].Description)

	hiddenOnly, total, err := s.repo.GetWithFilters(TransactionFilters{
		AccountID:  "10",
		FilterType: models.FilterTypeHidden,
	}, 0, 50)
	s.NoError(err)
	s.Equal(int64(1), total)
	s.Equal("HIDDEN ROW", hiddenOnly[0].Description)
}

func (s *TransactionRepositorySuite) TestGetWithFilters_SearchIsCaseInsensitive() {
	database.CreateTestTransaction(s.T(), s.db, "10", day(2024, 3, 15), "WOOLWORTHS 1234 SYDNEY", decimal.NewFromFloat(-42.50))
	database.CreateTestTransaction(s.T(), s.db, "10", day(2024, 3, 16), "BP FUEL", decimal.NewFromFloat(-65))

	transactions, _, err := s.repo.GetWithFilters(TransactionFilters{Search: "woolworths"}, 0, 50)
	s.NoError(err)
	s.Len(transactions, 1)
	s.Equal("WOOLWORTHS 1234 SYDNEY", transactions[0].Description)
}

func (s *TransactionRepositorySuite) TestGetWithFilters_DateBoundsInclusive() {
	database.CreateTestTransaction(s.T(), s.db, "10", day(2024, 3, 10), "BEFORE", decimal.NewFromFloat(-1))
	database.CreateTestTransaction(s.T(), s.db, "10", day(2024, 3, 15), "INSIDE", decimal.NewFromFloat(-1))
	database.CreateTestTransaction(s.T(), s.db, "10", day(2024, 3, 20), "AFTER", decimal.NewFromFloat(-1))

	start := day(2024, 3, 15)
	end := day(2024, 3, 15)
	transactions, _, err := s.repo.GetWithFilters(TransactionFilters{StartDate: &start, EndDate: &end}, 0, 50)
	s.NoError(err)
	s.Len(transactions, 1)
	s.Equal("INSIDE", transactions[0].Description)
}

func (s *TransactionRepositorySuite) TestUpdateCategory_Clears() {
	txn := database.CreateTestTransaction(s.T(), s.db, "10", day(2024, 3, 15), "SHOP", decimal.NewFromFloat(-10))
	s.NoError(s.repo.UpdateCategory(txn.ID, strPtr("2.1"), models.TaxTypeGST, false))

	s.NoError(s.repo.UpdateCategory(txn.ID, nil, "", false))

	updated, err := s.repo.GetByID(txn.ID)
	s.NoError(err)
	s.Nil(updated.CategoryID)
	s.Empty(updated.TaxType)
}

func (s *TransactionRepositorySuite) TestUpdateCategory_NotFound() {
	err := s.repo.UpdateCategory(99999, strPtr("2.1"), models.TaxTypeGST, false)
	s.ErrorIs(err, ErrTransactionNotFound)
}

func (s *TransactionRepositorySuite) TestMarkInternalTransferPair() {
	out := database.CreateTestTransaction(s.T(), s.db, "10", day(2024, 3, 15), "TRANSFER TO SAVINGS", decimal.NewFromFloat(-500))
	in := database.CreateTestTransaction(s.T(), s.db, "11", day(2024, 3, 16), "TRANSFER FROM EVERYDAY", decimal.NewFromFloat(500))

	s.NoError(s.repo.MarkInternalTransferPair(out.ID, in.ID))

	for _, id := range []int64{out.ID, in.ID} {
		marked, err := s.repo.GetByID(id)
		s.NoError(err)
		s.True(marked.IsMatched)
		s.True(marked.IsInternalTransfer)
		s.Nil(marked.CategoryID, "transfer flags never write a category")
	}
}

func (s *TransactionRepositorySuite) TestMarkInternalTransferPair_MissingSide() {
	out := database.CreateTestTransaction(s.T(), s.db, "10", day(2024, 3, 15), "TRANSFER", decimal.NewFromFloat(-500))

	err := s.repo.MarkInternalTransferPair(out.ID, 99999)
	s.Error(err)
}

func (s *TransactionRepositorySuite) TestGetUnmatchedCandidates_ExcludesMatchedAndWindow() {
	inWindow := database.CreateTestTransaction(s.T(), s.db, "11", day(2024, 3, 16), "CANDIDATE", decimal.NewFromFloat(500))
	database.CreateTestTransaction(s.T(), s.db, "11", day(2024, 5, 1), "OUTSIDE WINDOW", decimal.NewFromFloat(500))
	matched := database.CreateTestTransaction(s.T(), s.db, "11", day(2024, 3, 16), "ALREADY MATCHED", decimal.NewFromFloat(500))
	other := database.CreateTestTransaction(s.T(), s.db, "11", day(2024, 3, 17), "PAIR PARTNER", decimal.NewFromFloat(-500))
	s.NoError(s.repo.MarkInternalTransferPair(matched.ID, other.ID))
	database.CreateTestTransaction(s.T(), s.db, "10", day(2024, 3, 16), "SAME ACCOUNT EXCLUDED", decimal.NewFromFloat(500))

	candidates, err := s.repo.GetUnmatchedCandidates("10", day(2024, 3, 12), day(2024, 3, 18))
	s.NoError(err)
	s.Len(candidates, 1)
	s.Equal(inWindow.ID, candidates[0].ID)
}

func (s *TransactionRepositorySuite) TestGetUncategorized_SkipsHidden() {
	visible := database.CreateTestTransaction(s.T(), s.db, "10", day(2024, 3, 15), "VISIBLE", decimal.NewFromFloat(-10))
	hidden := database.CreateTestTransaction(s.T(), s.db, "10", day(2024, 3, 16), "HIDDEN", decimal.NewFromFloat(-10))
	hidden.IsHidden = true
	s.NoError(s.repo.Update(hidden))

	transactions, err := s.repo.GetUncategorized("10")
	s.NoError(err)
	s.Len(transactions, 1)
	s.Equal(visible.ID, transactions[0].ID)
}

func (s *TransactionRepositorySuite) TestDelete() {
	txn := database.CreateTestTransaction(s.T(), s.db, "10", day(2024, 3, 15), "SHOP", decimal.NewFromFloat(-10))

	s.NoError(s.repo.Delete(txn.ID))
	_, err := s.repo.GetByID(txn.ID)
	s.ErrorIs(err, ErrTransactionNotFound)

	s.ErrorIs(s.repo.Delete(txn.ID), ErrTransactionNotFound)
}

func strPtr(s string) *string {
	return &s
}
