package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"bankledger/internal/database"
	"bankledger/internal/dto"
	"bankledger/internal/errors"
	"bankledger/internal/models"
	"bankledger/internal/repositories"
	"bankledger/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransactionHandlerTestSuite struct {
	suite.Suite
	echo            *echo.Echo
	db              *database.DB
	transactionRepo repositories.TransactionRepositoryInterface
	handler         *TransactionHandler
}

func (s *TransactionHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.db = database.SetupTestDB(s.T())

	s.transactionRepo = repositories.NewTransactionRepository(s.db.DB)
	categoryRepo := repositories.NewCategoryRepository(s.db.DB)
	ruleRepo := repositories.NewRuleRepository(s.db.DB)

	s.handler = NewTransactionHandler(
		services.NewTransactionService(s.transactionRepo, categoryRepo),
		services.NewRuleEngine(ruleRepo, categoryRepo, s.transactionRepo, quietImportLogger(), stubMetrics{}),
		services.NewTransferMatcher(s.transactionRepo, quietImportLogger(), stubMetrics{}, testImportConfig()),
	)

	database.CreateTestAccount(s.T(), s.db, "10", "Everyday")
	database.CreateTestAccount(s.T(), s.db, "11", "Savings")
	database.CreateTestCategory(s.T(), s.db, "2.1", "Groceries")
}

func (s *TransactionHandlerTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func TestTransactionHandlerSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}

func (s *TransactionHandlerTestSuite) seedTransaction(accountID, description string, signedAmount float64) *models.Transaction {
	return database.CreateTestTransaction(s.T(), s.db, accountID,
		time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), description, decimal.NewFromFloat(signedAmount))
}

func (s *TransactionHandlerTestSuite) getTransactions(query string) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions"+query, nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	return rec, s.handler.GetTransactions(c)
}

func (s *TransactionHandlerTestSuite) TestGetTransactions() {
	s.seedTransaction("10", "WOOLWORTHS", -42.50)
	s.seedTransaction("11", "SALARY", 2800)

	rec, err := s.getTransactions("")
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	var response struct {
		Data dto.TransactionListResponse `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(int64(2), response.Data.Total)
	s.Len(response.Data.Transactions, 2)
}

func (s *TransactionHandlerTestSuite) TestGetTransactions_AccountFilter() {
	s.seedTransaction("10", "WOOLWORTHS", -42.50)
	s.seedTransaction("11", "SALARY", 2800)

	rec, err := s.getTransactions("?account_id=11")
	s.NoError(err)

	var response struct {
		Data dto.TransactionListResponse `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(int64(1), response.Data.Total)
	s.Equal("SALARY", response.Data.Transactions[0].Description)
}

func (s *TransactionHandlerTestSuite) TestGetTransactions_InvalidFilter() {
	rec, err := s.getTransactions("?filter=archived")
	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)

	var response ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(string(errors.TransactionInvalidFilter), response.Error.Code)
}

func (s *TransactionHandlerTestSuite) TestGetTransactions_InvalidStartDate() {
	rec, err := s.getTransactions("?start_date=15-03-2024")
	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)

	var response ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(string(errors.ValidationInvalidDate), response.Error.Code)
}

func (s *TransactionHandlerTestSuite) patchTransaction(id string, body string) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/transactions/"+id, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	return rec, s.handler.UpdateTransaction(c)
}

func (s *TransactionHandlerTestSuite) TestUpdateTransaction_AssignCategory() {
	txn := s.seedTransaction("10", "WOOLWORTHS", -42.50)

	rec, err := s.patchTransaction(strconv.FormatInt(txn.ID, 10), `{"category_id":"2.1"}`)
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	updated, err := s.transactionRepo.GetByID(txn.ID)
	s.NoError(err)
	s.Require().NotNil(updated.CategoryID)
	s.Equal("2.1", *updated.CategoryID)
}

func (s *TransactionHandlerTestSuite) TestUpdateTransaction_UnknownCategory() {
	txn := s.seedTransaction("10", "WOOLWORTHS", -42.50)

	rec, err := s.patchTransaction(strconv.FormatInt(txn.ID, 10), `{"category_id":"9.9"}`)
	s.NoError(err)
	s.Equal(http.StatusNotFound, rec.Code)

	var response ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(string(errors.CategoryNotFound), response.Error.Code)
}

func (s *TransactionHandlerTestSuite) TestUpdateTransaction_NotFound() {
	rec, err := s.patchTransaction("404404", `{"is_hidden":true}`)
	s.NoError(err)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *TransactionHandlerTestSuite) TestUpdateTransaction_BadID() {
	rec, err := s.patchTransaction("not-a-number", `{}`)
	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *TransactionHandlerTestSuite) TestRunAllRules() {
	ruleRepo := repositories.NewRuleRepository(s.db.DB)
	s.Require().NoError(ruleRepo.Create(&models.CategorizationRule{
		CategoryID:  "2.1",
		ApplyFuture: true,
		Conditions:  []models.DescriptionCondition{{Text: "woolworths", Sequence: 0}},
	}))
	txn := s.seedTransaction("10", "WOOLWORTHS 1234", -42.50)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/rules/run", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	err := s.handler.RunAllRules(c)
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	updated, err := s.transactionRepo.GetByID(txn.ID)
	s.NoError(err)
	s.Require().NotNil(updated.CategoryID)
	s.Equal("2.1", *updated.CategoryID)
}

func (s *TransactionHandlerTestSuite) TestRunTransferMatch() {
	out := s.seedTransaction("10", "TRANSFER TO SAVINGS", -500)
	s.seedTransaction("11", "TRANSFER FROM EVERYDAY", 500)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers/match", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	err := s.handler.RunTransferMatch(c)
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	marked, err := s.transactionRepo.GetByID(out.ID)
	s.NoError(err)
	s.True(marked.IsInternalTransfer)
	s.True(marked.IsMatched)
}
