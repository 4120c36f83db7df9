package services

import (
	"context"
	"time"

	"bankledger/internal/dto"
	"bankledger/internal/models"
	"bankledger/internal/parser"
	"bankledger/internal/repositories"

	"github.com/shopspring/decimal"
)

// FingerprinterInterface derives duplicate-detection keys and partitions
// incoming statement records against an account's history
type FingerprinterInterface interface {
	BuildFingerprint(record *parser.RawRecord, accountID string) Fingerprint
	ExistingFingerprints(accountID string) (map[Fingerprint]struct{}, error)
	Partition(existing map[Fingerprint]struct{}, accountID string, incoming []parser.RawRecord) (accepted []parser.RawRecord, duplicates []parser.RawRecord)
}

// BalanceReconcilerInterface replays CSV-declared balances against the
// account's last known balance
type BalanceReconcilerInterface interface {
	Reconcile(accountID string, priorBalance decimal.Decimal, records []parser.RawRecord) (decimal.Decimal, []string)
}

// RuleEngineInterface evaluates ordered categorization rules
type RuleEngineInterface interface {
	Classify(ctx context.Context, transaction *models.Transaction, rules []models.CategorizationRule) *RuleOutcome
	ApplyRules(ctx context.Context, transactions []models.Transaction, includeInactive bool) (*dto.RuleRunResult, error)
	RunAllRules(ctx context.Context) (*dto.RuleRunResult, error)
}

// TransferMatcherInterface pairs opposite-amount transactions across accounts
type TransferMatcherInterface interface {
	MatchAgainstLedger(ctx context.Context, transactions []models.Transaction) (*dto.TransferMatchResult, error)
	RunTransferMatch(ctx context.Context) (*dto.TransferMatchResult, error)
}

// ImportServiceInterface is the top-level statement import entry point
type ImportServiceInterface interface {
	ImportFile(ctx context.Context, accountID string, fileBytes []byte, declaredFormat string) (*dto.ImportResult, error)
	PreviewImport(ctx context.Context, accountID string, fileBytes []byte, declaredFormat string) (*dto.ImportPreview, error)
}

// CategoryServiceInterface defines category management operations
type CategoryServiceInterface interface {
	CreateCategory(req *dto.CreateCategoryRequest) (*models.Category, error)
	GetCategory(id string) (*models.Category, error)
	GetAllCategories() ([]models.Category, error)
	UpdateCategory(id string, req *dto.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(id string) error
	NextChildID(parentID string) (string, error)
}

// AccountServiceInterface defines bank account management operations
type AccountServiceInterface interface {
	CreateAccount(req *dto.CreateAccountRequest) (*models.BankAccount, error)
	GetAccount(id string) (*models.BankAccount, error)
	GetAllAccounts() ([]models.BankAccount, error)
	UpdateAccount(id string, req *dto.UpdateAccountRequest) (*models.BankAccount, error)
	DeleteAccount(id string) error
}

// TransactionServiceInterface defines ledger query and update operations
type TransactionServiceInterface interface {
	GetTransactions(filters repositories.TransactionFilters, page, pageSize int) (*dto.TransactionListResponse, error)
	UpdateTransaction(id int64, req *dto.UpdateTransactionRequest) (*models.Transaction, error)
}

// RuleServiceInterface defines categorization rule management operations
type RuleServiceInterface interface {
	CreateRule(req *dto.CreateRuleRequest) (*models.CategorizationRule, error)
	GetRule(id int64) (*models.CategorizationRule, error)
	GetAllRules() ([]models.CategorizationRule, error)
	UpdateRule(id int64, req *dto.CreateRuleRequest) (*models.CategorizationRule, error)
	DeleteRule(id int64) error
}

// SampleDataServiceInterface seeds realistic development data
type SampleDataServiceInterface interface {
	Seed(ctx context.Context) (accounts int, transactions int, err error)
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

// ImportLoggerInterface emits structured audit events for the import pipeline
type ImportLoggerInterface interface {
	LogImportStarted(ctx context.Context, accountID, format string, byteSize int)
	LogImportCompleted(ctx context.Context, accountID string, imported, duplicates int, durationMs int64)
	LogImportFailed(ctx context.Context, accountID string, errorMsg string, durationMs int64)
	LogReconciliationWarning(ctx context.Context, accountID string, warning string)
	LogRuleSkipped(ctx context.Context, ruleID int64, reason string)
	LogRuleFired(ctx context.Context, ruleID int64, transactionID int64, categoryID string)
	LogTransferPairMatched(ctx context.Context, firstID, secondID int64, amount string)
}
