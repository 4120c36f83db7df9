package services

import (
	"context"
	"fmt"
	"time"

	"bankledger/internal/config"
	"bankledger/internal/database"
	"bankledger/internal/dto"
	"bankledger/internal/models"
	"bankledger/internal/parser"
	"bankledger/internal/repositories"

	"gorm.io/gorm"
)

// importService implements ImportServiceInterface. Each import runs inside a
// single database transaction so fingerprinting reads and the batch insert see
// a consistent snapshot; a concurrent import cannot corrupt duplicate
// detection.
type importService struct {
	db      *database.DB
	cfg     *config.ImportConfig
	logger  ImportLoggerInterface
	metrics MetricsRecorderInterface
}

// NewImportService creates the statement import coordinator
func NewImportService(db *database.DB, cfg *config.ImportConfig, logger ImportLoggerInterface, metrics MetricsRecorderInterface) ImportServiceInterface {
	return &importService{
		db:      db,
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
	}
}

// ImportFile runs the full pipeline for one statement upload: parse,
// deduplicate, reconcile, persist, classify, transfer-match. A parse failure
// aborts before anything is written; reconciliation and classification
// problems degrade to warnings because capturing the raw rows matters more
// than classifying them perfectly.
func (s *importService) ImportFile(ctx context.Context, accountID string, fileBytes []byte, declaredFormat string) (*dto.ImportResult, error) {
	started := time.Now()

	if int64(len(fileBytes)) > s.cfg.MaxUploadBytes {
		return nil, parser.ErrFileTooLarge
	}

	statement, err := parser.Parse(fileBytes, declaredFormat)
	if err != nil {
		s.logger.LogImportFailed(ctx, accountID, err.Error(), time.Since(started).Milliseconds())
		s.metrics.IncrementCounter("imports_failed_total", map[string]string{"stage": "parse"})
		return nil, err
	}

	s.logger.LogImportStarted(ctx, accountID, statement.Format, len(fileBytes))

	result := &dto.ImportResult{
		AccountID:   accountID,
		Format:      statement.Format,
		TotalParsed: statement.TransactionCount,
		Warnings:    []string{},
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		accountRepo := repositories.NewAccountRepository(tx)
		transactionRepo := repositories.NewTransactionRepository(tx)
		ruleRepo := repositories.NewRuleRepository(tx)
		categoryRepo := repositories.NewCategoryRepository(tx)

		account, err := accountRepo.GetByID(accountID)
		if err != nil {
			return err
		}

		fingerprinter := NewFingerprinter(transactionRepo)
		existing, err := fingerprinter.ExistingFingerprints(accountID)
		if err != nil {
			return err
		}
		accepted, duplicates := fingerprinter.Partition(existing, accountID, statement.Records)
		result.DuplicateCount = len(duplicates)

		// Reconciliation covers the accepted rows only; re-imported
		// duplicates already moved the balance on a previous run.
		if statement.Format == parser.FormatCSV {
			reconciler := NewBalanceReconciler(s.cfg.BalanceEpsilonCents)
			newBalance, warnings := reconciler.Reconcile(accountID, account.CurrentBalance, accepted)
			for _, warning := range warnings {
				s.logger.LogReconciliationWarning(ctx, accountID, warning)
				result.Warnings = append(result.Warnings, warning)
			}
			if len(accepted) > 0 {
				if err := accountRepo.UpdateBalanceAndImportDate(accountID, newBalance, time.Now()); err != nil {
					return err
				}
				result.UpdatedBalance = &newBalance
			}
		} else if len(accepted) > 0 {
			if err := accountRepo.UpdateBalanceAndImportDate(accountID, account.CurrentBalance, time.Now()); err != nil {
				return err
			}
		}

		transactions := buildTransactions(accountID, accepted)
		if err := transactionRepo.CreateBatch(transactions); err != nil {
			return err
		}
		result.ImportedCount = len(transactions)

		ruleEngine := NewRuleEngine(ruleRepo, categoryRepo, transactionRepo, s.logger, s.metrics)
		ruleResult, err := ruleEngine.ApplyRules(ctx, transactions, false)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("rule run incomplete: %v", err))
		}
		if ruleResult != nil {
			result.RulesApplied = ruleResult.Categorized + ruleResult.MarkedInternal
		}

		matcher := NewTransferMatcher(transactionRepo, s.logger, s.metrics, s.cfg)
		matchResult, err := matcher.MatchAgainstLedger(ctx, transactions)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("transfer matching incomplete: %v", err))
		}
		if matchResult != nil {
			result.TransfersMatched = matchResult.PairsMatched
		}

		return nil
	})
	if err != nil {
		s.logger.LogImportFailed(ctx, accountID, err.Error(), time.Since(started).Milliseconds())
		s.metrics.IncrementCounter("imports_failed_total", map[string]string{"stage": "persist"})
		return nil, err
	}

	s.logger.LogImportCompleted(ctx, accountID, result.ImportedCount, result.DuplicateCount, time.Since(started).Milliseconds())
	s.metrics.IncrementCounter("imports_total", map[string]string{"format": result.Format})
	s.metrics.RecordProcessingTime("import_duration", time.Since(started))
	return result, nil
}

// PreviewImport parses and deduplicates without writing anything. The parse
// itself is pure, so previewing is always safe.
func (s *importService) PreviewImport(ctx context.Context, accountID string, fileBytes []byte, declaredFormat string) (*dto.ImportPreview, error) {
	if int64(len(fileBytes)) > s.cfg.MaxUploadBytes {
		return nil, parser.ErrFileTooLarge
	}

	statement, err := parser.Parse(fileBytes, declaredFormat)
	if err != nil {
		return nil, err
	}

	preview := &dto.ImportPreview{
		Format:           statement.Format,
		TransactionCount: statement.TransactionCount,
		ColumnMapping:    statement.ColumnMapping,
		LatestBalance:    statement.LatestBalance,
		Warnings:         []string{},
	}

	transactionRepo := repositories.NewTransactionRepository(s.db.DB)
	fingerprinter := NewFingerprinter(transactionRepo)
	existing, err := fingerprinter.ExistingFingerprints(accountID)
	if err != nil {
		return nil, err
	}
	accepted, duplicates := fingerprinter.Partition(existing, accountID, statement.Records)
	preview.NewCount = len(accepted)
	preview.DuplicateCount = len(duplicates)

	duplicateKeys := make(map[Fingerprint]struct{}, len(duplicates))
	for i := range duplicates {
		duplicateKeys[fingerprinter.BuildFingerprint(&duplicates[i], accountID)] = struct{}{}
	}
	for i := range statement.Records {
		if len(preview.Sample) >= 20 {
			break
		}
		record := &statement.Records[i]
		_, dup := duplicateKeys[fingerprinter.BuildFingerprint(record, accountID)]
		preview.Sample = append(preview.Sample, dto.PreviewRecord{
			Date:        record.Date.Format("2006-01-02"),
			Description: record.Description,
			Amount:      record.SignedAmount(),
			Duplicate:   dup,
		})
	}
	return preview, nil
}

func buildTransactions(accountID string, records []parser.RawRecord) []models.Transaction {
	transactions := make([]models.Transaction, 0, len(records))
	for i := range records {
		record := &records[i]
		transactions = append(transactions, models.Transaction{
			Date:               record.Date,
			AccountID:          accountID,
			Description:        record.Description,
			Withdrawal:         record.Withdrawal,
			Deposit:            record.Deposit,
			Balance:            record.Balance,
			StatementReference: record.Reference,
		})
	}
	return transactions
}
