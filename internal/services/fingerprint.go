package services

import (
	"fmt"

	"bankledger/internal/models"
	"bankledger/internal/parser"
	"bankledger/internal/repositories"
)

// Fingerprint is the duplicate-detection key for one statement record on one
// account. Equality is exact; there is no fuzzy matching. A missed duplicate
// from a retyped description is preferable to silently dropping a legitimate
// transaction.
type Fingerprint struct {
	AccountID    string
	Date         string
	SignedAmount string
	Description  string
}

// fingerprinter implements FingerprinterInterface
type fingerprinter struct {
	transactionRepo repositories.TransactionRepositoryInterface
}

// NewFingerprinter creates a new fingerprinter over the transaction store
func NewFingerprinter(transactionRepo repositories.TransactionRepositoryInterface) FingerprinterInterface {
	return &fingerprinter{transactionRepo: transactionRepo}
}

// BuildFingerprint derives the key from a parsed record and its target
// account. Dates collapse to the calendar day and descriptions are
// lower-cased and trimmed, so "ALDI " and "aldi" collide.
func (f *fingerprinter) BuildFingerprint(record *parser.RawRecord, accountID string) Fingerprint {
	return Fingerprint{
		AccountID:    accountID,
		Date:         record.Date.Format("2006-01-02"),
		SignedAmount: record.SignedAmount().StringFixed(2),
		Description:  models.NormalizeDescription(record.Description),
	}
}

// ExistingFingerprints loads the fingerprint set for one account. The set is
// scoped to the account being imported into; identical transactions on other
// accounts must not suppress an import.
func (f *fingerprinter) ExistingFingerprints(accountID string) (map[Fingerprint]struct{}, error) {
	transactions, err := f.transactionRepo.GetByAccount(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load fingerprints: %w", err)
	}

	keys := make(map[Fingerprint]struct{}, len(transactions))
	for i := range transactions {
		t := &transactions[i]
		keys[Fingerprint{
			AccountID:    t.AccountID,
			Date:         t.Date.Format("2006-01-02"),
			SignedAmount: t.SignedAmount().StringFixed(2),
			Description:  models.NormalizeDescription(t.Description),
		}] = struct{}{}
	}
	return keys, nil
}

// Partition splits an incoming batch into accepted and duplicate records.
// Accepted records are added to the working set as they pass, so a second
// identical record within the same file is also flagged as a duplicate.
func (f *fingerprinter) Partition(existing map[Fingerprint]struct{}, accountID string, incoming []parser.RawRecord) ([]parser.RawRecord, []parser.RawRecord) {
	seen := make(map[Fingerprint]struct{}, len(existing)+len(incoming))
	for key := range existing {
		seen[key] = struct{}{}
	}

	var accepted, duplicates []parser.RawRecord
	for i := range incoming {
		record := incoming[i]
		key := f.BuildFingerprint(&record, accountID)
		if _, dup := seen[key]; dup {
			duplicates = append(duplicates, record)
			continue
		}
		seen[key] = struct{}{}
		accepted = append(accepted, record)
	}
	return accepted, duplicates
}
