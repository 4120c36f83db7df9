package dto

import (
	"github.com/shopspring/decimal"

	"bankledger/internal/models"
)

// ImportRequest carries the non-file fields of a statement upload.
// Format is optional; when empty the file content decides.
type ImportRequest struct {
	Format string `form:"format" validate:"omitempty,oneof=qif csv"`
}

// ImportResult summarizes a completed statement import
type ImportResult struct {
	AccountID        string           `json:"account_id"`
	Format           string           `json:"format"`
	TotalParsed      int              `json:"total_parsed"`
	ImportedCount    int              `json:"imported_count"`
	DuplicateCount   int              `json:"duplicate_count"`
	RulesApplied     int              `json:"rules_applied"`
	TransfersMatched int              `json:"transfers_matched"`
	UpdatedBalance   *decimal.Decimal `json:"updated_balance,omitempty"`
	Warnings         []string         `json:"warnings"`
}

// ImportPreview reports what an import would do without persisting anything
type ImportPreview struct {
	Format           string            `json:"format"`
	TransactionCount int               `json:"transaction_count"`
	NewCount         int               `json:"new_count"`
	DuplicateCount   int               `json:"duplicate_count"`
	ColumnMapping    map[string]string `json:"column_mapping,omitempty"`
	LatestBalance    *decimal.Decimal  `json:"latest_balance,omitempty"`
	Warnings         []string          `json:"warnings"`
	Sample           []PreviewRecord   `json:"sample"`
}

// PreviewRecord is one parsed statement row shown in a preview
type PreviewRecord struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Duplicate   bool            `json:"duplicate"`
}

// RuleRunResult summarizes a manual rule run over existing transactions
type RuleRunResult struct {
	Evaluated        int `json:"evaluated"`
	Categorized      int `json:"categorized"`
	MarkedInternal   int `json:"marked_internal"`
	SkippedMalformed int `json:"skipped_malformed"`
}

// TransferPair identifies the two sides of a matched internal transfer
type TransferPair struct {
	FirstID  int64 `json:"first_id"`
	SecondID int64 `json:"second_id"`
}

// TransferMatchResult summarizes a transfer matching run
type TransferMatchResult struct {
	Candidates   int            `json:"candidates"`
	PairsMatched int            `json:"pairs_matched"`
	Pairs        []TransferPair `json:"pairs"`
}

// TransactionListResponse is the paginated transaction listing
type TransactionListResponse struct {
	Transactions []models.Transaction `json:"transactions"`
	Total        int64                `json:"total"`
	Page         int                  `json:"page"`
	PageSize     int                  `json:"page_size"`
}
