package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"bankledger/internal/models"
)

// column synonym tables, checked in order against lower-cased headers.
var (
	dateColumns        = []string{"transaction date", "posting date", "date"}
	descriptionColumns = []string{"transaction details", "description", "narrative", "payee", "details"}
	amountColumns      = []string{"transaction amount", "amount"}
	debitColumns       = []string{"withdrawal", "debit", "money out", "out"}
	creditColumns      = []string{"deposit", "credit", "money in", "in"}
	balanceColumns     = []string{"running balance", "account balance", "balance"}
	referenceColumns   = []string{"transaction id", "reference", "ref", "id"}
)

// ParseCSV parses a CSV bank export. Banks disagree on header naming, so the
// header row is mapped once per file onto a fixed internal schema; the
// resulting mapping is returned in Statement.ColumnMapping so the caller can
// show the user how the file was interpreted.
func ParseCSV(data []byte) (*Statement, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	mapping, indexes, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	stmt := &Statement{
		Format:        FormatCSV,
		ColumnMapping: mapping,
	}

	line := 1 // header consumed
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &ParseError{Line: line, Reason: fmt.Sprintf("malformed CSV row: %v", err)}
		}
		if isBlankRow(row) {
			continue
		}

		record, err := parseCSVRow(row, indexes, line)
		if err != nil {
			return nil, err
		}
		stmt.Records = append(stmt.Records, *record)
	}

	if len(stmt.Records) == 0 {
		return nil, ErrEmptyFile
	}
	stmt.TransactionCount = len(stmt.Records)
	stmt.LatestBalance = latestBalance(stmt.Records)
	return stmt, nil
}

// columnIndexes holds the resolved header positions; -1 means absent.
type columnIndexes struct {
	date, description, amount, debit, credit, balance, reference int
}

func mapColumns(header []string) (map[string]string, columnIndexes, error) {
	idx := columnIndexes{date: -1, description: -1, amount: -1, debit: -1, credit: -1, balance: -1, reference: -1}
	mapping := make(map[string]string)

	claim := func(slot *int, name string, col int, original string) bool {
		if *slot != -1 {
			return false
		}
		*slot = col
		mapping[name] = original
		return true
	}

	for col, original := range header {
		h := strings.ToLower(strings.TrimSpace(original))
		switch {
		case matchesAny(h, dateColumns):
			claim(&idx.date, "date", col, original)
		case matchesAny(h, descriptionColumns):
			claim(&idx.description, "description", col, original)
		case matchesAny(h, amountColumns):
			claim(&idx.amount, "amount", col, original)
		case matchesAny(h, debitColumns):
			claim(&idx.debit, "debit", col, original)
		case matchesAny(h, creditColumns):
			claim(&idx.credit, "credit", col, original)
		case matchesAny(h, balanceColumns):
			claim(&idx.balance, "balance", col, original)
		case matchesAny(h, referenceColumns):
			claim(&idx.reference, "reference", col, original)
		}
	}

	if idx.date == -1 {
		return nil, idx, &ParseError{Line: 1, Field: "header", Reason: "no date column recognized"}
	}
	if idx.description == -1 {
		return nil, idx, &ParseError{Line: 1, Field: "header", Reason: "no description column recognized"}
	}
	if idx.amount == -1 && idx.debit == -1 && idx.credit == -1 {
		return nil, idx, &ParseError{Line: 1, Field: "header", Reason: "no amount or debit/credit columns recognized"}
	}
	return mapping, idx, nil
}

// matchesAny matches synonyms against whole words of the header, never bare
// substrings: "in" must not match inside "Running Balance".
func matchesAny(header string, synonyms []string) bool {
	for _, s := range synonyms {
		if header == s || containsWordSequence(header, s) {
			return true
		}
	}
	return false
}

func containsWordSequence(header, synonym string) bool {
	words := strings.Fields(header)
	parts := strings.Fields(synonym)
	if len(parts) == 0 || len(parts) > len(words) {
		return false
	}
	for i := 0; i+len(parts) <= len(words); i++ {
		matched := true
		for j := range parts {
			if words[i+j] != parts[j] {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

func parseCSVRow(row []string, idx columnIndexes, line int) (*RawRecord, error) {
	date, err := parseDate(cell(row, idx.date), line)
	if err != nil {
		return nil, err
	}

	record := &RawRecord{
		Date:        date,
		Description: strings.TrimSpace(cell(row, idx.description)),
		Reference:   strings.TrimSpace(cell(row, idx.reference)),
	}

	if raw := strings.TrimSpace(cell(row, idx.amount)); idx.amount != -1 && raw != "" {
		amount, err := parseAmount(raw, line)
		if err != nil {
			return nil, err
		}
		record.Withdrawal, record.Deposit = models.SplitSignedAmount(amount)
	} else {
		withdrawal, err := optionalAmount(cell(row, idx.debit), line)
		if err != nil {
			return nil, err
		}
		deposit, err := optionalAmount(cell(row, idx.credit), line)
		if err != nil {
			return nil, err
		}
		// Debit columns are magnitudes in most exports but some banks emit
		// them signed; store the magnitude either way.
		record.Withdrawal = withdrawal.Abs()
		record.Deposit = deposit.Abs()
	}

	if raw := strings.TrimSpace(cell(row, idx.balance)); idx.balance != -1 && raw != "" {
		balance, err := parseAmount(raw, line)
		if err != nil {
			return nil, err
		}
		record.Balance = &balance
	}

	return record, nil
}

func optionalAmount(raw string, line int) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	return parseAmount(raw, line)
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func latestBalance(records []RawRecord) *decimal.Decimal {
	var latest *RawRecord
	for i := range records {
		r := &records[i]
		if r.Balance == nil {
			continue
		}
		if latest == nil || r.Date.After(latest.Date) {
			latest = r
		}
	}
	if latest == nil {
		return nil
	}
	return latest.Balance
}
