// Package parser turns raw QIF and CSV bank statement exports into a
// normalized, ordered record stream. Parsing is pure: it consumes a byte
// stream and never touches the store, so the same code path serves both
// import previews and real imports.
package parser

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	FormatQIF = "qif"
	FormatCSV = "csv"
)

var (
	ErrUnknownFormat = errors.New("unrecognized statement format")
	ErrEmptyFile     = errors.New("statement file is empty")
	ErrFileTooLarge  = errors.New("statement file exceeds the maximum upload size")
)

// RawRecord is one normalized statement line. Amounts are already split into
// the dual-field model; Balance is only present for CSV exports that carry a
// running balance column.
type RawRecord struct {
	Date        time.Time
	Description string
	Withdrawal  decimal.Decimal
	Deposit     decimal.Decimal
	Balance     *decimal.Decimal
	Reference   string
}

// SignedAmount returns deposit minus withdrawal.
func (r *RawRecord) SignedAmount() decimal.Decimal {
	return r.Deposit.Sub(r.Withdrawal)
}

// Statement is the parse result for one file.
type Statement struct {
	Format           string
	Records          []RawRecord
	TransactionCount int
	// ColumnMapping maps the internal schema ("date", "description",
	// "amount", "debit", "credit", "balance", "reference") to the original
	// CSV header names. Empty for QIF.
	ColumnMapping map[string]string
	// LatestBalance is the declared balance on the most recent dated CSV
	// record, if any.
	LatestBalance *decimal.Decimal
}

// ParseError is a fatal statement parse failure. It identifies the offending
// line so the user can fix the export; one bad line fails the whole file.
type ParseError struct {
	Line   int
	Field  string
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("line %d: %s %q: %s", e.Line, e.Field, e.Value, e.Reason)
}

// Parse detects the statement format from content and dispatches to the
// matching parser. declaredFormat, when non-empty, skips detection.
func Parse(data []byte, declaredFormat string) (*Statement, error) {
	format := strings.ToLower(declaredFormat)
	if format == "" {
		var err error
		format, err = DetectFormat(data)
		if err != nil {
			return nil, err
		}
	}

	switch format {
	case FormatQIF:
		return ParseQIF(data)
	case FormatCSV:
		return ParseCSV(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, declaredFormat)
	}
}

// dateFormats are tried in order. Day-first formats lead: the exports this
// system ingests are AU-style.
var dateFormats = []string{
	"02/01/2006",
	"02-01-2006",
	"2006-01-02",
	"02/01/06",
	"02-01-06",
	"2006/01/02",
	"2 Jan 2006",
	"02 Jan 2006",
	"2 January 2006",
}

func parseDate(value string, line int) (time.Time, error) {
	value = strings.TrimSpace(value)
	// QIF sometimes writes the year as D15/03'2024.
	value = strings.ReplaceAll(value, "'", "/")
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, &ParseError{Line: line, Field: "date", Value: value, Reason: "unrecognized date format"}
}

func parseAmount(value string, line int) (decimal.Decimal, error) {
	clean := strings.TrimSpace(value)
	clean = strings.ReplaceAll(clean, "$", "")
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.ReplaceAll(clean, " ", "")
	// Accountant-style negatives: "(25.50)" means -25.50.
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		clean = "-" + clean[1:len(clean)-1]
	}
	if clean == "" || clean == "-" {
		return decimal.Zero, &ParseError{Line: line, Field: "amount", Value: value, Reason: "empty amount"}
	}
	amount, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, &ParseError{Line: line, Field: "amount", Value: value, Reason: "not a number"}
	}
	return amount, nil
}
