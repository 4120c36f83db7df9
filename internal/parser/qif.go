package parser

import (
	"bufio"
	"bytes"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"bankledger/internal/models"
)

// qifEntry accumulates tagged fields until the ^ record terminator.
type qifEntry struct {
	line        int
	hasDate     bool
	date        time.Time
	hasAmount   bool
	amount      decimal.Decimal
	payee       string
	memo        string
	checkNumber string
}

// ParseQIF parses a QIF !Type:Bank export: newline-separated field-tag lines
// (D date, T/U amount, P payee, M memo, N check number) with records
// terminated by "^". QIF carries no running balance.
//
// Any unparseable date or amount fails the whole file; partial imports from
// a corrupt export are worse than no import.
func ParseQIF(data []byte) (*Statement, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	stmt := &Statement{Format: FormatQIF}
	entry := qifEntry{}
	lineNo := 0

	flush := func() error {
		if !entry.hasDate && !entry.hasAmount && entry.payee == "" && entry.memo == "" {
			entry = qifEntry{}
			return nil
		}
		if !entry.hasDate {
			return &ParseError{Line: entry.line, Field: "record", Reason: "missing date (D) field"}
		}
		if !entry.hasAmount {
			return &ParseError{Line: entry.line, Field: "record", Reason: "missing amount (T) field"}
		}
		withdrawal, deposit := models.SplitSignedAmount(entry.amount)
		stmt.Records = append(stmt.Records, RawRecord{
			Date:        entry.date,
			Description: entry.description(),
			Withdrawal:  withdrawal,
			Deposit:     deposit,
			Reference:   entry.checkNumber,
		})
		entry = qifEntry{}
		return nil
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "!") {
			// Type header; only bank-style exports are supported but the
			// header itself is informational.
			continue
		}
		if line == "^" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}

		tag := line[0]
		value := strings.TrimSpace(line[1:])
		if entry.line == 0 {
			entry.line = lineNo
		}

		switch tag {
		case 'D':
			date, err := parseDate(value, lineNo)
			if err != nil {
				return nil, err
			}
			entry.date = date
			entry.hasDate = true
		case 'T', 'U':
			amount, err := parseAmount(value, lineNo)
			if err != nil {
				return nil, err
			}
			entry.amount = amount
			entry.hasAmount = true
		case 'P':
			entry.payee = value
		case 'M':
			entry.memo = value
		case 'N':
			entry.checkNumber = value
		default:
			// Unused tags (L category, C cleared status, A address) are
			// legal QIF; skip them.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// A final record without a trailing ^ still counts.
	if err := flush(); err != nil {
		return nil, err
	}

	if len(stmt.Records) == 0 {
		return nil, ErrEmptyFile
	}
	stmt.TransactionCount = len(stmt.Records)
	return stmt, nil
}

// description joins payee and memo the way the ledger stores them.
func (e *qifEntry) description() string {
	switch {
	case e.payee != "" && e.memo != "":
		return e.payee + " - " + e.memo
	case e.payee != "":
		return e.payee
	default:
		return e.memo
	}
}
