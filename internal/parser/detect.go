package parser

import (
	"bufio"
	"bytes"
	"strings"
)

// csvHeaderWords are column names that identify a CSV statement header row.
var csvHeaderWords = []string{
	"date", "description", "narrative", "payee", "details",
	"amount", "debit", "credit", "withdrawal", "deposit", "balance",
}

// DetectFormat sniffs the statement format from content. QIF files open with
// a "!Type:" header (or go straight into tagged field lines); CSV files open
// with a recognizable header row.
func DetectFormat(data []byte) (string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "!Type:") || strings.HasPrefix(line, "!Account") {
			return FormatQIF, nil
		}
		if looksLikeCSVHeader(line) {
			return FormatCSV, nil
		}
		// A bare QIF export without the type header still starts with a
		// field-tag line (D15/03/2024, T-42.50, ...).
		if len(line) > 1 && strings.ContainsRune("DTUMPNLC", rune(line[0])) && !strings.Contains(line, ",") {
			return FormatQIF, nil
		}
		return "", ErrUnknownFormat
	}

	return "", ErrEmptyFile
}

func looksLikeCSVHeader(line string) bool {
	if !strings.Contains(line, ",") {
		return false
	}
	matches := 0
	for _, cell := range strings.Split(line, ",") {
		cell = strings.ToLower(strings.Trim(cell, ` "`))
		for _, word := range csvHeaderWords {
			if strings.Contains(cell, word) {
				matches++
				break
			}
		}
	}
	return matches >= 2
}
