package services

import (
	"fmt"

	"bankledger/internal/parser"

	"github.com/shopspring/decimal"
)

// balanceReconciler implements BalanceReconcilerInterface
type balanceReconciler struct {
	epsilon decimal.Decimal
}

// NewBalanceReconciler creates a reconciler with the given drift tolerance in
// cents.
func NewBalanceReconciler(epsilonCents int) BalanceReconcilerInterface {
	return &balanceReconciler{
		epsilon: decimal.New(int64(epsilonCents), -2),
	}
}

// Reconcile replays CSV records against the prior balance and verifies each
// declared running balance. Drift beyond the epsilon produces a warning, and
// the running balance is reset to the declared value so one discrepancy does
// not cascade into a warning per row.
//
// Statement direction is not declared by the file. Both orders are replayed
// and whichever is arithmetically consistent with the declared balances wins;
// when neither is (or no balances exist), file order is assumed.
func (r *balanceReconciler) Reconcile(accountID string, priorBalance decimal.Decimal, records []parser.RawRecord) (decimal.Decimal, []string) {
	if len(records) == 0 {
		return priorBalance, nil
	}

	ordered := r.orderForReplay(priorBalance, records)

	running := priorBalance
	var warnings []string
	sawBalance := false

	for i := range ordered {
		record := &ordered[i]
		running = running.Add(record.Deposit).Sub(record.Withdrawal)
		if record.Balance == nil {
			continue
		}
		sawBalance = true
		if running.Sub(*record.Balance).Abs().GreaterThan(r.epsilon) {
			warnings = append(warnings, fmt.Sprintf(
				"balance drift at record %d (%s): expected %s, statement declares %s",
				i+1, record.Date.Format("2006-01-02"),
				running.StringFixed(2), record.Balance.StringFixed(2)))
			running = *record.Balance
		}
	}

	if !sawBalance {
		// No declared balances in the file; the computed balance stands.
		return running, warnings
	}
	return running, warnings
}

// orderForReplay picks between file order and its reverse. Exports commonly
// arrive newest-first; replaying those forwards would walk the balance chain
// backwards.
func (r *balanceReconciler) orderForReplay(priorBalance decimal.Decimal, records []parser.RawRecord) []parser.RawRecord {
	last := lastDeclaredBalance(records)
	if last == nil {
		return records
	}

	if netSum(records).Add(priorBalance).Sub(*last).Abs().LessThanOrEqual(r.epsilon) {
		return records
	}

	reversed := make([]parser.RawRecord, len(records))
	for i := range records {
		reversed[len(records)-1-i] = records[i]
	}
	if lastRev := lastDeclaredBalance(reversed); lastRev != nil {
		if netSum(reversed).Add(priorBalance).Sub(*lastRev).Abs().LessThanOrEqual(r.epsilon) {
			return reversed
		}
	}

	// Neither direction reconciles cleanly; keep file order and let the
	// per-record warnings surface the drift.
	return records
}

func lastDeclaredBalance(records []parser.RawRecord) *decimal.Decimal {
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Balance != nil {
			return records[i].Balance
		}
	}
	return nil
}

func netSum(records []parser.RawRecord) decimal.Decimal {
	total := decimal.Zero
	for i := range records {
		total = total.Add(records[i].Deposit).Sub(records[i].Withdrawal)
	}
	return total
}
