package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"bankledger/internal/config"
	"bankledger/internal/dto"
	"bankledger/internal/models"
	"bankledger/internal/repositories"
)

// transferMatcher implements TransferMatcherInterface
type transferMatcher struct {
	transactionRepo repositories.TransactionRepositoryInterface
	logger          ImportLoggerInterface
	metrics         MetricsRecorderInterface
	windowDays      int
}

// NewTransferMatcher creates the internal transfer matcher
func NewTransferMatcher(
	transactionRepo repositories.TransactionRepositoryInterface,
	logger ImportLoggerInterface,
	metrics MetricsRecorderInterface,
	cfg *config.ImportConfig,
) TransferMatcherInterface {
	return &transferMatcher{
		transactionRepo: transactionRepo,
		logger:          logger,
		metrics:         metrics,
		windowDays:      cfg.TransferMatchWindowDays,
	}
}

// MatchAgainstLedger pairs each unmatched transaction in the given set with
// the closest-dated unmatched counterpart of the same magnitude on a different
// account, within the date window. Both sides of the batch drive pairing: an
// imported withdrawal looks for a ledger deposit and an imported deposit looks
// for a ledger withdrawal. Pairing is greedy nearest-date with ties broken by
// lowest id; transfers are rare enough that a global optimum matching is not
// worth the complexity. Already-matched rows never re-enter the pool, so
// re-running is idempotent.
func (m *transferMatcher) MatchAgainstLedger(ctx context.Context, transactions []models.Transaction) (*dto.TransferMatchResult, error) {
	result := &dto.TransferMatchResult{}

	seeds := make([]*models.Transaction, 0, len(transactions))
	for i := range transactions {
		t := &transactions[i]
		if t.IsMatched || t.IsHidden {
			continue
		}
		if !t.Withdrawal.IsPositive() && !t.Deposit.IsPositive() {
			continue
		}
		seeds = append(seeds, t)
	}
	result.Candidates = len(seeds)
	if len(seeds) == 0 {
		return result, nil
	}

	// One candidate query covers the whole batch's date span.
	start, end := dateSpan(seeds, m.windowDays)
	candidates, err := m.transactionRepo.GetUnmatchedCandidates("", start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load transfer candidates: %w", err)
	}

	claimed := make(map[int64]bool)
	for _, seed := range seeds {
		if claimed[seed.ID] {
			continue
		}
		partner := m.closestCounterpart(seed, candidates, claimed)
		if partner == nil {
			continue
		}

		// The pair is always reported withdrawal first, whichever side the
		// batch contributed.
		withdrawal, deposit := seed, partner
		if seed.Deposit.IsPositive() {
			withdrawal, deposit = partner, seed
		}

		if err := m.transactionRepo.MarkInternalTransferPair(withdrawal.ID, deposit.ID); err != nil {
			return result, fmt.Errorf("failed to mark transfer pair: %w", err)
		}
		claimed[withdrawal.ID] = true
		claimed[deposit.ID] = true

		result.PairsMatched++
		result.Pairs = append(result.Pairs, dto.TransferPair{FirstID: withdrawal.ID, SecondID: deposit.ID})
		m.logger.LogTransferPairMatched(ctx, withdrawal.ID, deposit.ID, withdrawal.Withdrawal.StringFixed(2))
		m.metrics.IncrementCounter("transfers_matched_total", nil)
	}
	return result, nil
}

// closestCounterpart finds the unclaimed transaction on another account
// carrying the opposite side of the seed's amount, nearest by date, lowest id
// on ties.
func (m *transferMatcher) closestCounterpart(seed *models.Transaction, candidates []models.Transaction, claimed map[int64]bool) *models.Transaction {
	amount := seed.Withdrawal
	wantWithdrawal := seed.Deposit.IsPositive()
	if wantWithdrawal {
		amount = seed.Deposit
	}

	var best *models.Transaction
	bestDistance := 0

	for i := range candidates {
		c := &candidates[i]
		if claimed[c.ID] || c.ID == seed.ID {
			continue
		}
		if c.AccountID == seed.AccountID {
			continue
		}
		if wantWithdrawal {
			if !c.Withdrawal.IsPositive() || !c.Withdrawal.Equal(amount) {
				continue
			}
		} else {
			if !c.Deposit.IsPositive() || !c.Deposit.Equal(amount) {
				continue
			}
		}

		distance := daysApart(seed.Date, c.Date)
		if distance > m.windowDays {
			continue
		}
		if best == nil || distance < bestDistance || (distance == bestDistance && c.ID < best.ID) {
			best = c
			bestDistance = distance
		}
	}
	return best
}

// RunTransferMatch scans the full ledger for unmatched pairs
func (m *transferMatcher) RunTransferMatch(ctx context.Context) (*dto.TransferMatchResult, error) {
	start := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Now().AddDate(1, 0, 0)
	candidates, err := m.transactionRepo.GetUnmatchedCandidates("", start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger for transfer matching: %w", err)
	}
	return m.MatchAgainstLedger(ctx, candidates)
}

func dateSpan(transactions []*models.Transaction, windowDays int) (time.Time, time.Time) {
	dates := make([]time.Time, len(transactions))
	for i, t := range transactions {
		dates[i] = t.Date
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates[0].AddDate(0, 0, -windowDays), dates[len(dates)-1].AddDate(0, 0, windowDays)
}

func daysApart(a, b time.Time) int {
	days := int(a.Sub(b).Hours() / 24)
	if days < 0 {
		return -days
	}
	return days
}
