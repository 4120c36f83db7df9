package services

import (
	"context"
	"sync"
	"time"

	"bankledger/internal/config"
)

func testImportConfig() *config.ImportConfig {
	return &config.ImportConfig{
		TransferMatchWindowDays: 3,
		BalanceEpsilonCents:     1,
		MaxUploadBytes:          1 << 20,
	}
}

// noopLogger satisfies ImportLoggerInterface for tests that do not assert on
// audit output.
type noopLogger struct{}

func (noopLogger) LogImportStarted(ctx context.Context, accountID, format string, byteSize int) {}
func (noopLogger) LogImportCompleted(ctx context.Context, accountID string, imported, duplicates int, durationMs int64) {
}
func (noopLogger) LogImportFailed(ctx context.Context, accountID string, errorMsg string, durationMs int64) {
}
func (noopLogger) LogReconciliationWarning(ctx context.Context, accountID string, warning string) {}
func (noopLogger) LogRuleSkipped(ctx context.Context, ruleID int64, reason string)               {}
func (noopLogger) LogRuleFired(ctx context.Context, ruleID int64, transactionID int64, categoryID string) {
}
func (noopLogger) LogTransferPairMatched(ctx context.Context, firstID, secondID int64, amount string) {
}

// recordingLogger captures rule audit events for assertions.
type recordingLogger struct {
	noopLogger
	mu           sync.Mutex
	firedRuleIDs []int64
	skippedRules []int64
}

func (l *recordingLogger) LogRuleFired(ctx context.Context, ruleID int64, transactionID int64, categoryID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.firedRuleIDs = append(l.firedRuleIDs, ruleID)
}

func (l *recordingLogger) LogRuleSkipped(ctx context.Context, ruleID int64, reason string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.skippedRules = append(l.skippedRules, ruleID)
}

// noopMetrics satisfies MetricsRecorderInterface without touching the global
// Prometheus registry, which only allows each collector once per process.
type noopMetrics struct{}

func (noopMetrics) IncrementCounter(name string, tags map[string]string)           {}
func (noopMetrics) RecordProcessingTime(name string, duration time.Duration)       {}
func (noopMetrics) RecordGauge(name string, value float64, tags map[string]string) {}
