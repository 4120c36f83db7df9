package services

import (
	"context"
	"log/slog"
	"time"
)

type ImportLogger struct {
	logger *slog.Logger
}

func NewImportLogger(logger *slog.Logger) ImportLoggerInterface {
	return &ImportLogger{
		logger: logger,
	}
}

func (il *ImportLogger) LogImportStarted(ctx context.Context, accountID, format string, byteSize int) {
	il.logger.InfoContext(ctx, "statement import started",
		slog.String("event_type", "import_started"),
		slog.String("account_id", accountID),
		slog.String("format", format),
		slog.Int("byte_size", byteSize),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", getCorrelationID(ctx)),
	)
}

func (il *ImportLogger) LogImportCompleted(ctx context.Context, accountID string, imported, duplicates int, durationMs int64) {
	il.logger.InfoContext(ctx, "statement import completed",
		slog.String("event_type", "import_completed"),
		slog.String("account_id", accountID),
		slog.Int("imported_count", imported),
		slog.Int("duplicate_count", duplicates),
		slog.Int64("duration_ms", durationMs),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", getCorrelationID(ctx)),
	)
}

func (il *ImportLogger) LogImportFailed(ctx context.Context, accountID string, errorMsg string, durationMs int64) {
	il.logger.WarnContext(ctx, "statement import failed",
		slog.String("event_type", "import_failed"),
		slog.String("account_id", accountID),
		slog.String("error", errorMsg),
		slog.Int64("duration_ms", durationMs),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", getCorrelationID(ctx)),
	)
}

func (il *ImportLogger) LogReconciliationWarning(ctx context.Context, accountID string, warning string) {
	il.logger.WarnContext(ctx, "balance reconciliation warning",
		slog.String("event_type", "reconciliation_warning"),
		slog.String("account_id", accountID),
		slog.String("warning", warning),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", getCorrelationID(ctx)),
	)
}

func (il *ImportLogger) LogRuleSkipped(ctx context.Context, ruleID int64, reason string) {
	il.logger.WarnContext(ctx, "categorization rule skipped",
		slog.String("event_type", "rule_skipped"),
		slog.Int64("rule_id", ruleID),
		slog.String("reason", reason),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", getCorrelationID(ctx)),
	)
}

func (il *ImportLogger) LogRuleFired(ctx context.Context, ruleID int64, transactionID int64, categoryID string) {
	il.logger.InfoContext(ctx, "categorization rule fired",
		slog.String("event_type", "rule_fired"),
		slog.Int64("rule_id", ruleID),
		slog.Int64("transaction_id", transactionID),
		slog.String("category_id", categoryID),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", getCorrelationID(ctx)),
	)
}

func (il *ImportLogger) LogTransferPairMatched(ctx context.Context, firstID, secondID int64, amount string) {
	il.logger.InfoContext(ctx, "internal transfer pair matched",
		slog.String("event_type", "transfer_pair_matched"),
		slog.Int64("first_transaction_id", firstID),
		slog.Int64("second_transaction_id", secondID),
		slog.String("amount", amount),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", getCorrelationID(ctx)),
	)
}

func getCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	if correlationID, ok := ctx.Value("correlation_id").(string); ok {
		return correlationID
	}

	if requestID, ok := ctx.Value("request_id").(string); ok {
		return requestID
	}

	return ""
}
