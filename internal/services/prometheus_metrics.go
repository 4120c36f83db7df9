package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	importsTotal       *prometheus.CounterVec
	importsFailed      *prometheus.CounterVec
	importDuration     prometheus.Histogram
	importedRows       prometheus.Counter
	duplicateRows      prometheus.Counter
	rulesFired         *prometheus.CounterVec
	rulesSkipped       prometheus.Counter
	transfersMatched   prometheus.Counter
	reconcileWarnings  prometheus.Counter
	apiErrorsTotal     *prometheus.CounterVec
	ledgerTransactions prometheus.Gauge
	uncategorizedRows  prometheus.Gauge
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		importsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statement_imports_total",
				Help: "Total number of completed statement imports",
			},
			[]string{"format"},
		),
		importsFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statement_imports_failed_total",
				Help: "Total number of failed statement imports by stage",
			},
			[]string{"stage"},
		),
		importDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "statement_import_duration_milliseconds",
				Help:    "Statement import duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		importedRows: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "statement_rows_imported_total",
				Help: "Total number of transaction rows imported",
			},
		),
		duplicateRows: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "statement_rows_duplicate_total",
				Help: "Total number of statement rows rejected as duplicates",
			},
		),
		rulesFired: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "categorization_rules_fired_total",
				Help: "Total number of rule firings by rule id",
			},
			[]string{"rule_id"},
		),
		rulesSkipped: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "categorization_rules_skipped_total",
				Help: "Total number of malformed rules skipped",
			},
		),
		transfersMatched: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "internal_transfers_matched_total",
				Help: "Total number of internal transfer pairs matched",
			},
		),
		reconcileWarnings: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "balance_reconciliation_warnings_total",
				Help: "Total number of balance drift warnings",
			},
		),
		apiErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "api_errors_total",
				Help: "Total number of API errors by code",
			},
			[]string{"code"},
		),
		ledgerTransactions: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "ledger_transactions_total",
				Help: "Current number of transactions in the ledger",
			},
		),
		uncategorizedRows: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "ledger_uncategorized_total",
				Help: "Current number of uncategorized transactions",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "imports_total":
		format := tags["format"]
		if format == "" {
			format = "unknown"
		}
		m.importsTotal.WithLabelValues(format).Inc()
	case "imports_failed_total":
		stage := tags["stage"]
		if stage == "" {
			stage = "unknown"
		}
		m.importsFailed.WithLabelValues(stage).Inc()
	case "rows_imported_total":
		m.importedRows.Inc()
	case "rows_duplicate_total":
		m.duplicateRows.Inc()
	case "rules_fired_total":
		if ruleID := tags["rule_id"]; ruleID != "" {
			m.rulesFired.WithLabelValues(ruleID).Inc()
		}
	case "rules_skipped_total":
		m.rulesSkipped.Inc()
	case "transfers_matched_total":
		m.transfersMatched.Inc()
	case "reconciliation_warnings_total":
		m.reconcileWarnings.Inc()
	case "api_errors_total":
		if code := tags["code"]; code != "" {
			m.apiErrorsTotal.WithLabelValues(code).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "import_duration":
		m.importDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "ledger_transactions":
		m.ledgerTransactions.Set(value)
	case "ledger_uncategorized":
		m.uncategorizedRows.Set(value)
	}
}
