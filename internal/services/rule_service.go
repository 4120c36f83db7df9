package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bankledger/internal/dto"
	"bankledger/internal/models"
	"bankledger/internal/repositories"
)

// RuleOutcome is the result of classifying one transaction. Exactly one of
// CategoryID or InternalTransfer is meaningful; a nil outcome means no rule
// fired.
type RuleOutcome struct {
	RuleID           int64
	CategoryID       string
	TaxType          string
	InternalTransfer bool
}

// ruleEngine implements RuleEngineInterface
type ruleEngine struct {
	ruleRepo        repositories.RuleRepositoryInterface
	categoryRepo    repositories.CategoryRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	logger          ImportLoggerInterface
	metrics         MetricsRecorderInterface
	now             func() time.Time
}

// NewRuleEngine creates the categorization rule evaluator
func NewRuleEngine(
	ruleRepo repositories.RuleRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	logger ImportLoggerInterface,
	metrics MetricsRecorderInterface,
) RuleEngineInterface {
	return &ruleEngine{
		ruleRepo:        ruleRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		logger:          logger,
		metrics:         metrics,
		now:             time.Now,
	}
}

// Classify evaluates rules in id order against one transaction and returns
// the first firing rule's outcome, or nil when nothing fires. A malformed
// rule is skipped with a warning; one bad rule never blocks the batch.
func (e *ruleEngine) Classify(ctx context.Context, transaction *models.Transaction, rules []models.CategorizationRule) *RuleOutcome {
	for i := range rules {
		rule := &rules[i]
		if err := rule.Validate(); err != nil {
			e.logger.LogRuleSkipped(ctx, rule.ID, err.Error())
			continue
		}
		if !e.ruleMatches(rule, transaction) {
			continue
		}

		if rule.IsInternalTransferRule() {
			return &RuleOutcome{RuleID: rule.ID, InternalTransfer: true}
		}

		category, err := e.categoryRepo.GetByID(rule.CategoryID)
		if err != nil {
			e.logger.LogRuleSkipped(ctx, rule.ID, fmt.Sprintf("target category %s: %v", rule.CategoryID, err))
			continue
		}
		if !category.IsAssignable() {
			e.logger.LogRuleSkipped(ctx, rule.ID, fmt.Sprintf("target category %s is a group", rule.CategoryID))
			continue
		}

		return &RuleOutcome{
			RuleID:     rule.ID,
			CategoryID: category.ID,
			TaxType:    category.TaxType,
		}
	}
	return nil
}

// ruleMatches requires every present filter to hold: account, amount,
// date range and the folded description conditions.
func (e *ruleEngine) ruleMatches(rule *models.CategorizationRule, transaction *models.Transaction) bool {
	if rule.AccountID != nil && *rule.AccountID != "" && *rule.AccountID != transaction.AccountID {
		return false
	}
	if !e.amountMatches(rule, transaction) {
		return false
	}
	if !e.dateMatches(rule, transaction) {
		return false
	}
	return foldConditions(rule.Conditions, transaction.Description)
}

func (e *ruleEngine) amountMatches(rule *models.CategorizationRule, transaction *models.Transaction) bool {
	// The non-zero side of the transaction is compared as a magnitude.
	amount := transaction.Amount()

	switch rule.AmountOperator {
	case models.AmountOperatorNone:
		return true
	case models.AmountOperatorEquals:
		return amount.Equal(*rule.AmountValue)
	case models.AmountOperatorGreaterThan:
		return amount.GreaterThan(*rule.AmountValue)
	case models.AmountOperatorLessThan:
		return amount.LessThan(*rule.AmountValue)
	case models.AmountOperatorBetween:
		// Inclusive on both bounds.
		return amount.GreaterThanOrEqual(*rule.AmountValue) && amount.LessThanOrEqual(*rule.AmountValue2)
	default:
		return false
	}
}

// dateMatches interprets the rule's named date range relative to now.
// Unknown vocabulary is treated as no filter rather than rejecting every
// transaction.
func (e *ruleEngine) dateMatches(rule *models.CategorizationRule, transaction *models.Transaction) bool {
	now := e.now()
	switch rule.DateRange {
	case "", models.DateRangeAny:
		return true
	case models.DateRangeLast30Days:
		return !transaction.Date.Before(now.AddDate(0, 0, -30))
	case models.DateRangeLast90Days:
		return !transaction.Date.Before(now.AddDate(0, 0, -90))
	case models.DateRangeThisYear:
		return transaction.Date.Year() == now.Year()
	default:
		return true
	}
}

// foldConditions evaluates the ordered condition list left-associatively with
// no operator precedence: "A AND B OR C" folds as ((A AND B) OR C).
func foldConditions(conditions []models.DescriptionCondition, description string) bool {
	if len(conditions) == 0 {
		return false
	}

	result := conditionMatches(&conditions[0], description)
	for i := 1; i < len(conditions); i++ {
		matched := conditionMatches(&conditions[i], description)
		if conditions[i].Operator == models.ConditionOperatorAnd {
			result = result && matched
		} else {
			result = result || matched
		}
	}
	return result
}

// conditionMatches is plain substring containment, never regex.
func conditionMatches(condition *models.DescriptionCondition, description string) bool {
	if condition.CaseSensitive {
		return strings.Contains(description, condition.Text)
	}
	return strings.Contains(strings.ToLower(description), strings.ToLower(condition.Text))
}

// ApplyRules classifies a batch of transactions and persists the outcomes.
// Ordinary imports pass includeInactive=false so apply_future=false rules
// stay dormant; Run All Rules passes true.
func (e *ruleEngine) ApplyRules(ctx context.Context, transactions []models.Transaction, includeInactive bool) (*dto.RuleRunResult, error) {
	loaded, err := e.ruleRepo.GetAllOrdered()
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	result := &dto.RuleRunResult{}

	// Malformed rules are dropped once per run, not once per transaction.
	rules := make([]models.CategorizationRule, 0, len(loaded))
	for _, rule := range loaded {
		if err := rule.Validate(); err != nil {
			e.logger.LogRuleSkipped(ctx, rule.ID, err.Error())
			result.SkippedMalformed++
			continue
		}
		if !includeInactive && !rule.ApplyFuture {
			continue
		}
		rules = append(rules, rule)
	}
	for i := range transactions {
		transaction := &transactions[i]
		result.Evaluated++

		outcome := e.Classify(ctx, transaction, rules)
		if outcome == nil {
			continue
		}

		if outcome.InternalTransfer {
			if err := e.transactionRepo.UpdateCategory(transaction.ID, nil, "", true); err != nil {
				return result, fmt.Errorf("failed to mark internal transfer: %w", err)
			}
			transaction.IsInternalTransfer = true
			result.MarkedInternal++
		} else {
			categoryID := outcome.CategoryID
			if err := e.transactionRepo.UpdateCategory(transaction.ID, &categoryID, outcome.TaxType, false); err != nil {
				return result, fmt.Errorf("failed to assign category: %w", err)
			}
			transaction.CategoryID = &categoryID
			transaction.TaxType = outcome.TaxType
			result.Categorized++
		}
		e.logger.LogRuleFired(ctx, outcome.RuleID, transaction.ID, outcome.CategoryID)
		e.metrics.IncrementCounter("rules_fired_total", map[string]string{"rule_id": fmt.Sprintf("%d", outcome.RuleID)})
	}
	return result, nil
}

// RunAllRules reclassifies every uncategorized visible transaction, including
// rules the user has retired from future imports.
func (e *ruleEngine) RunAllRules(ctx context.Context) (*dto.RuleRunResult, error) {
	transactions, err := e.transactionRepo.GetUncategorized("")
	if err != nil {
		return nil, fmt.Errorf("failed to load uncategorized transactions: %w", err)
	}
	return e.ApplyRules(ctx, transactions, true)
}
