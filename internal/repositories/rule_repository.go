package repositories

import (
	"errors"
	"fmt"

	"bankledger/internal/models"

	"gorm.io/gorm"
)

var ErrRuleNotFound = errors.New("categorization rule not found")

// ruleRepository implements RuleRepositoryInterface
type ruleRepository struct {
	db *gorm.DB
}

// NewRuleRepository creates a new categorization rule repository
func NewRuleRepository(db *gorm.DB) RuleRepositoryInterface {
	return &ruleRepository{db: db}
}

// Create creates a new rule with its description conditions
func (r *ruleRepository) Create(rule *models.CategorizationRule) error {
	if err := r.db.Create(rule).Error; err != nil {
		return fmt.Errorf("failed to create rule: %w", err)
	}
	return nil
}

// GetByID retrieves a rule with its conditions preloaded
func (r *ruleRepository) GetByID(id int64) (*models.CategorizationRule, error) {
	var rule models.CategorizationRule
	if err := r.db.Preload("Conditions", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence ASC")
	}).Where("id = ?", id).First(&rule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRuleNotFound
		}
		return nil, fmt.Errorf("failed to get rule: %w", err)
	}
	return &rule, nil
}

// GetAllOrdered retrieves every rule in priority order. Rule id doubles as
// priority: lower id wins, first match ends evaluation.
func (r *ruleRepository) GetAllOrdered() ([]models.CategorizationRule, error) {
	var rules []models.CategorizationRule
	if err := r.db.Preload("Conditions", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence ASC")
	}).Order("id ASC").Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to get rules: %w", err)
	}
	return rules, nil
}

// Update replaces a rule and its conditions
func (r *ruleRepository) Update(rule *models.CategorizationRule) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.CategorizationRule
		if err := tx.Where("id = ?", rule.ID).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRuleNotFound
			}
			return fmt.Errorf("failed to get rule for update: %w", err)
		}

		if err := tx.Where("rule_id = ?", rule.ID).Delete(&models.DescriptionCondition{}).Error; err != nil {
			return fmt.Errorf("failed to clear rule conditions: %w", err)
		}

		if err := tx.Model(&models.CategorizationRule{}).Where("id = ?", rule.ID).
			Updates(map[string]interface{}{
				"category_id":     rule.CategoryID,
				"amount_operator": rule.AmountOperator,
				"amount_value":    rule.AmountValue,
				"amount_value2":   rule.AmountValue2,
				"account_id":      rule.AccountID,
				"date_range":      rule.DateRange,
				"apply_future":    rule.ApplyFuture,
			}).Error; err != nil {
			return fmt.Errorf("failed to update rule: %w", err)
		}

		for i := range rule.Conditions {
			rule.Conditions[i].ID = 0
			rule.Conditions[i].RuleID = rule.ID
		}
		if len(rule.Conditions) > 0 {
			if err := tx.Create(&rule.Conditions).Error; err != nil {
				return fmt.Errorf("failed to create rule conditions: %w", err)
			}
		}
		return nil
	})
}

// Delete removes a rule and its conditions
func (r *ruleRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rule_id = ?", id).Delete(&models.DescriptionCondition{}).Error; err != nil {
			return fmt.Errorf("failed to delete rule conditions: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&models.CategorizationRule{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete rule: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrRuleNotFound
		}
		return nil
	})
}
