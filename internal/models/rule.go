package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const (
	AmountOperatorNone        = ""
	AmountOperatorEquals      = "equals"
	AmountOperatorGreaterThan = "greater_than"
	AmountOperatorLessThan    = "less_than"
	AmountOperatorBetween     = "between"

	ConditionOperatorAnd = "AND"
	ConditionOperatorOr  = "OR"

	DateRangeAny        = "Any"
	DateRangeLast30Days = "Last 30 days"
	DateRangeLast90Days = "Last 90 days"
	DateRangeThisYear   = "This year"
)

var (
	ErrInvalidAmountOperator    = errors.New("invalid amount operator")
	ErrMissingAmountValue       = errors.New("amount operator requires a value")
	ErrMissingAmountUpperBound  = errors.New("between operator requires a second value")
	ErrNoDescriptionConditions  = errors.New("rule has no description conditions")
	ErrInvalidConditionOperator = errors.New("invalid description condition operator")
	ErrInvalidConditionSequence = errors.New("description conditions must be densely sequenced from 0")
)

// CategorizationRule is one user-defined auto-categorization rule. Rules are
// evaluated in ascending id order; the id doubles as the priority.
//
// A CategoryID of InternalTransferCategoryID ("0") means the rule marks
// matching transactions as internal transfers instead of categorizing them.
type CategorizationRule struct {
	ID             int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID     string           `gorm:"type:varchar(50);not null" json:"category_id"`
	AmountOperator string           `gorm:"type:varchar(20)" json:"amount_operator,omitempty"`
	AmountValue    *decimal.Decimal `gorm:"type:decimal(15,2)" json:"amount_value,omitempty"`
	AmountValue2   *decimal.Decimal `gorm:"type:decimal(15,2)" json:"amount_value2,omitempty"`
	AccountID      *string          `gorm:"type:varchar(50)" json:"account_id,omitempty"`
	DateRange      string           `gorm:"type:varchar(50)" json:"date_range,omitempty"`
	// No column default here: gorm would skip the zero value on insert and a
	// retired rule (apply_future=false) would come back true.
	ApplyFuture bool `gorm:"not null" json:"apply_future"`
	CreatedAt      time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time        `gorm:"not null" json:"updated_at"`

	// Associations; conditions load ordered by sequence.
	Conditions []DescriptionCondition `gorm:"foreignKey:RuleID;constraint:OnDelete:CASCADE" json:"conditions"`
}

// TableName returns the table name for CategorizationRule
func (r *CategorizationRule) TableName() string {
	return "categorization_rules"
}

// DescriptionCondition is one substring test in a rule's ordered condition
// list. The first condition (sequence 0) carries no operator; later ones
// combine with the running result via AND/OR, left-associatively.
type DescriptionCondition struct {
	ID            int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	RuleID        int64  `gorm:"not null;index" json:"rule_id"`
	Operator      string `gorm:"type:varchar(3)" json:"operator,omitempty"`
	Text          string `gorm:"type:varchar(255);not null" json:"text"`
	CaseSensitive bool   `gorm:"not null;default:false" json:"case_sensitive"`
	Sequence      int    `gorm:"not null" json:"sequence"`
}

// TableName returns the table name for DescriptionCondition
func (c *DescriptionCondition) TableName() string {
	return "categorization_rule_conditions"
}

// Validate checks the rule is well-formed. Malformed rules are skipped by the
// rule engine rather than aborting a whole classification batch.
func (r *CategorizationRule) Validate() error {
	switch r.AmountOperator {
	case AmountOperatorNone:
	case AmountOperatorEquals, AmountOperatorGreaterThan, AmountOperatorLessThan:
		if r.AmountValue == nil {
			return ErrMissingAmountValue
		}
	case AmountOperatorBetween:
		if r.AmountValue == nil {
			return ErrMissingAmountValue
		}
		if r.AmountValue2 == nil {
			return ErrMissingAmountUpperBound
		}
	default:
		return ErrInvalidAmountOperator
	}

	if len(r.Conditions) == 0 {
		return ErrNoDescriptionConditions
	}
	for i, cond := range r.Conditions {
		if cond.Sequence != i {
			return ErrInvalidConditionSequence
		}
		if i == 0 {
			if cond.Operator != "" {
				return ErrInvalidConditionOperator
			}
			continue
		}
		if cond.Operator != ConditionOperatorAnd && cond.Operator != ConditionOperatorOr {
			return ErrInvalidConditionOperator
		}
	}
	return nil
}

// IsInternalTransferRule reports whether the rule targets the internal
// transfer sentinel instead of a real category.
func (r *CategorizationRule) IsInternalTransferRule() bool {
	return r.CategoryID == InternalTransferCategoryID
}

// IsValidAmountOperator checks if the amount operator is valid
func IsValidAmountOperator(operator string) bool {
	switch operator {
	case AmountOperatorNone, AmountOperatorEquals, AmountOperatorGreaterThan,
		AmountOperatorLessThan, AmountOperatorBetween:
		return true
	default:
		return false
	}
}
