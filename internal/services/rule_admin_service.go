package services

import (
	"errors"

	"bankledger/internal/dto"
	"bankledger/internal/models"
	"bankledger/internal/repositories"
)

var ErrRuleTargetNotFound = errors.New("rule target category does not exist")

// ruleService implements RuleServiceInterface, the CRUD side of rule
// management. Evaluation lives in the rule engine.
type ruleService struct {
	ruleRepo     repositories.RuleRepositoryInterface
	categoryRepo repositories.CategoryRepositoryInterface
}

// NewRuleService creates the rule management service
func NewRuleService(ruleRepo repositories.RuleRepositoryInterface, categoryRepo repositories.CategoryRepositoryInterface) RuleServiceInterface {
	return &ruleService{
		ruleRepo:     ruleRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *ruleService) CreateRule(req *dto.CreateRuleRequest) (*models.CategorizationRule, error) {
	rule, err := s.buildRule(req)
	if err != nil {
		return nil, err
	}
	if err := s.ruleRepo.Create(rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *ruleService) GetRule(id int64) (*models.CategorizationRule, error) {
	return s.ruleRepo.GetByID(id)
}

func (s *ruleService) GetAllRules() ([]models.CategorizationRule, error) {
	return s.ruleRepo.GetAllOrdered()
}

func (s *ruleService) UpdateRule(id int64, req *dto.CreateRuleRequest) (*models.CategorizationRule, error) {
	rule, err := s.buildRule(req)
	if err != nil {
		return nil, err
	}
	rule.ID = id
	if err := s.ruleRepo.Update(rule); err != nil {
		return nil, err
	}
	return s.ruleRepo.GetByID(id)
}

func (s *ruleService) DeleteRule(id int64) error {
	return s.ruleRepo.Delete(id)
}

func (s *ruleService) buildRule(req *dto.CreateRuleRequest) (*models.CategorizationRule, error) {
	rule := &models.CategorizationRule{
		CategoryID:     req.CategoryID,
		AmountOperator: req.AmountOperator,
		AmountValue:    req.AmountValue,
		AmountValue2:   req.AmountValue2,
		DateRange:      req.DateRange,
		ApplyFuture:    true,
	}
	if req.ApplyFuture != nil {
		rule.ApplyFuture = *req.ApplyFuture
	}
	if req.AccountID != "" {
		accountID := req.AccountID
		rule.AccountID = &accountID
	}
	for i, cond := range req.Conditions {
		rule.Conditions = append(rule.Conditions, models.DescriptionCondition{
			Operator:      cond.Operator,
			Text:          cond.Text,
			CaseSensitive: cond.CaseSensitive,
			Sequence:      i,
		})
	}

	if err := rule.Validate(); err != nil {
		return nil, err
	}

	// The sentinel target needs no category row; anything else must resolve
	// to an assignable category.
	if !rule.IsInternalTransferRule() {
		category, err := s.categoryRepo.GetByID(rule.CategoryID)
		if err != nil {
			if errors.Is(err, repositories.ErrCategoryNotFound) {
				return nil, ErrRuleTargetNotFound
			}
			return nil, err
		}
		if !category.IsAssignable() {
			return nil, ErrCategoryNotAssignable
		}
	}
	return rule, nil
}
