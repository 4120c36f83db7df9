package services

import (
	"testing"

	"bankledger/internal/database"
	"bankledger/internal/dto"
	"bankledger/internal/models"
	"bankledger/internal/repositories"

	"github.com/stretchr/testify/suite"
)

type RuleAdminServiceTestSuite struct {
	suite.Suite
	db      *database.DB
	service RuleServiceInterface
}

func (s *RuleAdminServiceTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.service = NewRuleService(
		repositories.NewRuleRepository(s.db.DB),
		repositories.NewCategoryRepository(s.db.DB),
	)

	database.CreateTestCategory(s.T(), s.db, "2.1", "Groceries")
}

func (s *RuleAdminServiceTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func TestRuleAdminServiceSuite(t *testing.T) {
	suite.Run(t, new(RuleAdminServiceTestSuite))
}

func (s *RuleAdminServiceTestSuite) TestCreateRule() {
	rule, err := s.service.CreateRule(&dto.CreateRuleRequest{
		CategoryID: "2.1",
		Conditions: []dto.ConditionRequest{
			{Text: "woolworths"},
			{Operator: "OR", Text: "coles"},
		},
	})
	s.Require().NoError(err)
	s.NotZero(rule.ID)
	s.True(rule.ApplyFuture, "apply_future defaults to true")
	s.Len(rule.Conditions, 2)
	s.Equal(0, rule.Conditions[0].Sequence)
	s.Equal(1, rule.Conditions[1].Sequence)
}

func (s *RuleAdminServiceTestSuite) TestCreateRule_SentinelTargetNeedsNoCategory() {
	rule, err := s.service.CreateRule(&dto.CreateRuleRequest{
		CategoryID: models.InternalTransferCategoryID,
		Conditions: []dto.ConditionRequest{{Text: "transfer"}},
	})
	s.NoError(err)
	s.True(rule.IsInternalTransferRule())
}

func (s *RuleAdminServiceTestSuite) TestCreateRule_UnknownTarget() {
	_, err := s.service.CreateRule(&dto.CreateRuleRequest{
		CategoryID: "9.9",
		Conditions: []dto.ConditionRequest{{Text: "shop"}},
	})
	s.ErrorIs(err, ErrRuleTargetNotFound)
}

func (s *RuleAdminServiceTestSuite) TestCreateRule_GroupTargetRejected() {
	s.Require().NoError(repositories.NewCategoryRepository(s.db.DB).Create(&models.Category{
		ID: "5", Name: "Living", CategoryType: models.CategoryTypeGroup,
	}))

	_, err := s.service.CreateRule(&dto.CreateRuleRequest{
		CategoryID: "5",
		Conditions: []dto.ConditionRequest{{Text: "shop"}},
	})
	s.ErrorIs(err, ErrCategoryNotAssignable)
}

func (s *RuleAdminServiceTestSuite) TestCreateRule_MalformedConditionsRejected() {
	_, err := s.service.CreateRule(&dto.CreateRuleRequest{
		CategoryID: "2.1",
		Conditions: []dto.ConditionRequest{
			{Operator: "AND", Text: "shop"}, // first condition must carry no operator
		},
	})
	s.ErrorIs(err, models.ErrInvalidConditionOperator)
}

func (s *RuleAdminServiceTestSuite) TestUpdateRule_ReplacesRule() {
	created, err := s.service.CreateRule(&dto.CreateRuleRequest{
		CategoryID: "2.1",
		Conditions: []dto.ConditionRequest{{Text: "woolworths"}},
	})
	s.Require().NoError(err)

	retired := false
	updated, err := s.service.UpdateRule(created.ID, &dto.CreateRuleRequest{
		CategoryID:  "2.1",
		ApplyFuture: &retired,
		Conditions:  []dto.ConditionRequest{{Text: "coles"}},
	})
	s.Require().NoError(err)
	s.Equal(created.ID, updated.ID)
	s.False(updated.ApplyFuture)
	s.Require().Len(updated.Conditions, 1)
	s.Equal("coles", updated.Conditions[0].Text)
}

func (s *RuleAdminServiceTestSuite) TestDeleteRule() {
	created, err := s.service.CreateRule(&dto.CreateRuleRequest{
		CategoryID: "2.1",
		Conditions: []dto.ConditionRequest{{Text: "woolworths"}},
	})
	s.Require().NoError(err)

	s.NoError(s.service.DeleteRule(created.ID))
	_, err = s.service.GetRule(created.ID)
	s.ErrorIs(err, repositories.ErrRuleNotFound)
}
