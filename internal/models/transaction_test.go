package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransactionModelTestSuite struct {
	suite.Suite
}

func TestTransactionModelSuite(t *testing.T) {
	suite.Run(t, new(TransactionModelTestSuite))
}

func (s *TransactionModelTestSuite) TestValidate() {
	testCases := []struct {
		name        string
		transaction Transaction
		expectedErr error
	}{
		{
			name: "valid withdrawal",
			transaction: Transaction{
				AccountID:   "10",
				Description: "WOOLWORTHS 1234",
				Withdrawal:  decimal.NewFromFloat(42.50),
			},
		},
		{
			name: "valid deposit",
			transaction: Transaction{
				AccountID:   "10",
				Description: "SALARY",
				Deposit:     decimal.NewFromFloat(3000),
			},
		},
		{
			name: "missing account",
			transaction: Transaction{
				Description: "WOOLWORTHS 1234",
				Withdrawal:  decimal.NewFromFloat(42.50),
			},
			expectedErr: ErrMissingAccount,
		},
		{
			name: "empty description",
			transaction: Transaction{
				AccountID:  "10",
				Withdrawal: decimal.NewFromFloat(42.50),
			},
			expectedErr: ErrEmptyDescripton,
		},
		{
			name: "negative withdrawal",
			transaction: Transaction{
				AccountID:   "10",
				Description: "BAD",
				Withdrawal:  decimal.NewFromFloat(-5),
			},
			expectedErr: ErrNegativeAmount,
		},
		{
			name: "both sides set",
			transaction: Transaction{
				AccountID:   "10",
				Description: "BAD",
				Withdrawal:  decimal.NewFromFloat(5),
				Deposit:     decimal.NewFromFloat(5),
			},
			expectedErr: ErrBothSidesSet,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.transaction.Validate()
			if tc.expectedErr == nil {
				s.NoError(err)
			} else {
				s.ErrorIs(err, tc.expectedErr)
			}
		})
	}
}

func (s *TransactionModelTestSuite) TestSignedAmount() {
	withdrawal := Transaction{Withdrawal: decimal.NewFromFloat(42.50)}
	s.True(withdrawal.SignedAmount().Equal(decimal.NewFromFloat(-42.50)))

	deposit := Transaction{Deposit: decimal.NewFromFloat(100)}
	s.True(deposit.SignedAmount().Equal(decimal.NewFromFloat(100)))

	zero := Transaction{}
	s.True(zero.SignedAmount().IsZero())
}

func (s *TransactionModelTestSuite) TestAmountReturnsMagnitude() {
	withdrawal := Transaction{Withdrawal: decimal.NewFromFloat(42.50)}
	s.True(withdrawal.Amount().Equal(decimal.NewFromFloat(42.50)))

	deposit := Transaction{Deposit: decimal.NewFromFloat(100)}
	s.True(deposit.Amount().Equal(decimal.NewFromFloat(100)))
}

func (s *TransactionModelTestSuite) TestSplitSignedAmount_RoundTrip() {
	// A negative statement amount becomes a withdrawal and the signed view
	// reproduces the original value exactly.
	amounts := []string{"-42.50", "42.50", "0", "-0.01", "1234567.89"}

	for _, raw := range amounts {
		amount, err := decimal.NewFromString(raw)
		s.NoError(err)

		withdrawal, deposit := SplitSignedAmount(amount)
		s.False(withdrawal.IsNegative())
		s.False(deposit.IsNegative())
		s.False(withdrawal.IsPositive() && deposit.IsPositive())

		txn := Transaction{Withdrawal: withdrawal, Deposit: deposit}
		s.True(txn.SignedAmount().Equal(amount), "round trip failed for %s", raw)
	}
}

func (s *TransactionModelTestSuite) TestIsCategorized() {
	s.False((&Transaction{}).IsCategorized())

	empty := ""
	s.False((&Transaction{CategoryID: &empty}).IsCategorized())

	groceries := "2.1"
	s.True((&Transaction{CategoryID: &groceries}).IsCategorized())
}

func (s *TransactionModelTestSuite) TestNormalizeDescription() {
	s.Equal("aldi", NormalizeDescription("ALDI "))
	s.Equal("aldi", NormalizeDescription("aldi"))
	s.Equal("corner cafe sydney", NormalizeDescription("  Corner Cafe Sydney  "))
	s.Equal("", NormalizeDescription("   "))
}

func (s *TransactionModelTestSuite) TestIsValidFilterType() {
	valid := []string{"", FilterTypeAll, FilterTypeUncategorised, FilterTypeCategorised,
		FilterTypeInternalTransfers, FilterTypeHidden}
	for _, f := range valid {
		s.True(IsValidFilterType(f), "filter %q should be valid", f)
	}

	s.False(IsValidFilterType("archived"))
	s.False(IsValidFilterType("ALL"))
}
