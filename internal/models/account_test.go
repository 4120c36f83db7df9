package models

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type AccountModelTestSuite struct {
	suite.Suite
}

func TestAccountModelSuite(t *testing.T) {
	suite.Run(t, new(AccountModelTestSuite))
}

func (s *AccountModelTestSuite) TestIsValidBSB() {
	valid := []string{"063-000", "063000", "012-345"}
	for _, bsb := range valid {
		s.True(IsValidBSB(bsb), "BSB %q should be valid", bsb)
	}

	invalid := []string{"", "063-00", "0630000", "06-3000", "063_000", "abc-def", "063-0a0"}
	for _, bsb := range invalid {
		s.False(IsValidBSB(bsb), "BSB %q should be invalid", bsb)
	}
}

func (s *AccountModelTestSuite) TestValidate() {
	testCases := []struct {
		name        string
		account     BankAccount
		expectedErr error
	}{
		{
			name:    "valid account",
			account: BankAccount{ID: "10", Name: "Everyday", BSB: "063-000"},
		},
		{
			name:    "BSB is optional",
			account: BankAccount{ID: "10", Name: "Everyday"},
		},
		{
			name:        "invalid id",
			account:     BankAccount{ID: "acct-10", Name: "Everyday"},
			expectedErr: ErrInvalidCategoryID,
		},
		{
			name:        "empty name",
			account:     BankAccount{ID: "10"},
			expectedErr: ErrAccountNameEmpty,
		},
		{
			name:        "malformed BSB",
			account:     BankAccount{ID: "10", Name: "Everyday", BSB: "63-000"},
			expectedErr: ErrInvalidBSB,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.account.Validate()
			if tc.expectedErr == nil {
				s.NoError(err)
			} else {
				s.ErrorIs(err, tc.expectedErr)
			}
		})
	}
}
