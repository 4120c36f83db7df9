package parser

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type QIFParserTestSuite struct {
	suite.Suite
}

func TestQIFParserSuite(t *testing.T) {
	suite.Run(t, new(QIFParserTestSuite))
}

func (s *QIFParserTestSuite) TestParseQIF_BasicBankExport() {
	data := []byte(`!Type:Bank
D15/03/2024
T-42.50
PWOOLWORTHS 1234 SYDNEY
^
D16/03/2024
T2800.00
PACME PTY LTD
MSalary
^
`)

	stmt, err := ParseQIF(data)
	s.NoError(err)
	s.Equal(FormatQIF, stmt.Format)
	s.Equal(2, stmt.TransactionCount)
	s.Len(stmt.Records, 2)
	s.Nil(stmt.LatestBalance, "QIF carries no running balance")

	first := stmt.Records[0]
	s.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), first.Date)
	s.Equal("WOOLWORTHS 1234 SYDNEY", first.Description)
	s.True(first.Withdrawal.Equal(decimal.NewFromFloat(42.50)), "negative amount becomes a withdrawal")
	s.True(first.Deposit.IsZero())
	s.True(first.SignedAmount().Equal(decimal.NewFromFloat(-42.50)))

	second := stmt.Records[1]
	s.True(second.Deposit.Equal(decimal.NewFromFloat(2800)))
	s.True(second.Withdrawal.IsZero())
	s.Equal("ACME PTY LTD - Salary", second.Description, "payee and memo join with a dash")
}

func (s *QIFParserTestSuite) TestParseQIF_MemoOnlyDescription() {
	data := []byte("D15/03/2024\nT-10.00\nMCard purchase\n^\n")

	stmt, err := ParseQIF(data)
	s.NoError(err)
	s.Equal("Card purchase", stmt.Records[0].Description)
}

func (s *QIFParserTestSuite) TestParseQIF_ApostropheYear() {
	data := []byte("D15/03'2024\nT-10.00\nPSHOP\n^\n")

	stmt, err := ParseQIF(data)
	s.NoError(err)
	s.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), stmt.Records[0].Date)
}

func (s *QIFParserTestSuite) TestParseQIF_UAmountAndCheckNumber() {
	data := []byte("D01/02/2024\nU-99.95\nPRENT\nN1042\n^\n")

	stmt, err := ParseQIF(data)
	s.NoError(err)
	s.True(stmt.Records[0].Withdrawal.Equal(decimal.NewFromFloat(99.95)))
	s.Equal("1042", stmt.Records[0].Reference)
}

func (s *QIFParserTestSuite) TestParseQIF_MissingTrailingTerminator() {
	data := []byte("D15/03/2024\nT-10.00\nPSHOP\n")

	stmt, err := ParseQIF(data)
	s.NoError(err)
	s.Equal(1, stmt.TransactionCount)
}

func (s *QIFParserTestSuite) TestParseQIF_UnusedTagsSkipped() {
	data := []byte("D15/03/2024\nT-10.00\nPSHOP\nLGroceries\nCX\n^\n")

	stmt, err := ParseQIF(data)
	s.NoError(err)
	s.Len(stmt.Records, 1)
}

func (s *QIFParserTestSuite) TestParseQIF_BadDateFailsWholeFile() {
	data := []byte("D15/03/2024\nT-10.00\nPGOOD\n^\nDnot-a-date\nT-5.00\nPBAD\n^\n")

	_, err := ParseQIF(data)
	s.Error(err)

	var parseErr *ParseError
	s.ErrorAs(err, &parseErr)
	s.Equal("date", parseErr.Field)
}

func (s *QIFParserTestSuite) TestParseQIF_MissingAmount() {
	data := []byte("D15/03/2024\nPSHOP\n^\n")

	_, err := ParseQIF(data)
	var parseErr *ParseError
	s.ErrorAs(err, &parseErr)
	s.Contains(parseErr.Reason, "amount")
}

func (s *QIFParserTestSuite) TestParseQIF_EmptyFile() {
	_, err := ParseQIF([]byte("!Type:Bank\n"))
	s.ErrorIs(err, ErrEmptyFile)
}
