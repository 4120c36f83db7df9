package parser

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type DetectFormatTestSuite struct {
	suite.Suite
}

func TestDetectFormatSuite(t *testing.T) {
	suite.Run(t, new(DetectFormatTestSuite))
}

func (s *DetectFormatTestSuite) TestDetectFormat() {
	testCases := []struct {
		name           string
		data           string
		expectedFormat string
		expectedErr    error
	}{
		{
			name:           "QIF with type header",
			data:           "!Type:Bank\nD15/03/2024\nT-42.50\n^\n",
			expectedFormat: FormatQIF,
		},
		{
			name:           "QIF with account header",
			data:           "!Account\nNEveryday\n^\n",
			expectedFormat: FormatQIF,
		},
		{
			name:           "bare QIF without header",
			data:           "D15/03/2024\nT-42.50\nPSHOP\n^\n",
			expectedFormat: FormatQIF,
		},
		{
			name:           "CSV with standard header",
			data:           "Date,Description,Amount\n15/03/2024,SHOP,-5.00\n",
			expectedFormat: FormatCSV,
		},
		{
			name:           "CSV with bank-specific header",
			data:           "Posting Date,Narrative,Money Out,Money In,Running Balance\n",
			expectedFormat: FormatCSV,
		},
		{
			name:           "leading blank lines are skipped",
			data:           "\n\n!Type:Bank\nD15/03/2024\n",
			expectedFormat: FormatQIF,
		},
		{
			name:        "unrecognizable content",
			data:        "hello world\n",
			expectedErr: ErrUnknownFormat,
		},
		{
			name:        "empty file",
			data:        "",
			expectedErr: ErrEmptyFile,
		},
		{
			name:        "whitespace only",
			data:        "\n  \n",
			expectedErr: ErrEmptyFile,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			format, err := DetectFormat([]byte(tc.data))
			if tc.expectedErr != nil {
				s.ErrorIs(err, tc.expectedErr)
				return
			}
			s.NoError(err)
			s.Equal(tc.expectedFormat, format)
		})
	}
}

func (s *DetectFormatTestSuite) TestParse_DeclaredFormatSkipsDetection() {
	// Content that detection would call QIF parses as CSV when declared.
	data := []byte("Date,Description,Amount\n15/03/2024,SHOP,-5.00\n")

	stmt, err := Parse(data, "csv")
	s.NoError(err)
	s.Equal(FormatCSV, stmt.Format)

	_, err = Parse(data, "ofx")
	s.ErrorIs(err, ErrUnknownFormat)
}
