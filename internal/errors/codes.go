package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationInvalidDate   ErrorCode = "VALIDATION_005"
)

// Category error codes (CATEGORY_*)
const (
	CategoryNotFound       ErrorCode = "CATEGORY_001"
	CategoryAlreadyExists  ErrorCode = "CATEGORY_002"
	CategoryInvalidID      ErrorCode = "CATEGORY_003"
	CategoryInUse          ErrorCode = "CATEGORY_004"
	CategoryNotAssignable  ErrorCode = "CATEGORY_005"
	CategoryInvalidParent  ErrorCode = "CATEGORY_006"
	CategoryInvalidTaxType ErrorCode = "CATEGORY_007"
)

// Account error codes (ACCOUNT_*)
const (
	AccountNotFound      ErrorCode = "ACCOUNT_001"
	AccountAlreadyExists ErrorCode = "ACCOUNT_002"
	AccountInvalidBSB    ErrorCode = "ACCOUNT_003"
	AccountNotBank       ErrorCode = "ACCOUNT_004"
)

// Transaction error codes (TRANSACTION_*)
const (
	TransactionNotFound      ErrorCode = "TRANSACTION_001"
	TransactionInvalidFilter ErrorCode = "TRANSACTION_002"
)

// Rule error codes (RULE_*)
const (
	RuleNotFound     ErrorCode = "RULE_001"
	RuleMalformed    ErrorCode = "RULE_002"
	RuleBadOperator  ErrorCode = "RULE_003"
	RuleBadCondition ErrorCode = "RULE_004"
)

// Import error codes (IMPORT_*)
const (
	ImportParseFailed   ErrorCode = "IMPORT_001"
	ImportUnknownFormat ErrorCode = "IMPORT_002"
	ImportEmptyFile     ErrorCode = "IMPORT_003"
	ImportFileTooLarge  ErrorCode = "IMPORT_004"
	ImportFailed        ErrorCode = "IMPORT_005"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
	SystemNotAvailableInEnv  ErrorCode = "SYSTEM_005"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",
	ValidationInvalidDate:   "Invalid date format or range",

	CategoryNotFound:       "Category not found",
	CategoryAlreadyExists:  "A category with this id already exists",
	CategoryInvalidID:      "Category id must be a dotted numeric path",
	CategoryInUse:          "Category is referenced by transactions and cannot be deleted",
	CategoryNotAssignable:  "Group categories cannot be assigned to transactions",
	CategoryInvalidParent:  "Parent category does not exist",
	CategoryInvalidTaxType: "Tax type must be GST, FRE or NT",

	AccountNotFound:      "Bank account not found",
	AccountAlreadyExists: "A bank account with this id already exists",
	AccountInvalidBSB:    "BSB must be six digits, optionally hyphenated",
	AccountNotBank:       "Category is not flagged as a bank account",

	TransactionNotFound:      "Transaction not found",
	TransactionInvalidFilter: "Unknown transaction filter type",

	RuleNotFound:     "Categorization rule not found",
	RuleMalformed:    "Categorization rule is malformed",
	RuleBadOperator:  "Unknown amount operator",
	RuleBadCondition: "Description conditions are malformed",

	ImportParseFailed:   "Statement file could not be parsed",
	ImportUnknownFormat: "Statement format not recognized (expected QIF or CSV)",
	ImportEmptyFile:     "Statement file contains no transactions",
	ImportFileTooLarge:  "Statement file exceeds the maximum upload size",
	ImportFailed:        "Import failed",

	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
	SystemNotAvailableInEnv:  "Endpoint is not available in this environment",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
