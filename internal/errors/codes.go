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
	ValidationInvalidMonth  ErrorCode = "VALIDATION_006"
)

// Format parsing error codes (FORMAT_*)
const (
	FormatUnknown        ErrorCode = "FORMAT_001"
	FormatHeaderMismatch ErrorCode = "FORMAT_002"
	FormatBadRow         ErrorCode = "FORMAT_003"
	FormatEmptyFile      ErrorCode = "FORMAT_004"
	FormatFileTooLarge   ErrorCode = "FORMAT_005"
)

// Import error codes (IMPORT_*)
const (
	ImportSessionNotFound  ErrorCode = "IMPORT_001"
	ImportCommitFailed     ErrorCode = "IMPORT_002"
	ImportItemOutOfRange   ErrorCode = "IMPORT_003"
	ImportCategoryRequired ErrorCode = "IMPORT_004"
	ImportInvalidSort      ErrorCode = "IMPORT_005"
)

// Category error codes (CATEGORY_*)
const (
	CategoryNotFound     ErrorCode = "CATEGORY_001"
	CategoryInvalidType  ErrorCode = "CATEGORY_002"
	CategoryInUse        ErrorCode = "CATEGORY_003"
	CategoryNameReserved ErrorCode = "CATEGORY_004"
)

// Payee error codes (PAYEE_*)
const (
	PayeeNotFound ErrorCode = "PAYEE_001"
	PayeeInUse    ErrorCode = "PAYEE_002"
)

// Transaction error codes (TRANSACTION_*)
const (
	TransactionNotFound ErrorCode = "TRANSACTION_001"
	TransactionInvalid  ErrorCode = "TRANSACTION_002"
)

// Mapping error codes (MAPPING_*)
const (
	MappingNotFound ErrorCode = "MAPPING_001"
	MappingInvalid  ErrorCode = "MAPPING_002"
)

// Budget error codes (BUDGET_*)
const (
	BudgetNotFound ErrorCode = "BUDGET_001"
	BudgetInvalid  ErrorCode = "BUDGET_002"
)

// Vault error codes (VAULT_*)
const (
	VaultDecryptionFailed ErrorCode = "VAULT_001"
	VaultEncryptionFailed ErrorCode = "VAULT_002"
	VaultNotConfigured    ErrorCode = "VAULT_003"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",
	ValidationInvalidDate:   "Invalid date format or range",
	ValidationInvalidMonth:  "Invalid month key, expected YYYY-MM",

	// Format parsing errors
	FormatUnknown:        "Unrecognized import format",
	FormatHeaderMismatch: "CSV header does not match the selected format",
	FormatBadRow:         "CSV row does not match the selected format",
	FormatEmptyFile:      "The uploaded file contains no rows",
	FormatFileTooLarge:   "The uploaded file exceeds the import row limit",

	// Import errors
	ImportSessionNotFound:  "No import review session is active",
	ImportCommitFailed:     "Import could not be committed; nothing was saved",
	ImportItemOutOfRange:   "Review item index is out of range",
	ImportCategoryRequired: "A category or transfer selection is required",
	ImportInvalidSort:      "Invalid sort field or order",

	// Category errors
	CategoryNotFound:     "Category not found",
	CategoryInvalidType:  "Invalid category type",
	CategoryInUse:        "Category is still referenced by transactions",
	CategoryNameReserved: "This category name is reserved",

	// Payee errors
	PayeeNotFound: "Payee not found",
	PayeeInUse:    "Payee is still referenced by transactions",

	// Transaction errors
	TransactionNotFound: "Transaction not found",
	TransactionInvalid:  "Transaction validation failed",

	// Mapping errors
	MappingNotFound: "Mapping not found",
	MappingInvalid:  "Mapping validation failed",

	// Budget errors
	BudgetNotFound: "No budget is set for this category and month",
	BudgetInvalid:  "Budget validation failed",

	// Vault errors
	VaultDecryptionFailed: "Stored data could not be decrypted",
	VaultEncryptionFailed: "Data could not be encrypted for storage",
	VaultNotConfigured:    "Encryption passphrase is not configured",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
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
