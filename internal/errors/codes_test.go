package errors

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// CodesTestSuite defines the test suite for error codes
type CodesTestSuite struct {
	suite.Suite
}

// TestCodesTestSuite runs the test suite
func TestCodesTestSuite(t *testing.T) {
	suite.Run(t, new(CodesTestSuite))
}

// TestGetErrorMessage_ValidCode tests getting message for valid error codes
func (s *CodesTestSuite) TestGetErrorMessage_ValidCode() {
	testCases := []struct {
		name     string
		code     ErrorCode
		expected string
	}{
		{
			name:     "Validation General",
			code:     ValidationGeneral,
			expected: "Validation failed",
		},
		{
			name:     "Format Unknown",
			code:     FormatUnknown,
			expected: "Unrecognized import format",
		},
		{
			name:     "Format Header Mismatch",
			code:     FormatHeaderMismatch,
			expected: "CSV header does not match the selected format",
		},
		{
			name:     "Import Commit Failed",
			code:     ImportCommitFailed,
			expected: "Import could not be committed; nothing was saved",
		},
		{
			name:     "Category Not Found",
			code:     CategoryNotFound,
			expected: "Category not found",
		},
		{
			name:     "Category In Use",
			code:     CategoryInUse,
			expected: "Category is still referenced by transactions",
		},
		{
			name:     "Vault Decryption Failed",
			code:     VaultDecryptionFailed,
			expected: "Stored data could not be decrypted",
		},
		{
			name:     "System Internal Error",
			code:     SystemInternalError,
			expected: "An unexpected error occurred. Please contact support with trace ID",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, GetErrorMessage(tc.code))
		})
	}
}

// TestGetErrorMessage_UnknownCode tests the fallback message
func (s *CodesTestSuite) TestGetErrorMessage_UnknownCode() {
	s.Equal("An error occurred", GetErrorMessage(ErrorCode("NOPE_999")))
	s.Equal("An error occurred", GetErrorMessage(ErrorCode("")))
}

// TestIsValidErrorCode tests error code registration checks
func (s *CodesTestSuite) TestIsValidErrorCode() {
	valid := []ErrorCode{
		ValidationGeneral, FormatUnknown, ImportSessionNotFound,
		CategoryNotFound, PayeeNotFound, TransactionNotFound,
		MappingNotFound, BudgetNotFound, VaultDecryptionFailed,
		SystemRateLimitExceeded,
	}
	for _, code := range valid {
		s.True(IsValidErrorCode(code), "expected %s to be registered", code)
	}

	s.False(IsValidErrorCode(ErrorCode("FORMAT_999")))
	s.False(IsValidErrorCode(ErrorCode("")))
}

// TestErrorCodePrefixes verifies every registered code carries a known prefix
func (s *CodesTestSuite) TestErrorCodePrefixes() {
	prefixes := []string{
		"VALIDATION_", "FORMAT_", "IMPORT_", "CATEGORY_", "PAYEE_",
		"TRANSACTION_", "MAPPING_", "BUDGET_", "VAULT_", "SYSTEM_",
	}

	for code := range errorMessages {
		matched := false
		for _, prefix := range prefixes {
			if len(code) > len(prefix) && string(code[:len(prefix)]) == prefix {
				matched = true
				break
			}
		}
		s.True(matched, "code %s has no recognized prefix", code)
	}
}
