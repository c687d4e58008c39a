package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name        string
		transaction Transaction
		wantErr     error
	}{
		{
			name: "valid transaction",
			transaction: Transaction{
				EncryptedDate:        "enc:2024-01-05",
				EncryptedAmount:      "enc:-12.50",
				EncryptedDescription: "enc:STARBUCKS #123",
			},
			wantErr: nil,
		},
		{
			name: "missing date ciphertext",
			transaction: Transaction{
				EncryptedAmount:      "enc:-12.50",
				EncryptedDescription: "enc:STARBUCKS #123",
			},
			wantErr: ErrTransactionDateEmpty,
		},
		{
			name: "missing amount ciphertext",
			transaction: Transaction{
				EncryptedDate:        "enc:2024-01-05",
				EncryptedDescription: "enc:STARBUCKS #123",
			},
			wantErr: ErrTransactionAmountEmpty,
		},
		{
			name: "missing description ciphertext",
			transaction: Transaction{
				EncryptedDate:   "enc:2024-01-05",
				EncryptedAmount: "enc:-12.50",
			},
			wantErr: ErrTransactionDescriptionEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.transaction.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransaction_TransferMarker(t *testing.T) {
	txn := Transaction{
		EncryptedDate:        "enc:2024-01-05",
		EncryptedAmount:      "enc:-200.00",
		EncryptedDescription: "enc:monthly savings",
	}

	assert.False(t, txn.IsTransfer())
	assert.True(t, txn.IsUncategorized())

	// Presence of the marker makes this an unlinked transfer, even with an
	// empty ciphertext and no category.
	txn.MarkTransfer("")
	assert.True(t, txn.IsTransfer())
	assert.False(t, txn.IsUncategorized())
	require.NotNil(t, txn.EncryptedLinkedTransaction)
	assert.Equal(t, "", *txn.EncryptedLinkedTransaction)
}

func TestTransaction_IsUncategorized(t *testing.T) {
	categoryID := uint(7)

	uncategorized := Transaction{}
	assert.True(t, uncategorized.IsUncategorized())

	categorized := Transaction{CategoryID: &categoryID}
	assert.False(t, categorized.IsUncategorized())
}

func TestNormalizeDescription(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"STARBUCKS #123", "starbucks #123"},
		{"  Payroll  ", "payroll"},
		{"", ""},
		{"already normal", "already normal"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDescription(tt.input))
	}
}

func TestResolution_Effective(t *testing.T) {
	item := ReviewItem{
		Suggested: CategoryResolution(3),
	}
	assert.Equal(t, CategoryResolution(3), item.EffectiveResolution())

	item.Override = TransferResolution()
	assert.Equal(t, TransferResolution(), item.EffectiveResolution())

	unset := ReviewItem{}
	assert.False(t, unset.EffectiveResolution().IsResolved())
}

func TestIsValidCategoryType(t *testing.T) {
	assert.True(t, IsValidCategoryType(CategoryTypeIncome))
	assert.True(t, IsValidCategoryType(CategoryTypeExpense))
	assert.True(t, IsValidCategoryType(CategoryTypeSaving))
	assert.True(t, IsValidCategoryType(CategoryTypeTransfer))
	assert.False(t, IsValidCategoryType("misc"))
	assert.False(t, IsValidCategoryType(""))
}

func TestIsValidMonthKey(t *testing.T) {
	assert.True(t, IsValidMonthKey("2024-01"))
	assert.False(t, IsValidMonthKey("2024-1"))
	assert.False(t, IsValidMonthKey("202401"))
	assert.False(t, IsValidMonthKey(""))
}
