package repository

import (
	"context"
	"testing"

	"casetrack/domain/entities"
	"casetrack/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnConfigRepository_Upsert(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewColumnConfigRepository(testDB.DB, testTenantID)
	ctx := context.Background()

	cfg := &entities.ColumnConfiguration{
		InternalKey: entities.KeyLoanID,
		DisplayName: "Loan Account No",
		DataType:    entities.FieldTypeText,
		Product:     "personal_loan",
		Position:    1,
	}
	require.NoError(t, repo.Upsert(ctx, cfg))
	assert.NotZero(t, cfg.ID)

	t.Run("second upsert updates in place", func(t *testing.T) {
		renamed := &entities.ColumnConfiguration{
			InternalKey: entities.KeyLoanID,
			DisplayName: "Loan A/C Number",
			DataType:    entities.FieldTypeText,
			Product:     "personal_loan",
			Position:    1,
		}
		require.NoError(t, repo.Upsert(ctx, renamed))
		assert.Equal(t, cfg.ID, renamed.ID)

		configs, err := repo.ListByProduct(ctx, "personal_loan")
		require.NoError(t, err)
		require.Len(t, configs, 1)
		assert.Equal(t, "Loan A/C Number", configs[0].DisplayName)
	})
}

func TestColumnConfigRepository_ListByProduct(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewColumnConfigRepository(testDB.DB, testTenantID)
	ctx := context.Background()

	seed := []*entities.ColumnConfiguration{
		{InternalKey: entities.KeyCustomerName, DisplayName: "Customer", DataType: entities.FieldTypeText, Product: "gold_loan", Position: 2},
		{InternalKey: entities.KeyLoanID, DisplayName: "Loan No", DataType: entities.FieldTypeText, Product: "gold_loan", Position: 1},
		{InternalKey: entities.KeyOutstandingAmount, DisplayName: "POS", DataType: entities.FieldTypeNumber, Product: "gold_loan", Position: 3},
		{InternalKey: entities.KeyLoanID, DisplayName: "Card No", DataType: entities.FieldTypeText, Product: "credit_card", Position: 1},
	}
	for _, cfg := range seed {
		require.NoError(t, repo.Upsert(ctx, cfg))
	}

	configs, err := repo.ListByProduct(ctx, "gold_loan")
	require.NoError(t, err)
	require.Len(t, configs, 3)
	assert.Equal(t, entities.KeyLoanID, configs[0].InternalKey)
	assert.Equal(t, entities.KeyCustomerName, configs[1].InternalKey)
	assert.Equal(t, entities.KeyOutstandingAmount, configs[2].InternalKey)

	t.Run("other tenant sees nothing", func(t *testing.T) {
		otherRepo := NewColumnConfigRepository(testDB.DB, testTenantID+1)
		configs, err := otherRepo.ListByProduct(ctx, "gold_loan")
		require.NoError(t, err)
		assert.Empty(t, configs)
	})
}
