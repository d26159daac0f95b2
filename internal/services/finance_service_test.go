package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"onegoal/internal/models"
	"onegoal/pkg/apperrors"
)

func seedTransactions(t *testing.T, svc *FinanceService, userID primitive.ObjectID) {
	t.Helper()
	seed := []TransactionRequest{
		{Type: "income", Amount: 3000, Category: "salary", Date: "2024-05-01"},
		{Type: "expense", Amount: 40.5, Category: "food", Date: "2024-05-02"},
		{Type: "expense", Amount: 9.5, Category: "food", Date: "2024-05-02"},
		{Type: "expense", Amount: 120, Category: "rent", Date: "2024-05-03"},
		{Type: "income", Amount: 150, Category: "freelance", Date: "2024-05-10"},
	}
	for _, req := range seed {
		_, err := svc.AddTransaction(context.Background(), userID, req)
		require.NoError(t, err)
	}
}

func TestAddTransactionValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewFinanceService(&fakeFinanceStore{})
	userID := primitive.NewObjectID()

	tests := []struct {
		name string
		req  TransactionRequest
	}{
		{"unknown type", TransactionRequest{Type: "loan", Amount: 10, Category: "misc", Date: "2024-05-01"}},
		{"zero amount", TransactionRequest{Type: "expense", Amount: 0, Category: "misc", Date: "2024-05-01"}},
		{"negative amount", TransactionRequest{Type: "expense", Amount: -5, Category: "misc", Date: "2024-05-01"}},
		{"missing category", TransactionRequest{Type: "expense", Amount: 5, Date: "2024-05-01"}},
		{"bad date", TransactionRequest{Type: "expense", Amount: 5, Category: "misc", Date: "05/01/2024"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddTransaction(ctx, userID, tt.req)
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))
		})
	}
}

func TestListTransactionsFilters(t *testing.T) {
	ctx := context.Background()
	svc := NewFinanceService(&fakeFinanceStore{})
	userID := primitive.NewObjectID()
	seedTransactions(t, svc, userID)

	all, err := svc.ListTransactions(ctx, userID, TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 5)
	assert.Equal(t, "2024-05-10", all[0].Date, "newest first")

	food, err := svc.ListTransactions(ctx, userID, TransactionFilter{Category: "food"})
	require.NoError(t, err)
	assert.Len(t, food, 2)

	expenses, err := svc.ListTransactions(ctx, userID, TransactionFilter{Type: "expense"})
	require.NoError(t, err)
	assert.Len(t, expenses, 3)

	window, err := svc.ListTransactions(ctx, userID, TransactionFilter{From: "2024-05-02", To: "2024-05-03"})
	require.NoError(t, err)
	assert.Len(t, window, 3)

	_, err = svc.ListTransactions(ctx, userID, TransactionFilter{Type: "transfer"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))
}

func TestGetSummary(t *testing.T) {
	ctx := context.Background()
	svc := NewFinanceService(&fakeFinanceStore{})
	userID := primitive.NewObjectID()
	seedTransactions(t, svc, userID)

	summary, err := svc.GetSummary(ctx, userID, TransactionFilter{})
	require.NoError(t, err)

	assert.Equal(t, 3150.0, summary.Income)
	assert.Equal(t, 170.0, summary.Expenses)
	assert.Equal(t, 2980.0, summary.Balance)
	assert.Equal(t, 5, summary.Count)

	require.Len(t, summary.ByCategory, 2)
	assert.Equal(t, models.CategoryTotal{Category: "rent", Total: 120}, summary.ByCategory[0])
	assert.Equal(t, models.CategoryTotal{Category: "food", Total: 50}, summary.ByCategory[1])

	require.Len(t, summary.Trend, 2)
	assert.Equal(t, models.DailyTotal{Date: "2024-05-02", Total: 50}, summary.Trend[0])
	assert.Equal(t, models.DailyTotal{Date: "2024-05-03", Total: 120}, summary.Trend[1])
}

func TestGetSummaryEmpty(t *testing.T) {
	ctx := context.Background()
	svc := NewFinanceService(&fakeFinanceStore{})

	summary, err := svc.GetSummary(ctx, primitive.NewObjectID(), TransactionFilter{})
	require.NoError(t, err)
	assert.Zero(t, summary.Income)
	assert.Zero(t, summary.Expenses)
	assert.Zero(t, summary.Count)
	assert.Empty(t, summary.ByCategory)
}

func TestUpdateTransaction(t *testing.T) {
	ctx := context.Background()
	svc := NewFinanceService(&fakeFinanceStore{})
	userID := primitive.NewObjectID()

	created, err := svc.AddTransaction(ctx, userID, TransactionRequest{Type: "expense", Amount: 10, Category: "food", Date: "2024-05-01"})
	require.NoError(t, err)

	updated, err := svc.UpdateTransaction(ctx, userID, created.ID, TransactionRequest{Type: "expense", Amount: 12, Category: "snacks", Date: "2024-05-01"})
	require.NoError(t, err)
	assert.Equal(t, 12.0, updated.Amount)
	assert.Equal(t, "snacks", updated.Category)
	assert.Equal(t, created.ID, updated.ID)

	_, err = svc.UpdateTransaction(ctx, userID, "missing", TransactionRequest{Type: "expense", Amount: 12, Category: "snacks", Date: "2024-05-01"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	svc := NewFinanceService(&fakeFinanceStore{})
	userID := primitive.NewObjectID()

	created, err := svc.AddTransaction(ctx, userID, TransactionRequest{Type: "expense", Amount: 10, Category: "food", Date: "2024-05-01"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTransaction(ctx, userID, created.ID))

	all, err := svc.ListTransactions(ctx, userID, TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)

	err = svc.DeleteTransaction(ctx, userID, created.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}
