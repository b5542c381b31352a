package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/buildvance/estimator-backend/internal/apierr"
)

func TestQuoteService_CreateValidatesInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.mustCreateUser(t, "qsupplier")
	item := env.mustCreateWorkItem(t, user.ID, "LBR-01")

	_, err := env.quotes.Create(ctx, CreateQuoteInput{
		WorkItemID:  item.ID,
		CreatedByID: user.ID,
		SupplierID:  user.ID,
		Unit:        "FURLONG",
		UnitPrice:   decimal.NewFromFloat(1),
		Currency:    "USD",
	})
	require.True(t, apierr.IsValidation(err), "expected validation error for unit, got %v", err)

	_, err = env.quotes.Create(ctx, CreateQuoteInput{
		WorkItemID:  item.ID,
		CreatedByID: user.ID,
		SupplierID:  user.ID,
		Unit:        "EACH",
		UnitPrice:   decimal.NewFromFloat(1),
		Currency:    "DOLLARS",
	})
	require.True(t, apierr.IsValidation(err), "expected validation error for currency, got %v", err)

	_, err = env.quotes.Create(ctx, CreateQuoteInput{
		WorkItemID:  item.ID,
		CreatedByID: user.ID,
		SupplierID:  user.ID,
		Unit:        "EACH",
		UnitPrice:   decimal.NewFromFloat(-3),
		Currency:    "USD",
	})
	require.True(t, apierr.IsValidation(err), "expected validation error for price, got %v", err)
}

func TestQuoteService_CreateStartsValidWithPublicFallback(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustCreateUser(t, "qcreator")
	item := env.mustCreateWorkItem(t, user.ID, "TIL-01")

	quote := env.mustCreateQuote(t, item.ID, user.ID, 42.50, "whatever")
	require.True(t, quote.Valid)
	require.Equal(t, "PUBLIC", string(quote.Domain))
	require.False(t, quote.CreatedAt.IsZero())
	require.False(t, quote.LastUpdatedAt.IsZero())
}

func TestQuoteService_UpdateBumpsLastUpdatedAt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.mustCreateUser(t, "qupdater")
	item := env.mustCreateWorkItem(t, user.ID, "PNT-01")
	quote := env.mustCreateQuote(t, item.ID, user.ID, 9.99, "PUBLIC")

	before := quote.LastUpdatedAt
	time.Sleep(5 * time.Millisecond)

	quote.UnitPrice = decimal.NewFromFloat(11.00)
	updated, err := env.quotes.Update(ctx, quote)
	require.NoError(t, err)
	require.True(t, updated.LastUpdatedAt.After(before),
		"expected audit timestamp to move forward: %s vs %s", updated.LastUpdatedAt, before)
}

func TestQuoteService_UpdateAndDeleteRequirePersistedTarget(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.mustCreateUser(t, "qdeleter")
	item := env.mustCreateWorkItem(t, user.ID, "GLS-01")
	quote := env.mustCreateQuote(t, item.ID, user.ID, 3.00, "PUBLIC")

	require.NoError(t, env.quotes.Delete(ctx, quote.ID))

	err := env.quotes.Delete(ctx, quote.ID)
	require.True(t, apierr.IsPrecondition(err), "expected precondition error, got %v", err)

	_, err = env.quotes.Update(ctx, quote)
	require.True(t, apierr.IsPrecondition(err), "expected precondition error, got %v", err)
}

func TestQuoteService_PaginationByCreator(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.mustCreateUser(t, "qpager")
	item := env.mustCreateWorkItem(t, user.ID, "PAG-01")

	for i := 0; i < 5; i++ {
		env.mustCreateQuote(t, item.ID, user.ID, float64(i+1), "PUBLIC")
	}

	page1, err := env.quotes.GetQuotesByCreator(ctx, user.ID, 1, 2)
	require.NoError(t, err)
	require.Len(t, page1.Items, 2)
	require.Equal(t, int64(5), page1.TotalCount)
	require.True(t, page1.HasNext)

	page3, err := env.quotes.GetQuotesByCreator(ctx, user.ID, 3, 2)
	require.NoError(t, err)
	require.Len(t, page3.Items, 1)
	require.False(t, page3.HasNext)

	page4, err := env.quotes.GetQuotesByCreator(ctx, user.ID, 4, 2)
	require.NoError(t, err)
	require.Empty(t, page4.Items)
	require.False(t, page4.HasNext)

	// out-of-range inputs fall back to sane defaults
	fallback, err := env.quotes.GetQuotesByCreator(ctx, user.ID, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 1, fallback.Page)
	require.Equal(t, defaultQuotePageSize, fallback.PageSize)
	require.Len(t, fallback.Items, 5)

	count, err := env.quotes.CountByCreator(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(5), count)
}

func TestQuoteService_ListBySupplierIsIndependentOfCreator(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.mustCreateUser(t, "qc2")
	supplier := env.mustCreateUser(t, "qs2")
	item := env.mustCreateWorkItem(t, creator.ID, "SUP-01")

	_, err := env.quotes.Create(ctx, CreateQuoteInput{
		WorkItemID:  item.ID,
		CreatedByID: creator.ID,
		SupplierID:  supplier.ID,
		Unit:        "HOUR",
		UnitPrice:   decimal.NewFromFloat(75.00),
		Currency:    "USD",
	})
	require.NoError(t, err)

	bySupplier, err := env.quotes.GetQuotesBySupplier(ctx, supplier.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, bySupplier.Items, 1)

	byCreatorAsSupplier, err := env.quotes.GetQuotesBySupplier(ctx, creator.ID, 1, 10)
	require.NoError(t, err)
	require.Empty(t, byCreatorAsSupplier.Items)
}
