package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/buildvance/estimator-backend/internal/apierr"
	"github.com/buildvance/estimator-backend/internal/types"
)

func TestEstimateService_CreateDefaultsOverallMultiplier(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	builder := env.mustCreateUser(t, "eb1")
	project := env.mustCreateProject(t, builder.ID, builder.ID)

	estimate, err := env.estimates.CreateEstimate(ctx, project.ID, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, estimate.OverallMultiplier)

	_, err = env.estimates.CreateEstimate(ctx, project.ID, -2)
	require.True(t, apierr.IsValidation(err), "expected validation error, got %v", err)

	_, err = env.estimates.CreateEstimate(ctx, uuid.New(), 1)
	require.True(t, apierr.IsNotFound(err), "expected not found error, got %v", err)
}

// The full costing path: only valid quotes that are PUBLIC or owned by the
// project's builder feed the average; quantity and both multipliers scale it.
func TestEstimateService_AddLineComputesCostFromVisibleQuotes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	builder := env.mustCreateUser(t, "eb2")
	stranger := env.mustCreateUser(t, "stranger2")
	project := env.mustCreateProject(t, builder.ID, builder.ID)
	item := env.mustCreateWorkItem(t, builder.ID, "CONC-01")

	env.mustCreateQuote(t, item.ID, builder.ID, 10.00, "PUBLIC")
	env.mustCreateQuote(t, item.ID, stranger.ID, 14.00, "PUBLIC")
	env.mustCreateQuote(t, item.ID, builder.ID, 12.00, "PRIVATE") // builder's own, visible

	env.mustCreateQuote(t, item.ID, stranger.ID, 100.00, "PRIVATE") // not visible to builder

	invalid := env.mustCreateQuote(t, item.ID, builder.ID, 100.00, "PUBLIC")
	invalid.Valid = false
	_, err := env.quotes.Update(ctx, invalid)
	require.NoError(t, err)

	estimate, err := env.estimates.CreateEstimate(ctx, project.ID, 1.5)
	require.NoError(t, err)
	group, err := env.estimates.AddGroup(ctx, estimate.ID, "Concrete", "")
	require.NoError(t, err)

	line, err := env.estimates.AddLine(ctx, AddLineInput{
		GroupID:    group.ID,
		WorkItemID: item.ID,
		Quantity:   10,
		Multiplier: 1.0,
		Strategy:   "AVERAGE",
	})
	require.NoError(t, err)

	// mean(10, 14, 12) = 12.00; 12.00 x 10 x 1.0 x 1.5 = 180.00
	require.True(t, line.ComputedCost.Equal(decimal.NewFromFloat(180.00)),
		"expected 180.00, got %s", line.ComputedCost)
	require.Equal(t, estimate.ID, line.EstimateID)
	require.Equal(t, group.ID, line.GroupID)
}

func TestEstimateService_AddLineWithoutQuotesYieldsZeroCost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	builder := env.mustCreateUser(t, "eb3")
	project := env.mustCreateProject(t, builder.ID, builder.ID)
	item := env.mustCreateWorkItem(t, builder.ID, "BARE-01")

	estimate, err := env.estimates.CreateEstimate(ctx, project.ID, 2.0)
	require.NoError(t, err)
	group, err := env.estimates.AddGroup(ctx, estimate.ID, "Empty", "")
	require.NoError(t, err)

	line, err := env.estimates.AddLine(ctx, AddLineInput{
		GroupID:    group.ID,
		WorkItemID: item.ID,
		Quantity:   50,
		Strategy:   "AVERAGE",
	})
	require.NoError(t, err)
	require.True(t, line.ComputedCost.IsZero(), "expected zero cost, got %s", line.ComputedCost)
}

func TestEstimateService_AddLineRejectsUnknownStrategy(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.estimates.AddLine(context.Background(), AddLineInput{
		GroupID:    uuid.New(),
		WorkItemID: uuid.New(),
		Quantity:   1,
		Strategy:   "MEDIAN",
	})
	require.True(t, apierr.IsValidation(err), "expected validation error, got %v", err)
}

func TestEstimateService_UpdateOverallMultiplierRecomputesAllLines(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	builder := env.mustCreateUser(t, "eb4")
	project := env.mustCreateProject(t, builder.ID, builder.ID)
	item := env.mustCreateWorkItem(t, builder.ID, "STL-01")
	env.mustCreateQuote(t, item.ID, builder.ID, 20.00, "PUBLIC")

	estimate, err := env.estimates.CreateEstimate(ctx, project.ID, 1.0)
	require.NoError(t, err)
	group, err := env.estimates.AddGroup(ctx, estimate.ID, "Steel", "")
	require.NoError(t, err)
	line, err := env.estimates.AddLine(ctx, AddLineInput{
		GroupID:    group.ID,
		WorkItemID: item.ID,
		Quantity:   5,
		Strategy:   "AVERAGE",
	})
	require.NoError(t, err)
	require.True(t, line.ComputedCost.Equal(decimal.NewFromFloat(100.00)))

	_, err = env.estimates.UpdateOverallMultiplier(ctx, estimate.ID, 3.0)
	require.NoError(t, err)

	reloaded, err := env.estimates.GetEstimate(ctx, estimate.ID)
	require.NoError(t, err)
	require.Equal(t, 3.0, reloaded.OverallMultiplier)
	require.Len(t, reloaded.Groups, 1)
	require.Len(t, reloaded.Groups[0].Lines, 1)
	require.True(t, reloaded.Groups[0].Lines[0].ComputedCost.Equal(decimal.NewFromFloat(300.00)),
		"expected 300.00, got %s", reloaded.Groups[0].Lines[0].ComputedCost)

	_, err = env.estimates.UpdateOverallMultiplier(ctx, uuid.New(), 2.0)
	require.True(t, apierr.IsPrecondition(err), "expected precondition error, got %v", err)
}

func TestEstimateService_UpdateLineRecomputesCost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	builder := env.mustCreateUser(t, "eb5")
	project := env.mustCreateProject(t, builder.ID, builder.ID)
	item := env.mustCreateWorkItem(t, builder.ID, "DRY-01")
	env.mustCreateQuote(t, item.ID, builder.ID, 8.00, "PUBLIC")

	estimate, err := env.estimates.CreateEstimate(ctx, project.ID, 1.0)
	require.NoError(t, err)
	group, err := env.estimates.AddGroup(ctx, estimate.ID, "Drywall", "")
	require.NoError(t, err)
	line, err := env.estimates.AddLine(ctx, AddLineInput{
		GroupID:    group.ID,
		WorkItemID: item.ID,
		Quantity:   2,
		Strategy:   "AVERAGE",
	})
	require.NoError(t, err)

	updated, err := env.estimates.UpdateLine(ctx, UpdateLineInput{
		LineID:     line.ID,
		Quantity:   4,
		Multiplier: 2.0,
		Strategy:   "AVERAGE",
	})
	require.NoError(t, err)
	require.True(t, updated.ComputedCost.Equal(decimal.NewFromFloat(64.00)),
		"expected 64.00, got %s", updated.ComputedCost)
}

func TestEstimateService_RemoveGroupDeletesItsLines(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	builder := env.mustCreateUser(t, "eb6")
	project := env.mustCreateProject(t, builder.ID, builder.ID)
	item := env.mustCreateWorkItem(t, builder.ID, "ROOF-01")

	estimate, err := env.estimates.CreateEstimate(ctx, project.ID, 1.0)
	require.NoError(t, err)
	group, err := env.estimates.AddGroup(ctx, estimate.ID, "Roofing", "")
	require.NoError(t, err)
	_, err = env.estimates.AddLine(ctx, AddLineInput{
		GroupID:    group.ID,
		WorkItemID: item.ID,
		Quantity:   1,
		Strategy:   "AVERAGE",
	})
	require.NoError(t, err)

	require.NoError(t, env.estimates.RemoveGroup(ctx, group.ID))

	require.Zero(t, env.countRows(t, &types.EstimateGroup{}, "id = ?", group.ID))
	require.Zero(t, env.countRows(t, &types.EstimateLine{}, "group_id = ?", group.ID))

	err = env.estimates.RemoveGroup(ctx, group.ID)
	require.True(t, apierr.IsPrecondition(err), "expected precondition error, got %v", err)
}

func TestEstimateService_DeleteEstimateRemovesWholeAggregate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	builder := env.mustCreateUser(t, "eb7")
	project := env.mustCreateProject(t, builder.ID, builder.ID)
	item := env.mustCreateWorkItem(t, builder.ID, "SITE-01")

	estimate, err := env.estimates.CreateEstimate(ctx, project.ID, 1.0)
	require.NoError(t, err)
	groupA, err := env.estimates.AddGroup(ctx, estimate.ID, "Sitework", "")
	require.NoError(t, err)
	groupB, err := env.estimates.AddGroup(ctx, estimate.ID, "Cleanup", "")
	require.NoError(t, err)
	for _, g := range []uuid.UUID{groupA.ID, groupB.ID} {
		_, err = env.estimates.AddLine(ctx, AddLineInput{
			GroupID:    g,
			WorkItemID: item.ID,
			Quantity:   1,
			Strategy:   "AVERAGE",
		})
		require.NoError(t, err)
	}

	require.NoError(t, env.estimates.DeleteEstimate(ctx, estimate.ID))

	require.Zero(t, env.countRows(t, &types.Estimate{}, "id = ?", estimate.ID))
	require.Zero(t, env.countRows(t, &types.EstimateGroup{}, "estimate_id = ?", estimate.ID))
	require.Zero(t, env.countRows(t, &types.EstimateLine{}, "estimate_id = ?", estimate.ID))

	_, err = env.estimates.GetEstimate(ctx, estimate.ID)
	require.True(t, apierr.IsNotFound(err), "expected not found error, got %v", err)
}
