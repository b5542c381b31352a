package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/buildvance/estimator-backend/internal/apierr"
	"github.com/buildvance/estimator-backend/internal/types"
)

func TestWorkItemService_CreateAppliesFallbacks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.mustCreateUser(t, "builder1")

	item, err := env.workItems.Create(ctx, CreateWorkItemInput{
		UserID: user.ID,
		Code:   " EXC-01 ",
		Name:   "Excavation",
		Domain: "garbage",
	})
	require.NoError(t, err)
	require.Equal(t, "EXC-01", item.Code)
	require.Equal(t, types.DefaultGroupName, item.DefaultGroupName)
	require.Equal(t, types.DomainPublic, item.Domain)
}

func TestWorkItemService_CreateRejectsBlankCode(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustCreateUser(t, "builder2")

	_, err := env.workItems.Create(context.Background(), CreateWorkItemInput{
		UserID: user.ID,
		Code:   "  ",
		Name:   "Nameless",
	})
	require.True(t, apierr.IsValidation(err), "expected validation error, got %v", err)
}

func TestWorkItemService_CreateRejectsDuplicateCodePerUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.mustCreateUser(t, "alice")
	bob := env.mustCreateUser(t, "bobby")

	env.mustCreateWorkItem(t, alice.ID, "FND-01")

	_, err := env.workItems.Create(ctx, CreateWorkItemInput{UserID: alice.ID, Code: "FND-01", Name: "Duplicate"})
	require.True(t, apierr.IsValidation(err), "expected validation error, got %v", err)

	// same code under a different user is fine
	item, err := env.workItems.Create(ctx, CreateWorkItemInput{UserID: bob.ID, Code: "FND-01", Name: "Foundation"})
	require.NoError(t, err)
	require.Equal(t, bob.ID, item.UserID)
}

func TestWorkItemService_CreateRejectsUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.workItems.Create(context.Background(), CreateWorkItemInput{
		UserID: uuid.New(),
		Code:   "X-1",
		Name:   "Orphan",
	})
	require.True(t, apierr.IsNotFound(err), "expected not found error, got %v", err)
}

func TestWorkItemService_GetByUserAndCodeRejectsBlankCode(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustCreateUser(t, "builder3")

	_, err := env.workItems.GetByUserAndCode(context.Background(), user.ID, "  ")
	require.True(t, apierr.IsValidation(err), "expected validation error, got %v", err)
}

func TestWorkItemService_ListByUserAndDomain(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.mustCreateUser(t, "builder4")

	env.mustCreateWorkItem(t, user.ID, "PUB-01")
	priv, err := env.workItems.Create(ctx, CreateWorkItemInput{
		UserID: user.ID,
		Code:   "PRV-01",
		Name:   "Private item",
		Domain: "PRIVATE",
	})
	require.NoError(t, err)

	items, err := env.workItems.ListByUserAndDomain(ctx, user.ID, "PRIVATE")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, priv.ID, items[0].ID)

	all, err := env.workItems.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)
}
