package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/buildvance/estimator-backend/internal/apierr"
	"github.com/buildvance/estimator-backend/internal/types"
)

func TestProjectService_BuilderAndOwnerMayBeTheSamePerson(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustCreateUser(t, "solo")

	project := env.mustCreateProject(t, user.ID, user.ID)
	require.Equal(t, user.ID, project.BuilderID)
	require.Equal(t, user.ID, project.OwnerID)
}

func TestProjectService_CreateRejectsUnknownUsers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	builder := env.mustCreateUser(t, "pbuilder")

	_, err := env.projects.Create(ctx, builder.ID, uuid.New(), types.Address{})
	require.True(t, apierr.IsNotFound(err), "expected not found error, got %v", err)

	_, err = env.projects.Create(ctx, uuid.New(), builder.ID, types.Address{})
	require.True(t, apierr.IsNotFound(err), "expected not found error, got %v", err)
}

func TestProjectService_ListByRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	builder := env.mustCreateUser(t, "lbuilder")
	owner := env.mustCreateUser(t, "lowner")

	env.mustCreateProject(t, builder.ID, owner.ID)
	env.mustCreateProject(t, builder.ID, builder.ID)

	asBuilder, err := env.projects.ListByBuilder(ctx, builder.ID)
	require.NoError(t, err)
	require.Len(t, asBuilder, 2)

	asOwner, err := env.projects.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, asOwner, 1)
}
