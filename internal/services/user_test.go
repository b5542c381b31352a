package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/buildvance/estimator-backend/internal/apierr"
	"github.com/buildvance/estimator-backend/internal/types"
)

func TestUserService_NewRegisteredUserSavesContactWithLabels(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.NewRegisteredUser(ctx, "bob", "bob@users.buildvance.dev", testContact("bob"), types.LabelBuilder)
	require.NoError(t, err)
	require.True(t, user.Registered)
	require.NotNil(t, user.Contact)
	require.Equal(t, []types.ContactLabel{types.LabelBuilder}, []types.ContactLabel(user.Contact.Labels))

	fetched, err := env.users.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	require.NotNil(t, fetched.Contact)
	require.Equal(t, "bob@buildvance.dev", fetched.Contact.Email)
}

func TestUserService_NewUserMergesLabelsIntoExistingContact(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	contact := testContact("dana")
	contact.Labels = []types.ContactLabel{types.LabelSupplier}
	saved, err := env.contacts.Save(ctx, contact)
	require.NoError(t, err)

	user, err := env.users.NewUnregisteredUser(ctx, "dana", "dana@users.buildvance.dev", saved, types.LabelOwner, types.LabelSupplier)
	require.NoError(t, err)
	require.False(t, user.Registered)
	require.Equal(t,
		[]types.ContactLabel{types.LabelSupplier, types.LabelOwner},
		[]types.ContactLabel(user.Contact.Labels))
}

func TestUserService_NewUserRejectsDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.mustCreateUser(t, "carol")
	_, err := env.users.NewRegisteredUser(ctx, "carol", "other@users.buildvance.dev", testContact("carol2"))
	require.True(t, apierr.IsValidation(err), "expected validation error, got %v", err)
}

func TestUserService_NewUserRequiresContact(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.NewRegisteredUser(context.Background(), "nocontact", "no@users.buildvance.dev", nil)
	require.True(t, apierr.IsValidation(err), "expected validation error, got %v", err)
}

func TestUserService_DeleteLeavesContactInPlace(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.mustCreateUser(t, "erin")
	require.NoError(t, env.users.Delete(ctx, user.ID))

	_, err := env.users.GetByID(ctx, user.ID)
	require.True(t, apierr.IsNotFound(err), "expected not found error, got %v", err)

	contact, err := env.contacts.GetByID(ctx, user.ContactID)
	require.NoError(t, err)
	require.Equal(t, "erin@buildvance.dev", contact.Email)
}
