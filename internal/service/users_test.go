package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStatus_ToggleActiveTwice(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	u, err := f.users.ToggleActive(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.False(t, u.IsActive)

	u, err = f.users.ToggleActive(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.True(t, u.IsActive)

	stored, err := f.store.Users().GetByID(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, f.bob.IsActive, stored.IsActive)
}

func TestUserStatus_ToggleActiveUnknownUser(t *testing.T) {
	f := newFixture(t, 1)

	_, err := f.users.ToggleActive(context.Background(), 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthorizeOwner(t *testing.T) {
	assert.NoError(t, AuthorizeOwner(1, 1))
	assert.ErrorIs(t, AuthorizeOwner(1, 2), ErrUnauthorized)

	assert.NoError(t, AuthorizeOwnerOrAdmin(Principal{UserID: 9, Role: "admin"}, 2))
	assert.ErrorIs(t, AuthorizeOwnerOrAdmin(Principal{UserID: 9, Role: "user"}, 2), ErrUnauthorized)
}
