package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LofoWalker/upkeep/internal/company/domain"
)

func TestRegisterCustomer(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	id := domain.NewCustomerID()

	c, err := env.customers.Register(ctx, id, "Alice@X.com")
	require.NoError(t, err)
	require.Equal(t, id, c.ID)
	require.Equal(t, domain.Email("alice@x.com"), c.Email)
	require.Equal(t, []domain.Email{"alice@x.com"}, env.notifier.welcomes)

	_, err = env.customers.Register(ctx, domain.NewCustomerID(), "alice@x.com")
	require.ErrorIs(t, err, domain.ErrEmailTaken)

	_, err = env.customers.Register(ctx, id, "other@x.com")
	require.ErrorIs(t, err, domain.ErrCustomerExists)

	_, err = env.customers.Register(ctx, domain.NewCustomerID(), "nope")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestEnsureCustomer(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	id := domain.NewCustomerID()

	c, created, err := env.customers.EnsureCustomer(ctx, id, "bob@x.com")
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, id, c.ID)

	again, created, err := env.customers.EnsureCustomer(ctx, id, "bob@x.com")
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, c.ID, again.ID)
	require.Len(t, env.notifier.welcomes, 1, "welcome email is only sent once")
}
