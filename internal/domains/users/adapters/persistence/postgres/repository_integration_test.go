//go:build integration

package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Apurer/henri-storefront/internal/domains/users/domain"
	"github.com/Apurer/henri-storefront/internal/domains/users/ports"
	"github.com/Apurer/henri-storefront/internal/platform/postgres/pgtest"
)

func TestRepository_CreateAndGetByEmail(t *testing.T) {
	repo := NewRepository(pgtest.Start(t).DB)
	ctx := context.Background()

	user, err := domain.NewUser("Ana@Example.com", "Ana", "secret", bcrypt.MinCost)
	require.NoError(t, err)
	user.UpdateContact("0300", "Lahore")

	saved, err := repo.Create(ctx, user)
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)

	fetched, err := repo.GetByEmail(ctx, "ANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, fetched.ID)
	assert.Equal(t, "Lahore", fetched.Address)
	assert.True(t, fetched.CheckPassword("secret"))

	_, err = repo.GetByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_DuplicateEmail(t *testing.T) {
	repo := NewRepository(pgtest.Start(t).DB)
	ctx := context.Background()

	first, err := domain.NewUser("ana@example.com", "Ana", "secret", bcrypt.MinCost)
	require.NoError(t, err)
	_, err = repo.Create(ctx, first)
	require.NoError(t, err)

	second, err := domain.NewUser("ana@example.com", "Other", "secret", bcrypt.MinCost)
	require.NoError(t, err)
	_, err = repo.Create(ctx, second)
	assert.ErrorIs(t, err, ports.ErrDuplicateEmail)
}

func TestRepository_ListCustomersExcludesAdmins(t *testing.T) {
	repo := NewRepository(pgtest.Start(t).DB)
	ctx := context.Background()

	for _, email := range []string{"a@x.com", "b@x.com", "admin@x.com"} {
		user, err := domain.NewUser(email, "N", "secret", bcrypt.MinCost)
		require.NoError(t, err)
		if email == "admin@x.com" {
			user.PromoteToAdmin()
		}
		_, err = repo.Create(ctx, user)
		require.NoError(t, err)
	}

	customers, err := repo.ListCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "b@x.com", customers[0].Email)

	promoted := customers[0]
	promoted.PromoteToAdmin()
	_, err = repo.Update(ctx, promoted)
	require.NoError(t, err)
	customers, err = repo.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}
