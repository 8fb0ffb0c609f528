//go:build integration

package postgres

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/henri-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/henri-storefront/internal/domains/catalog/ports"
	"github.com/Apurer/henri-storefront/internal/platform/postgres/pgtest"
)

func TestRepository_CreateAndList(t *testing.T) {
	repo := NewRepository(pgtest.Start(t).DB)
	ctx := context.Background()

	for _, p := range []domain.Product{
		{Name: "ROOFS SPF", Category: "Sunscreen", SalePrice: decimal.RequireFromString("500.00"), IsActive: true},
		{Name: "Elight Sunscreen", Category: "Sunscreen", SalePrice: decimal.RequireFromString("425.00"), IsActive: true},
		{Name: "50%_off", Category: "Promo", SalePrice: decimal.NewFromInt(1), IsActive: false},
	} {
		p := p
		_, err := repo.Create(ctx, &p)
		require.NoError(t, err)
	}

	active, err := repo.List(ctx, ports.ProductFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	found, err := repo.List(ctx, ports.ProductFilter{ActiveOnly: true, NameTerm: "spf"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "ROOFS SPF", found[0].Name)
	assert.True(t, decimal.RequireFromString("500").Equal(found[0].SalePrice))

	literal, err := repo.List(ctx, ports.ProductFilter{NameTerm: "%_"})
	require.NoError(t, err)
	require.Len(t, literal, 1)
	assert.Equal(t, "50%_off", literal[0].Name)

	categories, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sunscreen"}, categories)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestRepository_UpdateCanDeactivate(t *testing.T) {
	repo := NewRepository(pgtest.Start(t).DB)
	ctx := context.Background()

	saved, err := repo.Create(ctx, &domain.Product{Name: "LIPSTAR", Category: "Lip Care", SalePrice: decimal.NewFromInt(275), IsActive: true})
	require.NoError(t, err)

	saved.IsActive = false
	saved.CurrentStock = 7
	updated, err := repo.Update(ctx, saved)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, float64(7), updated.CurrentStock)

	_, err = repo.Update(ctx, &domain.Product{ID: 999, Name: "x", Category: "y"})
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_DecrementStockIsAtomic(t *testing.T) {
	repo := NewRepository(pgtest.Start(t).DB)
	ctx := context.Background()

	a, err := repo.Create(ctx, &domain.Product{Name: "A", Category: "X", CurrentStock: 5, SalePrice: decimal.NewFromInt(1), IsActive: true})
	require.NoError(t, err)
	b, err := repo.Create(ctx, &domain.Product{Name: "B", Category: "X", CurrentStock: 1, SalePrice: decimal.NewFromInt(1), IsActive: true})
	require.NoError(t, err)

	err = repo.DecrementStock(ctx, []ports.StockChange{{ProductID: a.ID, Quantity: 2}, {ProductID: b.ID, Quantity: 2}}, false)
	assert.ErrorIs(t, err, ports.ErrInsufficientStock)

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(5), got.CurrentStock)

	err = repo.DecrementStock(ctx, []ports.StockChange{{ProductID: 404, Quantity: 1}}, false)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo := NewRepository(pgtest.Start(t).DB)
	ctx := context.Background()

	saved, err := repo.Create(ctx, &domain.Product{Name: "A", Category: "X", IsActive: true})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, saved.ID))
	_, err = repo.GetByID(ctx, saved.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, saved.ID), ports.ErrNotFound)
}
