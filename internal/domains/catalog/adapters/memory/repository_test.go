package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/henri-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/henri-storefront/internal/domains/catalog/ports"
)

func TestDecrementStock_AllOrNothing(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	a, err := repo.Create(ctx, &domain.Product{Name: "A", Category: "X", CurrentStock: 5, SalePrice: decimal.NewFromInt(1)})
	require.NoError(t, err)
	b, err := repo.Create(ctx, &domain.Product{Name: "B", Category: "X", CurrentStock: 1, SalePrice: decimal.NewFromInt(1)})
	require.NoError(t, err)

	err = repo.DecrementStock(ctx, []ports.StockChange{{ProductID: a.ID, Quantity: 2}, {ProductID: b.ID, Quantity: 3}}, false)
	require.ErrorIs(t, err, ports.ErrInsufficientStock)

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, float64(5), got.CurrentStock)

	require.NoError(t, repo.DecrementStock(ctx, []ports.StockChange{{ProductID: a.ID, Quantity: 2}, {ProductID: b.ID, Quantity: 3}}, true))
	got, err = repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, float64(-2), got.CurrentStock)
}

func TestDecrementStock_RepeatedProductAccumulates(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	a, err := repo.Create(ctx, &domain.Product{Name: "A", Category: "X", CurrentStock: 3, SalePrice: decimal.NewFromInt(1)})
	require.NoError(t, err)

	err = repo.DecrementStock(ctx, []ports.StockChange{{ProductID: a.ID, Quantity: 2}, {ProductID: a.ID, Quantity: 2}}, false)
	require.ErrorIs(t, err, ports.ErrInsufficientStock)

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, float64(3), got.CurrentStock)
}

func TestCreate_ReturnsCopies(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	saved, err := repo.Create(ctx, &domain.Product{Name: "A", Category: "X"})
	require.NoError(t, err)
	saved.Name = "mutated"

	got, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	require.Equal(t, "A", got.Name)
}
