package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/henri-storefront/internal/domains/cart/domain"
	catalogmemory "github.com/Apurer/henri-storefront/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/Apurer/henri-storefront/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/henri-storefront/internal/domains/catalog/ports"
)

func newCatalog(t *testing.T) (*catalogmemory.Repository, *catalogdomain.Product, *catalogdomain.Product) {
	t.Helper()
	repo := catalogmemory.NewRepository()
	ctx := context.Background()
	a, err := repo.Create(ctx, &catalogdomain.Product{Name: "A", Category: "X", SalePrice: decimal.NewFromInt(100), CurrentStock: 5, IsActive: true})
	require.NoError(t, err)
	b, err := repo.Create(ctx, &catalogdomain.Product{Name: "B", Category: "X", SalePrice: decimal.NewFromInt(50), CurrentStock: 5, IsActive: true})
	require.NoError(t, err)
	return repo, a, b
}

func TestAdd_UnknownProduct(t *testing.T) {
	repo, _, _ := newCatalog(t)
	svc := NewService(repo)
	var cart domain.Cart

	err := svc.Add(context.Background(), &cart, 999, 1)
	require.ErrorIs(t, err, catalogports.ErrNotFound)
	require.True(t, cart.IsEmpty())
}

func TestAdd_InactiveProduct(t *testing.T) {
	repo, a, _ := newCatalog(t)
	a.IsActive = false
	_, err := repo.Update(context.Background(), a)
	require.NoError(t, err)

	svc := NewService(repo)
	var cart domain.Cart
	require.ErrorIs(t, svc.Add(context.Background(), &cart, a.ID, 1), catalogports.ErrNotFound)
}

func TestAdd_ZeroQuantityIsInvalid(t *testing.T) {
	repo, a, _ := newCatalog(t)
	svc := NewService(repo)
	var cart domain.Cart

	err := svc.Add(context.Background(), &cart, a.ID, 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSnapshot_PricesAndDropsMissing(t *testing.T) {
	repo, a, b := newCatalog(t)
	svc := NewService(repo)
	ctx := context.Background()
	var cart domain.Cart

	require.NoError(t, svc.Add(ctx, &cart, a.ID, 2))
	require.NoError(t, svc.Add(ctx, &cart, b.ID, 1))
	cart.Lines = append(cart.Lines, domain.Line{ProductID: 404, Quantity: 3})

	summary, err := svc.Snapshot(ctx, cart)
	require.NoError(t, err)
	require.Len(t, summary.Lines, 2)
	require.True(t, decimal.NewFromInt(250).Equal(summary.Subtotal))
	require.True(t, decimal.NewFromInt(250).Equal(summary.Total))
}

func TestSnapshot_ReflectsLivePrice(t *testing.T) {
	repo, a, _ := newCatalog(t)
	svc := NewService(repo)
	ctx := context.Background()
	var cart domain.Cart
	require.NoError(t, svc.Add(ctx, &cart, a.ID, 1))

	a.SalePrice = decimal.NewFromInt(80)
	_, err := repo.Update(ctx, a)
	require.NoError(t, err)

	summary, err := svc.Snapshot(ctx, cart)
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(80).Equal(summary.Total))
}

func TestSetQuantityAndRemove(t *testing.T) {
	repo, a, b := newCatalog(t)
	svc := NewService(repo)
	ctx := context.Background()
	var cart domain.Cart
	require.NoError(t, svc.Add(ctx, &cart, a.ID, 1))
	require.NoError(t, svc.Add(ctx, &cart, b.ID, 1))

	require.NoError(t, svc.SetQuantity(ctx, &cart, a.ID, 0))
	svc.Remove(ctx, &cart, 12345)

	summary, err := svc.Snapshot(ctx, cart)
	require.NoError(t, err)
	require.Len(t, summary.Lines, 1)
	require.Equal(t, b.ID, summary.Lines[0].Product.ID)
}

func TestSetQuantity_DoesNotAdmitInactiveProduct(t *testing.T) {
	repo, a, _ := newCatalog(t)
	a.IsActive = false
	_, err := repo.Update(context.Background(), a)
	require.NoError(t, err)

	svc := NewService(repo)
	ctx := context.Background()
	var cart domain.Cart
	require.ErrorIs(t, svc.Add(ctx, &cart, a.ID, 1), catalogports.ErrNotFound)

	require.NoError(t, svc.SetQuantity(ctx, &cart, a.ID, 3))
	require.True(t, cart.IsEmpty())
}

func TestSetQuantity_UnknownProductLeavesCartUnchanged(t *testing.T) {
	repo, a, _ := newCatalog(t)
	svc := NewService(repo)
	ctx := context.Background()
	var cart domain.Cart
	require.NoError(t, svc.Add(ctx, &cart, a.ID, 2))

	require.NoError(t, svc.SetQuantity(ctx, &cart, 999, 5))
	require.Equal(t, []domain.Line{{ProductID: a.ID, Quantity: 2}}, cart.Lines)
}
