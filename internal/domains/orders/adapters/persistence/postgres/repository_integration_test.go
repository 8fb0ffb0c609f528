//go:build integration

package postgres

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogpostgres "github.com/Apurer/henri-storefront/internal/domains/catalog/adapters/persistence/postgres"
	catalogdomain "github.com/Apurer/henri-storefront/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/henri-storefront/internal/domains/catalog/ports"
	"github.com/Apurer/henri-storefront/internal/domains/orders/domain"
	"github.com/Apurer/henri-storefront/internal/domains/orders/ports"
	"github.com/Apurer/henri-storefront/internal/platform/postgres/pgtest"
)

func newDraft(t *testing.T, product *catalogdomain.Product, qty int, key string) *domain.Order {
	t.Helper()
	item, err := domain.NewItem(product.ID, product.Name, qty, product.SalePrice)
	require.NoError(t, err)
	order, err := domain.NewOrder(domain.Customer{Name: "Asha", Phone: "9999", Email: "Asha@Example.com", Address: "Pune"}, "", "", []domain.Item{item})
	require.NoError(t, err)
	order.IdempotencyKey = key
	return order
}

func setup(t *testing.T, stock float64) (*Repository, *catalogpostgres.Repository, *catalogdomain.Product) {
	t.Helper()
	pg := pgtest.Start(t)
	catalog := catalogpostgres.NewRepository(pg.DB)
	product, err := catalog.Create(context.Background(), &catalogdomain.Product{
		Name: "LIPSTAR", Category: "Lip Care", CurrentStock: stock, SalePrice: decimal.NewFromInt(275), IsActive: true,
	})
	require.NoError(t, err)
	return NewRepository(pg.DB), catalog, product
}

func TestRepository_PlaceAllocatesNumbersAndDecrements(t *testing.T) {
	repo, catalog, product := setup(t, 5)
	ctx := context.Background()

	first, err := repo.Place(ctx, newDraft(t, product, 2, ""), ports.PlaceOptions{})
	require.NoError(t, err)
	second, err := repo.Place(ctx, newDraft(t, product, 1, ""), ports.PlaceOptions{})
	require.NoError(t, err)

	assert.Equal(t, "ORD000001", first.OrderNumber)
	assert.Equal(t, "ORD000002", second.OrderNumber)
	require.Len(t, first.Items, 1)
	assert.True(t, decimal.NewFromInt(550).Equal(first.Items[0].Total))
	assert.True(t, decimal.NewFromInt(550).Equal(first.Total))

	p, err := catalog.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(2), p.CurrentStock)

	byNumber, err := repo.GetByNumber(ctx, "ORD000002")
	require.NoError(t, err)
	assert.Equal(t, second.ID, byNumber.ID)
}

func TestRepository_PlaceRollsBackOnInsufficientStock(t *testing.T) {
	repo, catalog, product := setup(t, 1)
	ctx := context.Background()

	_, err := repo.Place(ctx, newDraft(t, product, 2, ""), ports.PlaceOptions{})
	require.ErrorIs(t, err, catalogports.ErrInsufficientStock)

	p, err := catalog.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(1), p.CurrentStock)

	// The failed attempt must not consume a number.
	order, err := repo.Place(ctx, newDraft(t, product, 1, ""), ports.PlaceOptions{})
	require.NoError(t, err)
	assert.Equal(t, "ORD000001", order.OrderNumber)

	backorder, err := repo.Place(ctx, newDraft(t, product, 3, ""), ports.PlaceOptions{AllowBackorders: true})
	require.NoError(t, err)
	assert.Equal(t, "ORD000002", backorder.OrderNumber)
}

func TestRepository_DuplicateIdempotencyKey(t *testing.T) {
	repo, catalog, product := setup(t, 5)
	ctx := context.Background()

	placed, err := repo.Place(ctx, newDraft(t, product, 1, "key-1"), ports.PlaceOptions{})
	require.NoError(t, err)

	_, err = repo.Place(ctx, newDraft(t, product, 1, "key-1"), ports.PlaceOptions{})
	require.ErrorIs(t, err, ports.ErrDuplicateIdempotencyKey)

	found, err := repo.FindByIdempotencyKey(ctx, "key-1")
	require.NoError(t, err)
	assert.Equal(t, placed.OrderNumber, found.OrderNumber)

	p, err := catalog.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(4), p.CurrentStock)
}

func TestRepository_ConcurrentPlacementNeverOversells(t *testing.T) {
	repo, catalog, product := setup(t, 5)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make(chan error, 12)
	for i := 0; i < 12; i++ {
		draft := newDraft(t, product, 1, "")
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Place(ctx, draft, ports.PlaceOptions{})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, catalogports.ErrInsufficientStock)
	}
	assert.Equal(t, 5, succeeded)

	p, err := catalog.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(0), p.CurrentStock)

	orders, err := repo.List(ctx, ports.ListFilter{})
	require.NoError(t, err)
	require.Len(t, orders, 5)
	assert.Equal(t, "ORD000005", orders[0].OrderNumber)
}

func TestRepository_ListFiltersAndUpdateStatus(t *testing.T) {
	repo, _, product := setup(t, 5)
	ctx := context.Background()

	order, err := repo.Place(ctx, newDraft(t, product, 1, ""), ports.PlaceOptions{})
	require.NoError(t, err)

	mine, err := repo.List(ctx, ports.ListFilter{CustomerEmail: "asha@example.com"})
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	updated, err := repo.UpdateStatus(ctx, order.ID, domain.StatusShipped, "courier")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, updated.Status)
	assert.Equal(t, "courier", updated.Notes)
	require.Len(t, updated.Items, 1)

	pending, err := repo.List(ctx, ports.ListFilter{Status: domain.StatusPending})
	require.NoError(t, err)
	assert.Empty(t, pending)

	_, err = repo.UpdateStatus(ctx, 999, domain.StatusShipped, "")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
