//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogpostgres "github.com/Apurer/henri-storefront/internal/domains/catalog/adapters/persistence/postgres"
	catalogdomain "github.com/Apurer/henri-storefront/internal/domains/catalog/domain"
	orderspostgres "github.com/Apurer/henri-storefront/internal/domains/orders/adapters/persistence/postgres"
	ordersdomain "github.com/Apurer/henri-storefront/internal/domains/orders/domain"
	ordersports "github.com/Apurer/henri-storefront/internal/domains/orders/ports"
	platformpostgres "github.com/Apurer/henri-storefront/internal/platform/postgres"
	"github.com/Apurer/henri-storefront/internal/platform/postgres/pgtest"
)

func TestReader_Aggregates(t *testing.T) {
	database := pgtest.Start(t)
	ctx := context.Background()

	catalog := catalogpostgres.NewRepository(database.DB)
	lip, err := catalog.Create(ctx, &catalogdomain.Product{Name: "LIPSTAR", Category: "Lip Care", CurrentStock: 50, MinimumStock: 5, SalePrice: decimal.RequireFromString("275.00"), IsActive: true})
	require.NoError(t, err)
	_, err = catalog.Create(ctx, &catalogdomain.Product{Name: "LOW", Category: "Sunscreen", CurrentStock: 1, MinimumStock: 3, SalePrice: decimal.NewFromInt(1), IsActive: true})
	require.NoError(t, err)

	orders := orderspostgres.NewRepository(database.DB)
	place := func(qty int) *ordersdomain.Order {
		item, err := ordersdomain.NewItem(lip.ID, lip.Name, qty, lip.SalePrice)
		require.NoError(t, err)
		order, err := ordersdomain.NewOrder(ordersdomain.Customer{Name: "A", Phone: "1", Email: "a@x.com", Address: "Z"}, "", "", []ordersdomain.Item{item})
		require.NoError(t, err)
		placed, err := orders.Place(ctx, order, ordersports.PlaceOptions{})
		require.NoError(t, err)
		return placed
	}
	first := place(1)
	second := place(2)
	old := place(4)
	_, err = orders.UpdateStatus(ctx, second.ID, ordersdomain.StatusCancelled, "")
	require.NoError(t, err)
	require.NoError(t, database.DB.Exec(`UPDATE orders SET created_at = NOW() - INTERVAL '40 days' WHERE id = ?`, old.ID).Error)

	pool, err := platformpostgres.ConnectPool(ctx, database.DSN)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	reader := NewReader(pool)

	count, err := reader.CountOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	byStatus, err := reader.OrdersByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), byStatus[ordersdomain.StatusPending])
	assert.Equal(t, int64(1), byStatus[ordersdomain.StatusCancelled])

	low, err := reader.CountLowStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), low)

	recent, err := reader.RecentOrders(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, second.OrderNumber, recent[0].OrderNumber)
	assert.Equal(t, first.OrderNumber, recent[1].OrderNumber)
	assert.True(t, decimal.RequireFromString("550").Equal(recent[0].Total))

	categories, err := reader.ProductsByCategory(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)

	sales, err := reader.DailySales(ctx, time.Now().Add(-30*24*time.Hour))
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, int64(2), sales[0].Orders)
	assert.True(t, decimal.RequireFromString("825").Equal(sales[0].Revenue))

	top, err := reader.TopProducts(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, int64(5), top[0].Quantity)

	revenue, err := reader.TotalRevenue(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1925").Equal(revenue), revenue.String())
}
