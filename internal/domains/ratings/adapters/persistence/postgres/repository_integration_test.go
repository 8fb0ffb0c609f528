//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/Apurer/henri-storefront/internal/domains/catalog/domain"
	catalogpostgres "github.com/Apurer/henri-storefront/internal/domains/catalog/adapters/persistence/postgres"
	"github.com/Apurer/henri-storefront/internal/domains/ratings/domain"
	"github.com/Apurer/henri-storefront/internal/domains/ratings/ports"
	"github.com/Apurer/henri-storefront/internal/platform/postgres/pgtest"
)

func TestRepository_ModerationLifecycle(t *testing.T) {
	db := pgtest.Start(t).DB
	ctx := context.Background()
	product, err := catalogpostgres.NewRepository(db).Create(ctx, &catalogdomain.Product{Name: "LIPSTAR", Category: "Lip Care", SalePrice: decimal.NewFromInt(275), IsActive: true})
	require.NoError(t, err)
	repo := NewRepository(db)

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	older, err := repo.Create(ctx, &domain.Rating{ProductID: product.ID, CustomerName: "Ana", Rating: 4, CreatedAt: base})
	require.NoError(t, err)
	newer, err := repo.Create(ctx, &domain.Rating{ProductID: product.ID, CustomerName: "Bo", Rating: 2, CreatedAt: base.Add(time.Hour)})
	require.NoError(t, err)

	approved, err := repo.List(ctx, ports.ListFilter{ProductID: product.ID, ApprovedOnly: true})
	require.NoError(t, err)
	assert.Empty(t, approved)

	older.IsApproved = true
	_, err = repo.Update(ctx, older)
	require.NoError(t, err)

	approved, err = repo.List(ctx, ports.ListFilter{ProductID: product.ID, ApprovedOnly: true})
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, older.ID, approved[0].ID)

	all, err := repo.List(ctx, ports.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)

	older.IsApproved = false
	updated, err := repo.Update(ctx, older)
	require.NoError(t, err)
	assert.False(t, updated.IsApproved)

	require.NoError(t, repo.Delete(ctx, newer.ID))
	assert.ErrorIs(t, repo.Delete(ctx, newer.ID), ports.ErrNotFound)

	require.NoError(t, repo.DeleteByProduct(ctx, product.ID))
	_, err = repo.GetByID(ctx, older.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
