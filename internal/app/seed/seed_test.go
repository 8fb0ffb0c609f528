package seed

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	catalogmemory "github.com/Apurer/henri-storefront/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/Apurer/henri-storefront/internal/domains/catalog/domain"
	usermemory "github.com/Apurer/henri-storefront/internal/domains/users/adapters/memory"
	userapp "github.com/Apurer/henri-storefront/internal/domains/users/application"
)

func TestRun_PopulatesEmptyCatalogOnce(t *testing.T) {
	products := catalogmemory.NewRepository()
	users := userapp.NewService(usermemory.NewRepository(), userapp.WithHashCost(bcrypt.MinCost))
	ctx := context.Background()

	res, err := New(products, users).Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 15, res.ProductsCreated)
	require.Equal(t, DefaultAdminEmail, res.AdminEmail)

	admin, err := users.AdminLogin(ctx, DefaultAdminEmail, DefaultAdminPassword)
	require.NoError(t, err)
	require.True(t, admin.IsAdmin)

	res, err = New(products, users).Run(ctx)
	require.NoError(t, err)
	require.Zero(t, res.ProductsCreated)
	require.Zero(t, res.ProductsBackfill)

	count, err := products.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(15), count)

	lipstar, err := products.GetByName(ctx, "LIPSTAR")
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(550).Equal(lipstar.DemoPrice))
	require.Equal(t, float64(3), lipstar.MinimumStock)
}

func TestRun_BackfillsBlankFieldsOnly(t *testing.T) {
	products := catalogmemory.NewRepository()
	ctx := context.Background()

	_, err := products.Create(ctx, &catalogdomain.Product{Name: "GLOWORG", Category: "Cream", SalePrice: decimal.NewFromInt(365), IsActive: true})
	require.NoError(t, err)
	_, err = products.Create(ctx, &catalogdomain.Product{Name: "LIPSTAR", Category: "Lip Care", Description: "custom", DemoPrice: decimal.NewFromInt(600), IsActive: true})
	require.NoError(t, err)

	res, err := New(products, nil).Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, res.ProductsBackfill)
	require.Zero(t, res.ProductsCreated)

	gloworg, err := products.GetByName(ctx, "GLOWORG")
	require.NoError(t, err)
	require.Contains(t, gloworg.Description, "all-in-one fairness cream")
	require.True(t, decimal.NewFromInt(730).Equal(gloworg.DemoPrice))

	lipstar, err := products.GetByName(ctx, "LIPSTAR")
	require.NoError(t, err)
	require.Equal(t, "custom", lipstar.Description)
}

func TestProducts_ReturnsIndependentCopies(t *testing.T) {
	first := Products()
	first[0].Name = "mutated"
	require.Equal(t, "LIPSTAR", Products()[0].Name)
}
