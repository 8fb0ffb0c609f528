package application

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	cartapp "github.com/Apurer/henri-storefront/internal/domains/cart/application"
	cartdomain "github.com/Apurer/henri-storefront/internal/domains/cart/domain"
	catalogmemory "github.com/Apurer/henri-storefront/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/Apurer/henri-storefront/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/henri-storefront/internal/domains/catalog/ports"
	ordersmemory "github.com/Apurer/henri-storefront/internal/domains/orders/adapters/memory"
	"github.com/Apurer/henri-storefront/internal/domains/orders/domain"
	"github.com/Apurer/henri-storefront/internal/domains/orders/ports"
)

type fixture struct {
	catalog *catalogmemory.Repository
	svc     *Service
	a, b    *catalogdomain.Product
}

func newFixture(t *testing.T, opts ...Option) fixture {
	t.Helper()
	catalog := catalogmemory.NewRepository()
	ctx := context.Background()
	a, err := catalog.Create(ctx, &catalogdomain.Product{Name: "A", Category: "X", SalePrice: decimal.NewFromInt(100), CurrentStock: 10, IsActive: true})
	require.NoError(t, err)
	b, err := catalog.Create(ctx, &catalogdomain.Product{Name: "B", Category: "X", SalePrice: decimal.NewFromInt(50), CurrentStock: 10, IsActive: true})
	require.NoError(t, err)
	repo := ordersmemory.NewRepository(catalog)
	svc := NewService(repo, cartapp.NewService(catalog), opts...)
	return fixture{catalog: catalog, svc: svc, a: a, b: b}
}

func customer() domain.Customer {
	return domain.Customer{Name: "Asha", Phone: "9999", Email: "asha@example.com", Address: "Pune"}
}

func (f fixture) stock(t *testing.T, id int64) float64 {
	t.Helper()
	p, err := f.catalog.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.CurrentStock
}

func TestPlaceOrder_SnapshotsItemsAndDecrementsStock(t *testing.T) {
	f := newFixture(t)
	order, err := f.svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		Lines:    []cartdomain.Line{{ProductID: f.a.ID, Quantity: 2}, {ProductID: f.b.ID, Quantity: 1}},
		Customer: customer(),
	})
	require.NoError(t, err)

	require.Equal(t, "ORD000001", order.OrderNumber)
	require.Equal(t, domain.StatusPending, order.Status)
	require.Equal(t, domain.DefaultPaymentMethod, order.PaymentMethod)
	require.True(t, decimal.NewFromInt(250).Equal(order.Subtotal))
	require.True(t, decimal.NewFromInt(250).Equal(order.Total))
	require.Len(t, order.Items, 2)
	require.True(t, decimal.NewFromInt(200).Equal(order.Items[0].Total))
	require.True(t, decimal.NewFromInt(50).Equal(order.Items[1].Total))
	require.Equal(t, float64(8), f.stock(t, f.a.ID))
	require.Equal(t, float64(9), f.stock(t, f.b.ID))
}

func TestPlaceOrder_SequentialNumbers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	input := ports.PlaceOrderInput{Lines: []cartdomain.Line{{ProductID: f.a.ID, Quantity: 1}}, Customer: customer()}

	first, err := f.svc.PlaceOrder(ctx, input)
	require.NoError(t, err)
	second, err := f.svc.PlaceOrder(ctx, input)
	require.NoError(t, err)
	require.Equal(t, "ORD000001", first.OrderNumber)
	require.Equal(t, "ORD000002", second.OrderNumber)
}

func TestPlaceOrder_ItemSnapshotSurvivesCatalogEdits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order, err := f.svc.PlaceOrder(ctx, ports.PlaceOrderInput{Lines: []cartdomain.Line{{ProductID: f.a.ID, Quantity: 1}}, Customer: customer()})
	require.NoError(t, err)

	edited, err := f.catalog.GetByID(ctx, f.a.ID)
	require.NoError(t, err)
	edited.Name = "Renamed"
	edited.SalePrice = decimal.NewFromInt(1)
	_, err = f.catalog.Update(ctx, edited)
	require.NoError(t, err)

	stored, err := f.svc.GetByNumber(ctx, order.OrderNumber)
	require.NoError(t, err)
	require.Equal(t, "A", stored.Items[0].ProductName)
	require.True(t, decimal.NewFromInt(100).Equal(stored.Items[0].UnitPrice))
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{Customer: customer()})
	require.ErrorIs(t, err, ErrEmptyCart)

	_, err = f.svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		Lines:    []cartdomain.Line{{ProductID: 404, Quantity: 1}},
		Customer: customer(),
	})
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrder_MissingCustomerField(t *testing.T) {
	f := newFixture(t)
	c := customer()
	c.Phone = ""
	_, err := f.svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{Lines: []cartdomain.Line{{ProductID: f.a.ID, Quantity: 1}}, Customer: c})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrMissingPhone)
	require.Equal(t, float64(10), f.stock(t, f.a.ID))
}

func TestPlaceOrder_InsufficientStockRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.PlaceOrder(ctx, ports.PlaceOrderInput{
		Lines:    []cartdomain.Line{{ProductID: f.a.ID, Quantity: 2}, {ProductID: f.b.ID, Quantity: 11}},
		Customer: customer(),
	})
	require.ErrorIs(t, err, catalogports.ErrInsufficientStock)
	require.Equal(t, float64(10), f.stock(t, f.a.ID))
	require.Equal(t, float64(10), f.stock(t, f.b.ID))

	next, err := f.svc.PlaceOrder(ctx, ports.PlaceOrderInput{Lines: []cartdomain.Line{{ProductID: f.a.ID, Quantity: 1}}, Customer: customer()})
	require.NoError(t, err)
	require.Equal(t, "ORD000001", next.OrderNumber)
}

func TestPlaceOrder_BackordersAllowed(t *testing.T) {
	f := newFixture(t, WithBackorders(true))
	_, err := f.svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		Lines:    []cartdomain.Line{{ProductID: f.a.ID, Quantity: 12}},
		Customer: customer(),
	})
	require.NoError(t, err)
	require.Equal(t, float64(-2), f.stock(t, f.a.ID))
}

func TestPlaceOrder_IdempotentReplay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	input := ports.PlaceOrderInput{
		Lines:          []cartdomain.Line{{ProductID: f.a.ID, Quantity: 3}},
		Customer:       customer(),
		IdempotencyKey: "checkout-1",
	}

	first, err := f.svc.PlaceOrder(ctx, input)
	require.NoError(t, err)

	// Retry after the cart was cleared still replays.
	input.Lines = nil
	second, err := f.svc.PlaceOrder(ctx, input)
	require.NoError(t, err)
	require.Equal(t, first.OrderNumber, second.OrderNumber)
	require.Equal(t, float64(7), f.stock(t, f.a.ID))

	all, err := f.svc.List(ctx, StatusAll)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestPlaceOrder_IdempotencyConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	input := ports.PlaceOrderInput{
		Lines:          []cartdomain.Line{{ProductID: f.a.ID, Quantity: 1}},
		Customer:       customer(),
		IdempotencyKey: "checkout-1",
	}
	_, err := f.svc.PlaceOrder(ctx, input)
	require.NoError(t, err)

	input.Customer.Address = "Mumbai"
	_, err = f.svc.PlaceOrder(ctx, input)
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
}

func TestPlaceOrder_ConcurrentCheckoutsNeverOversell(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers = map[string]struct{}{}
		errs    []error
	)
	for i := 0; i < 15; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			order, err := f.svc.PlaceOrder(ctx, ports.PlaceOrderInput{
				Lines:    []cartdomain.Line{{ProductID: f.a.ID, Quantity: 1}},
				Customer: customer(),
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			numbers[order.OrderNumber] = struct{}{}
		}()
	}
	wg.Wait()

	require.Len(t, numbers, 10)
	require.Len(t, errs, 5)
	for _, err := range errs {
		require.ErrorIs(t, err, catalogports.ErrInsufficientStock)
	}
	require.Equal(t, float64(0), f.stock(t, f.a.ID))
}

func TestListForCustomer_NewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	line := []cartdomain.Line{{ProductID: f.a.ID, Quantity: 1}}

	_, err := f.svc.PlaceOrder(ctx, ports.PlaceOrderInput{Lines: line, Customer: customer()})
	require.NoError(t, err)
	other := customer()
	other.Email = "someone@example.com"
	_, err = f.svc.PlaceOrder(ctx, ports.PlaceOrderInput{Lines: line, Customer: other})
	require.NoError(t, err)
	_, err = f.svc.PlaceOrder(ctx, ports.PlaceOrderInput{Lines: line, Customer: customer()})
	require.NoError(t, err)

	mine, err := f.svc.ListForCustomer(ctx, "ASHA@example.com")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	require.Equal(t, "ORD000003", mine[0].OrderNumber)
	require.Equal(t, "ORD000001", mine[1].OrderNumber)
}

func TestListAndUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order, err := f.svc.PlaceOrder(ctx, ports.PlaceOrderInput{Lines: []cartdomain.Line{{ProductID: f.a.ID, Quantity: 1}}, Customer: customer()})
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(ctx, order.ID, "shipped", " courier 42 ")
	require.NoError(t, err)
	require.Equal(t, domain.StatusShipped, updated.Status)
	require.Equal(t, "courier 42", updated.Notes)

	_, err = f.svc.UpdateStatus(ctx, order.ID, "lost", "")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.UpdateStatus(ctx, 999, "shipped", "")
	require.ErrorIs(t, err, ports.ErrNotFound)

	shipped, err := f.svc.List(ctx, "shipped")
	require.NoError(t, err)
	require.Len(t, shipped, 1)
	pending, err := f.svc.List(ctx, "pending")
	require.NoError(t, err)
	require.Empty(t, pending)
	_, err = f.svc.List(ctx, "bogus")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestFingerprintPlaceOrder_NormalizesForm(t *testing.T) {
	base := ports.PlaceOrderInput{Customer: customer()}
	a, err := FingerprintPlaceOrder(base)
	require.NoError(t, err)

	padded := base
	padded.Customer.Email = "  ASHA@example.com "
	padded.PaymentMethod = "COD"
	padded.Lines = []cartdomain.Line{{ProductID: 1, Quantity: 1}}
	b, err := FingerprintPlaceOrder(padded)
	require.NoError(t, err)
	require.Equal(t, a, b)

	changed := base
	changed.Notes = "ring twice"
	c, err := FingerprintPlaceOrder(changed)
	require.NoError(t, err)
	require.NotEqual(t, a, c)
}
