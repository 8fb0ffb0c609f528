package storefrontserver

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	advisorports "github.com/Apurer/henri-storefront/internal/domains/advisor/ports"
	"github.com/Apurer/henri-storefront/internal/domains/catalog/adapters/export"
	ordersmapper "github.com/Apurer/henri-storefront/internal/domains/orders/adapters/http/mapper"
	"github.com/Apurer/henri-storefront/internal/domains/sessions/adapters/http/cookie"
	apierrors "github.com/Apurer/henri-storefront/internal/shared/errors"
)

type placedOrder struct {
	Order   ordersmapper.Order `json:"order"`
	Message string             `json:"message"`
}

var checkoutForm = map[string]string{
	"name":          "Asha",
	"phone":         "9876543210",
	"email":         "asha@example.com",
	"address":       "12 MG Road",
	"paymentMethod": "cod",
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAdminGate(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/admin/dashboard", nil, "Accept", "text/html")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, AdminLoginPath, rec.Header().Get("Location"))

	rec = s.do(http.MethodGet, "/admin/dashboard", nil, "Accept", "application/json")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	problem := decode[apierrors.ProblemDetail](t, rec)
	assert.Equal(t, "admin login required", problem.Detail)

	rec = s.do(http.MethodPost, "/admin/login", map[string]string{"email": testAdminEmail, "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	s.loginAdmin()
	rec = s.do(http.MethodGet, "/admin/dashboard", nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/admin/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(http.MethodGet, "/admin/stats", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCustomerCannotUseAdminLogin(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodPost, "/api/register", map[string]string{"email": "asha@example.com", "name": "Asha", "password": "secret"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/admin/login", map[string]string{"email": "asha@example.com", "password": "secret"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckout_PlacesOrderAndReplaysIdempotencyKey(t *testing.T) {
	s := newTestServer(t)
	product := s.addProduct("ROOFS SPF", 10, "500.00")

	rec := s.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": product.ID, "quantity": 2})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cart := decode[CartResponse](t, rec)
	assert.Equal(t, 2, cart.Count)
	assert.Equal(t, "1000", cart.Total.String())
	assert.Equal(t, "Item added to cart!", cart.Message)

	rec = s.do(http.MethodPost, "/api/checkout", checkoutForm, IdempotencyKeyHeader, "checkout-1")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	first := decode[placedOrder](t, rec)
	require.NotEmpty(t, first.Order.OrderNumber)
	assert.Equal(t, "Order placed successfully! Order number: "+first.Order.OrderNumber, first.Message)
	assert.Equal(t, "1000", first.Order.Total.String())

	rec = s.do(http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[CartResponse](t, rec).Count)

	rec = s.do(http.MethodPost, "/api/checkout", checkoutForm, IdempotencyKeyHeader, "checkout-1")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, first.Order.OrderNumber, decode[placedOrder](t, rec).Order.OrderNumber)

	stored, err := s.products.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(8), stored.CurrentStock)

	rec = s.do(http.MethodGet, "/api/orders/"+first.Order.OrderNumber, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCheckout_IdempotencyKeyReusedWithDifferentDetails(t *testing.T) {
	s := newTestServer(t)
	product := s.addProduct("ROOFS SPF", 10, "500.00")

	s.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": product.ID})
	rec := s.do(http.MethodPost, "/api/checkout", checkoutForm, IdempotencyKeyHeader, "k")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	other := map[string]string{}
	for k, v := range checkoutForm {
		other[k] = v
	}
	other["address"] = "99 Brigade Road"
	rec = s.do(http.MethodPost, "/api/checkout", other, IdempotencyKeyHeader, "k")
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
}

func TestCheckout_EmptyCart(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/checkout", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apierrors.ErrEmptyCart.Title, decode[apierrors.ProblemDetail](t, rec).Title)

	rec = s.do(http.MethodPost, "/api/checkout", checkoutForm)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckout_InsufficientStock(t *testing.T) {
	s := newTestServer(t)
	product := s.addProduct("LIPSTAR", 1, "275.00")

	rec := s.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": product.ID, "quantity": 3})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/checkout", checkoutForm)
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/cart", nil)
	assert.Equal(t, 3, decode[CartResponse](t, rec).Count)
}

func TestCheckout_MissingCustomerDetails(t *testing.T) {
	s := newTestServer(t)
	product := s.addProduct("LIPSTAR", 5, "275.00")
	s.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": product.ID})

	rec := s.do(http.MethodPost, "/api/checkout", map[string]string{"name": "Asha"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestCart_UpdateAndRemove(t *testing.T) {
	s := newTestServer(t)
	product := s.addProduct("ROOFS SPF", 10, "500.00")
	s.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": product.ID})

	rec := s.do(http.MethodPut, "/api/cart/items/"+itoa(product.ID), map[string]int{"quantity": 4})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 4, decode[CartResponse](t, rec).Count)

	rec = s.do(http.MethodPut, "/api/cart/items/abc", map[string]int{"quantity": 4})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodDelete, "/api/cart/items/"+itoa(product.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cart := decode[CartResponse](t, rec)
	assert.Equal(t, 0, cart.Count)
	assert.Equal(t, "Item removed from cart!", cart.Message)
}

func TestCart_UpdateMissingQuantityDefaultsToOne(t *testing.T) {
	s := newTestServer(t)
	product := s.addProduct("ROOFS SPF", 10, "500.00")
	s.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": product.ID, "quantity": 3})

	rec := s.do(http.MethodPut, "/api/cart/items/"+itoa(product.ID), map[string]any{})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, decode[CartResponse](t, rec).Count)
}

func TestCart_UpdateCannotAddInactiveProduct(t *testing.T) {
	s := newTestServer(t)
	hidden := s.addProduct("Hidden", 5, "100.00")
	hidden.IsActive = false
	_, err := s.products.Update(context.Background(), hidden)
	require.NoError(t, err)

	rec := s.do(http.MethodPut, "/api/cart/items/"+itoa(hidden.ID), map[string]int{"quantity": 3})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 0, decode[CartResponse](t, rec).Count)

	rec = s.do(http.MethodPost, "/api/checkout", checkoutForm)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	stored, err := s.products.GetByID(context.Background(), hidden.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(5), stored.CurrentStock)
}

func TestMyOrders_RequiresCustomer(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/api/my-orders", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	s.do(http.MethodPost, "/api/register", map[string]string{"email": "asha@example.com", "name": "Asha", "password": "secret"})
	rec = s.do(http.MethodPost, "/api/login", map[string]string{"email": "ASHA@example.com", "password": "secret"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	product := s.addProduct("ROOFS SPF", 10, "500.00")
	s.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": product.ID})
	rec = s.do(http.MethodPost, "/api/checkout", checkoutForm)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotNil(t, decode[placedOrder](t, rec).Order.UserID)

	rec = s.do(http.MethodGet, "/api/my-orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	orders := decode[struct {
		Orders []ordersmapper.Order `json:"orders"`
	}](t, rec)
	assert.Len(t, orders.Orders, 1)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := newTestServer(t)
	body := map[string]string{"email": "asha@example.com", "name": "Asha", "password": "secret"}

	rec := s.do(http.MethodPost, "/api/register", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/register", body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodGet, "/api/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	state := decode[SessionState](t, rec)
	require.Len(t, state.Notices, 2)
	assert.Equal(t, "Registration successful! Please login.", state.Notices[0].Message)
	assert.Equal(t, "Email already registered", state.Notices[1].Message)
	assert.Nil(t, state.Customer)

	rec = s.do(http.MethodGet, "/api/session", nil)
	assert.Empty(t, decode[SessionState](t, rec).Notices)
}

func TestLogout_ClearsSession(t *testing.T) {
	s := newTestServer(t)
	product := s.addProduct("ROOFS SPF", 10, "500.00")
	s.do(http.MethodPost, "/api/register", map[string]string{"email": "asha@example.com", "name": "Asha", "password": "secret"})
	s.do(http.MethodPost, "/api/login", map[string]string{"email": "asha@example.com", "password": "secret"})
	s.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": product.ID})

	rec := s.do(http.MethodPost, "/api/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	state := decode[SessionState](t, s.do(http.MethodGet, "/api/session", nil))
	assert.Nil(t, state.Customer)
	assert.Zero(t, state.CartCount)
}

func TestSessionCookie_TamperedValueStartsFreshSession(t *testing.T) {
	s := newTestServer(t)
	product := s.addProduct("ROOFS SPF", 10, "500.00")
	s.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": product.ID})
	require.NotEmpty(t, s.cookies)
	assert.Equal(t, cookie.Name, s.cookies[0].Name)
	assert.True(t, s.cookies[0].HttpOnly)

	assert.Equal(t, 1, decode[CartResponse](t, s.do(http.MethodGet, "/api/cart", nil)).Count)

	s.cookies = []*http.Cookie{{Name: cookie.Name, Value: s.cookies[0].Value + "x"}}
	assert.Equal(t, 0, decode[CartResponse](t, s.do(http.MethodGet, "/api/cart", nil)).Count)
}

func TestLogin_RenewsSessionToken(t *testing.T) {
	codec := cookie.NewCodec("test-secret")
	tokenOf := func(cookies []*http.Cookie) string {
		require.NotEmpty(t, cookies)
		token, err := codec.Decode(cookies[0].Value)
		require.NoError(t, err)
		return token
	}

	s := newTestServer(t)
	product := s.addProduct("ROOFS SPF", 10, "500.00")
	s.do(http.MethodPost, "/api/register", map[string]string{"email": "asha@example.com", "name": "Asha", "password": "secret"})
	s.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": product.ID})
	anonymous := s.cookies
	anonymousToken := tokenOf(anonymous)

	rec := s.do(http.MethodPost, "/api/login", map[string]string{"email": "asha@example.com", "password": "secret"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	customerToken := tokenOf(s.cookies)
	assert.NotEqual(t, anonymousToken, customerToken)

	state := decode[SessionState](t, s.do(http.MethodGet, "/api/session", nil))
	require.NotNil(t, state.Customer)
	assert.Equal(t, 1, state.CartCount)

	s.loginAdmin()
	assert.NotEqual(t, customerToken, tokenOf(s.cookies))
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/admin/dashboard", nil, "Accept", "application/json").Code)

	s.cookies = anonymous
	state = decode[SessionState](t, s.do(http.MethodGet, "/api/session", nil))
	assert.Nil(t, state.Customer)
	assert.Zero(t, state.CartCount)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/admin/dashboard", nil, "Accept", "application/json").Code)
}

func TestRatings_ModerationFlow(t *testing.T) {
	s := newTestServer(t)
	product := s.addProduct("ROOFS SPF", 10, "500.00")
	path := "/api/products/" + itoa(product.ID) + "/ratings"

	for _, value := range []int{0, 6} {
		rec := s.do(http.MethodPost, path, map[string]any{"customerName": "Asha", "rating": value})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "rating %d", value)
	}

	rec := s.do(http.MethodPost, path, map[string]any{"customerName": "Asha", "rating": 5, "review": "Lovely"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	submitted := decode[struct {
		Rating struct {
			ID int64 `json:"id"`
		} `json:"rating"`
	}](t, rec)

	detail := decode[ProductDetail](t, s.do(http.MethodGet, "/api/products/"+itoa(product.ID), nil))
	assert.Zero(t, detail.Ratings.Count)

	s.loginAdmin()
	rec = s.do(http.MethodPost, "/admin/ratings/"+itoa(submitted.Rating.ID)+"/approve", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	detail = decode[ProductDetail](t, s.do(http.MethodGet, "/api/products/"+itoa(product.ID), nil))
	assert.Equal(t, 1, detail.Ratings.Count)
	assert.Equal(t, float64(5), detail.Ratings.Average)

	rec = s.do(http.MethodDelete, "/admin/ratings/"+itoa(submitted.Rating.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(http.MethodDelete, "/admin/ratings/"+itoa(submitted.Rating.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminProducts_CRUDAndExport(t *testing.T) {
	s := newTestServer(t)
	s.loginAdmin()

	rec := s.do(http.MethodPost, "/admin/products", map[string]any{"name": "Elight Sunscreen", "category": "Sunscreen", "salePrice": "425.00", "currentStock": 5})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[struct {
		Product struct {
			ID int64 `json:"id"`
		} `json:"product"`
	}](t, rec)

	rec = s.do(http.MethodPost, "/api/products/"+itoa(created.Product.ID)+"/ratings", map[string]any{"customerName": "Asha", "rating": 4})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPut, "/admin/products/"+itoa(created.Product.ID), map[string]any{"name": "Elight Sunscreen", "category": "Sunscreen", "salePrice": "399.00", "isActive": false})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	listed := decode[ProductList](t, s.do(http.MethodGet, "/api/products", nil))
	assert.Empty(t, listed.Products)

	rec = s.do(http.MethodGet, "/admin/products/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ExportFilename)
	assert.NotZero(t, rec.Body.Len())

	rec = s.do(http.MethodDelete, "/admin/products/"+itoa(created.Product.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	ratings := decode[struct {
		Ratings []any `json:"ratings"`
	}](t, s.do(http.MethodGet, "/admin/ratings", nil))
	assert.Empty(t, ratings.Ratings)

	rec = s.do(http.MethodDelete, "/admin/products/"+itoa(created.Product.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminOrders_UpdateStatus(t *testing.T) {
	s := newTestServer(t)
	product := s.addProduct("ROOFS SPF", 10, "500.00")
	s.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": product.ID})
	placed := decode[placedOrder](t, s.do(http.MethodPost, "/api/checkout", checkoutForm))
	s.loginAdmin()

	path := "/admin/orders/" + itoa(placed.Order.ID)
	rec := s.do(http.MethodPut, path, map[string]string{"status": "shipped", "notes": "via courier"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPut, path, map[string]string{"status": "lost"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/admin/orders?status=shipped", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decode[struct {
		Orders []ordersmapper.Order `json:"orders"`
	}](t, rec)
	require.Len(t, listed.Orders, 1)
	assert.Equal(t, "via courier", listed.Orders[0].Notes)

	rec = s.do(http.MethodGet, "/admin/orders/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChat(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/chat", map[string]string{"message": "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"No message provided"}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/chat", map[string]string{"message": "sunscreen for oily skin?"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"response":"Try ROOFS SPF."}`, rec.Body.String())

	s.completer.err = advisorports.ErrNotConfigured
	rec = s.do(http.MethodPost, "/chat", map[string]string{"message": "hi"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"API key not configured"}`, rec.Body.String())

	s.completer.err = errors.Join(advisorports.ErrUpstream, errors.New("status 503"))
	rec = s.do(http.MethodPost, "/chat", map[string]string{"message": "hi"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to get response from AI"}`, rec.Body.String())
}
