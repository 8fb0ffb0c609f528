package storefrontserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	advisorapp "github.com/Apurer/henri-storefront/internal/domains/advisor/application"
	advisorports "github.com/Apurer/henri-storefront/internal/domains/advisor/ports"
	cartapp "github.com/Apurer/henri-storefront/internal/domains/cart/application"
	catalogmemory "github.com/Apurer/henri-storefront/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/Apurer/henri-storefront/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/henri-storefront/internal/domains/catalog/domain"
	ordersmemory "github.com/Apurer/henri-storefront/internal/domains/orders/adapters/memory"
	ordersworkflows "github.com/Apurer/henri-storefront/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/henri-storefront/internal/domains/orders/application"
	ratingsmemory "github.com/Apurer/henri-storefront/internal/domains/ratings/adapters/memory"
	ratingsapp "github.com/Apurer/henri-storefront/internal/domains/ratings/application"
	reportmemory "github.com/Apurer/henri-storefront/internal/domains/reporting/adapters/memory"
	reportapp "github.com/Apurer/henri-storefront/internal/domains/reporting/application"
	"github.com/Apurer/henri-storefront/internal/domains/sessions/adapters/http/cookie"
	sessionsmemory "github.com/Apurer/henri-storefront/internal/domains/sessions/adapters/memory"
	sessionsapp "github.com/Apurer/henri-storefront/internal/domains/sessions/application"
	usermemory "github.com/Apurer/henri-storefront/internal/domains/users/adapters/memory"
	userapp "github.com/Apurer/henri-storefront/internal/domains/users/application"
)

const (
	testAdminEmail    = "admin@henri.com"
	testAdminPassword = "admin123"
)

type stubCompleter struct {
	reply string
	err   error
}

func (s *stubCompleter) Complete(context.Context, advisorports.Prompt) (string, error) {
	return s.reply, s.err
}

type testServer struct {
	t         *testing.T
	router    *gin.Engine
	products  *catalogmemory.Repository
	completer *stubCompleter
	cookies   []*http.Cookie
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	products := catalogmemory.NewRepository()
	catalog := catalogapp.NewService(products)
	carts := cartapp.NewService(catalog)
	ordersRepo := ordersmemory.NewRepository(products)
	orders := ordersapp.NewService(ordersRepo, carts)
	ratings := ratingsapp.NewService(ratingsmemory.NewRepository(), catalog)
	users := userapp.NewService(usermemory.NewRepository(), userapp.WithHashCost(bcrypt.MinCost))
	reporting := reportapp.NewService(reportmemory.NewReader(products, ordersRepo))
	completer := &stubCompleter{reply: "Try ROOFS SPF."}
	advisor := advisorapp.NewService(catalog, completer)

	_, err := users.EnsureAdmin(context.Background(), testAdminEmail, testAdminPassword, "Admin")
	require.NoError(t, err)

	sessions := NewSessionMiddleware(sessionsapp.NewManager(sessionsmemory.NewStore()), cookie.NewCodec("test-secret"))
	handlers := ApiHandleFunctions{
		HealthAPI:   NewHealthAPI(),
		CatalogAPI:  NewCatalogAPI(catalog, ratings),
		CartAPI:     NewCartAPI(carts),
		CheckoutAPI: NewCheckoutAPI(carts, orders, ordersworkflows.NewInlineOrderWorkflows(orders)),
		AccountAPI:  NewAccountAPI(users),
		ChatAPI:     NewChatAPI(advisor),
		AdminAPI:    NewAdminAPI(users, orders, catalog, ratings, reporting),
	}
	return &testServer{
		t:         t,
		router:    NewRouter(handlers, RouterOptions{Sessions: sessions}),
		products:  products,
		completer: completer,
	}
}

func (s *testServer) addProduct(name string, stock float64, price string) *catalogdomain.Product {
	s.t.Helper()
	p, err := s.products.Create(context.Background(), &catalogdomain.Product{
		Name:         name,
		Category:     "Skin Care",
		CurrentStock: stock,
		MinimumStock: 2,
		SalePrice:    decimal.RequireFromString(price),
		IsActive:     true,
	})
	require.NoError(s.t, err)
	return p
}

// do sends the request with the cookies collected so far and keeps the ones it gets back.
func (s *testServer) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	for _, c := range s.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if fresh := rec.Result().Cookies(); len(fresh) > 0 {
		s.cookies = fresh
	}
	return rec
}

func (s *testServer) loginAdmin() {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/admin/login", map[string]string{"email": testAdminEmail, "password": testAdminPassword})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
