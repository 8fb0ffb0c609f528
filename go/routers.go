package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route describes one storefront endpoint. Admin routes run behind the admin gate.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
	Admin       bool
}

// ApiHandleFunctions groups the handler sets the router dispatches to.
type ApiHandleFunctions struct {
	HealthAPI   HealthAPI
	CatalogAPI  CatalogAPI
	CartAPI     CartAPI
	CheckoutAPI CheckoutAPI
	AccountAPI  AccountAPI
	ChatAPI     ChatAPI
	AdminAPI    AdminAPI
}

// RouterOptions carries the middleware shared by every route.
type RouterOptions struct {
	Sessions   *SessionMiddleware
	Middleware []gin.HandlerFunc
}

// NewRouter returns a gin engine with all storefront routes registered.
func NewRouter(handleFunctions ApiHandleFunctions, opts RouterOptions) *gin.Engine {
	return NewRouterWithGinEngine(gin.New(), handleFunctions, opts)
}

// NewRouterWithGinEngine registers the routes on an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions, opts RouterOptions) *gin.Engine {
	router.Use(gin.Recovery())
	router.Use(opts.Middleware...)
	if opts.Sessions != nil {
		router.Use(opts.Sessions.Handler())
	}
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		handlers := []gin.HandlerFunc{route.HandlerFunc}
		if route.Admin {
			handlers = append([]gin.HandlerFunc{RequireAdmin()}, handlers...)
		}
		router.Handle(route.Method, route.Pattern, handlers...)
	}
	return router
}

// DefaultHandleFunc answers routes that have no handler wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(h ApiHandleFunctions) []Route {
	return []Route{
		{Name: "Healthz", Method: http.MethodGet, Pattern: "/healthz", HandlerFunc: h.HealthAPI.Healthz},

		{Name: "ListCategories", Method: http.MethodGet, Pattern: "/api/categories", HandlerFunc: h.CatalogAPI.ListCategories},
		{Name: "ListProducts", Method: http.MethodGet, Pattern: "/api/products", HandlerFunc: h.CatalogAPI.ListProducts},
		{Name: "GetProduct", Method: http.MethodGet, Pattern: "/api/products/:productId", HandlerFunc: h.CatalogAPI.GetProduct},
		{Name: "SubmitRating", Method: http.MethodPost, Pattern: "/api/products/:productId/ratings", HandlerFunc: h.CatalogAPI.SubmitRating},

		{Name: "GetCart", Method: http.MethodGet, Pattern: "/api/cart", HandlerFunc: h.CartAPI.GetCart},
		{Name: "AddCartItem", Method: http.MethodPost, Pattern: "/api/cart/items", HandlerFunc: h.CartAPI.AddItem},
		{Name: "UpdateCartItem", Method: http.MethodPut, Pattern: "/api/cart/items/:productId", HandlerFunc: h.CartAPI.UpdateItem},
		{Name: "RemoveCartItem", Method: http.MethodDelete, Pattern: "/api/cart/items/:productId", HandlerFunc: h.CartAPI.RemoveItem},

		{Name: "GetCheckout", Method: http.MethodGet, Pattern: "/api/checkout", HandlerFunc: h.CheckoutAPI.GetCheckout},
		{Name: "PlaceOrder", Method: http.MethodPost, Pattern: "/api/checkout", HandlerFunc: h.CheckoutAPI.PlaceOrder},
		{Name: "GetOrder", Method: http.MethodGet, Pattern: "/api/orders/:orderNumber", HandlerFunc: h.CheckoutAPI.GetOrder},
		{Name: "MyOrders", Method: http.MethodGet, Pattern: "/api/my-orders", HandlerFunc: h.CheckoutAPI.MyOrders},

		{Name: "Register", Method: http.MethodPost, Pattern: "/api/register", HandlerFunc: h.AccountAPI.Register},
		{Name: "Login", Method: http.MethodPost, Pattern: "/api/login", HandlerFunc: h.AccountAPI.Login},
		{Name: "Logout", Method: http.MethodPost, Pattern: "/api/logout", HandlerFunc: h.AccountAPI.Logout},
		{Name: "GetSession", Method: http.MethodGet, Pattern: "/api/session", HandlerFunc: h.AccountAPI.GetSession},

		{Name: "Chat", Method: http.MethodPost, Pattern: "/chat", HandlerFunc: h.ChatAPI.Chat},

		{Name: "AdminLogin", Method: http.MethodPost, Pattern: "/admin/login", HandlerFunc: h.AdminAPI.Login},
		{Name: "AdminLogout", Method: http.MethodPost, Pattern: "/admin/logout", HandlerFunc: h.AdminAPI.Logout},
		{Name: "AdminDashboard", Method: http.MethodGet, Pattern: "/admin/dashboard", HandlerFunc: h.AdminAPI.Dashboard, Admin: true},
		{Name: "AdminStats", Method: http.MethodGet, Pattern: "/admin/stats", HandlerFunc: h.AdminAPI.Stats, Admin: true},
		{Name: "AdminListOrders", Method: http.MethodGet, Pattern: "/admin/orders", HandlerFunc: h.AdminAPI.ListOrders, Admin: true},
		{Name: "AdminGetOrder", Method: http.MethodGet, Pattern: "/admin/orders/:orderId", HandlerFunc: h.AdminAPI.GetOrder, Admin: true},
		{Name: "AdminUpdateOrder", Method: http.MethodPut, Pattern: "/admin/orders/:orderId", HandlerFunc: h.AdminAPI.UpdateOrder, Admin: true},
		{Name: "AdminListProducts", Method: http.MethodGet, Pattern: "/admin/products", HandlerFunc: h.AdminAPI.ListProducts, Admin: true},
		{Name: "AdminExportProducts", Method: http.MethodGet, Pattern: "/admin/products/export", HandlerFunc: h.AdminAPI.ExportProducts, Admin: true},
		{Name: "AdminCreateProduct", Method: http.MethodPost, Pattern: "/admin/products", HandlerFunc: h.AdminAPI.CreateProduct, Admin: true},
		{Name: "AdminUpdateProduct", Method: http.MethodPut, Pattern: "/admin/products/:productId", HandlerFunc: h.AdminAPI.UpdateProduct, Admin: true},
		{Name: "AdminDeleteProduct", Method: http.MethodDelete, Pattern: "/admin/products/:productId", HandlerFunc: h.AdminAPI.DeleteProduct, Admin: true},
		{Name: "AdminListRatings", Method: http.MethodGet, Pattern: "/admin/ratings", HandlerFunc: h.AdminAPI.ListRatings, Admin: true},
		{Name: "AdminApproveRating", Method: http.MethodPost, Pattern: "/admin/ratings/:ratingId/approve", HandlerFunc: h.AdminAPI.ApproveRating, Admin: true},
		{Name: "AdminEditRating", Method: http.MethodPut, Pattern: "/admin/ratings/:ratingId", HandlerFunc: h.AdminAPI.EditRating, Admin: true},
		{Name: "AdminDeleteRating", Method: http.MethodDelete, Pattern: "/admin/ratings/:ratingId", HandlerFunc: h.AdminAPI.DeleteRating, Admin: true},
		{Name: "AdminListCustomers", Method: http.MethodGet, Pattern: "/admin/customers", HandlerFunc: h.AdminAPI.ListCustomers, Admin: true},
	}
}
