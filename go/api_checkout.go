package storefrontserver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	cartmapper "github.com/Apurer/henri-storefront/internal/domains/cart/adapters/http/mapper"
	cartports "github.com/Apurer/henri-storefront/internal/domains/cart/ports"
	ordersmapper "github.com/Apurer/henri-storefront/internal/domains/orders/adapters/http/mapper"
	ordersapp "github.com/Apurer/henri-storefront/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/henri-storefront/internal/domains/orders/domain"
	ordersports "github.com/Apurer/henri-storefront/internal/domains/orders/ports"
	sessiondomain "github.com/Apurer/henri-storefront/internal/domains/sessions/domain"
	apierrors "github.com/Apurer/henri-storefront/internal/shared/errors"
)

// IdempotencyKeyHeader lets clients retry checkout without placing a second order.
const IdempotencyKeyHeader = "Idempotency-Key"

// CheckoutAPI turns the session cart into orders.
type CheckoutAPI struct {
	carts     cartports.Service
	orders    ordersports.Service
	workflows ordersports.WorkflowOrchestrator
}

func NewCheckoutAPI(carts cartports.Service, orders ordersports.Service, workflows ordersports.WorkflowOrchestrator) CheckoutAPI {
	return CheckoutAPI{carts: carts, orders: orders, workflows: workflows}
}

// CheckoutPreview is the checkout page payload, prefilled from the logged-in customer.
type CheckoutPreview struct {
	Cart     cartmapper.Cart `json:"cart"`
	Customer struct {
		Name  string `json:"name,omitempty"`
		Email string `json:"email,omitempty"`
	} `json:"customer"`
}

// Get /api/checkout
func (api *CheckoutAPI) GetCheckout(c *gin.Context) {
	session := currentSession(c)
	summary, err := api.carts.Snapshot(c.Request.Context(), session.Cart)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if summary.IsEmpty() {
		api.respondEmptyCart(c, session)
		return
	}
	var preview CheckoutPreview
	preview.Cart = cartmapper.FromSummary(summary)
	preview.Customer.Name = session.CustomerName
	preview.Customer.Email = session.CustomerEmail
	c.JSON(http.StatusOK, preview)
}

// Post /api/checkout
func (api *CheckoutAPI) PlaceOrder(c *gin.Context) {
	var payload ordersmapper.CheckoutPayload
	if err := c.ShouldBind(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	session := currentSession(c)
	var userID *int64
	if session.HasCustomer() && session.CustomerID > 0 {
		id := session.CustomerID
		userID = &id
	}
	key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	input := ordersmapper.ToPlaceOrderInput(payload, session.Cart.Clone().Lines, userID, key)

	order, err := api.placeOrder(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, ordersapp.ErrEmptyCart) {
			api.respondEmptyCart(c, session)
			return
		}
		respondServiceError(c, err)
		return
	}
	session.Cart.Clear()
	message := "Order placed successfully! Order number: " + order.OrderNumber
	session.AddNotice(sessiondomain.NoticeSuccess, message)
	c.JSON(http.StatusCreated, gin.H{"order": ordersmapper.FromDomainOrder(order), "message": message})
}

func (api *CheckoutAPI) placeOrder(ctx context.Context, input ordersports.PlaceOrderInput) (*ordersdomain.Order, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, input)
	}
	return api.orders.PlaceOrder(ctx, input)
}

func (api *CheckoutAPI) respondEmptyCart(c *gin.Context, session *sessiondomain.Session) {
	session.AddNotice(sessiondomain.NoticeError, apierrors.ErrEmptyCart.Title)
	apierrors.Respond(c, apierrors.ErrEmptyCart)
}

// Get /api/orders/:orderNumber
func (api *CheckoutAPI) GetOrder(c *gin.Context) {
	order, err := api.orders.GetByNumber(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordersmapper.FromDomainOrder(order))
}

// Get /api/my-orders
func (api *CheckoutAPI) MyOrders(c *gin.Context) {
	session := currentSession(c)
	if !session.HasCustomer() {
		message := "Please login to view your orders"
		session.AddNotice(sessiondomain.NoticeError, message)
		apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail(message))
		return
	}
	orders, err := api.orders.ListForCustomer(c.Request.Context(), session.CustomerEmail)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": ordersmapper.FromDomainOrderList(orders)})
}
