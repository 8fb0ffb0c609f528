package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cartmapper "github.com/Apurer/henri-storefront/internal/domains/cart/adapters/http/mapper"
	cartports "github.com/Apurer/henri-storefront/internal/domains/cart/ports"
	sessiondomain "github.com/Apurer/henri-storefront/internal/domains/sessions/domain"
)

// CartAPI mutates the cart held in the shopper's session.
type CartAPI struct {
	carts cartports.Service
}

func NewCartAPI(carts cartports.Service) CartAPI {
	return CartAPI{carts: carts}
}

// CartResponse is the priced cart plus the notice produced by a mutation.
type CartResponse struct {
	cartmapper.Cart
	Message string `json:"message,omitempty"`
}

// Get /api/cart
func (api *CartAPI) GetCart(c *gin.Context) {
	api.respondCart(c, "")
}

// Post /api/cart/items
func (api *CartAPI) AddItem(c *gin.Context) {
	var payload cartmapper.AddItemPayload
	if err := c.ShouldBind(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	session := currentSession(c)
	if err := api.carts.Add(c.Request.Context(), &session.Cart, payload.ProductID, payload.ResolvedQuantity()); err != nil {
		respondServiceError(c, err)
		return
	}
	message := "Item added to cart!"
	session.AddNotice(sessiondomain.NoticeSuccess, message)
	api.respondCart(c, message)
}

// Put /api/cart/items/:productId
func (api *CartAPI) UpdateItem(c *gin.Context) {
	id, ok := pathInt64(c, "productId")
	if !ok {
		return
	}
	var payload cartmapper.QuantityPayload
	if err := c.ShouldBind(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	session := currentSession(c)
	if err := api.carts.SetQuantity(c.Request.Context(), &session.Cart, id, payload.ResolvedQuantity()); err != nil {
		respondServiceError(c, err)
		return
	}
	api.respondCart(c, "")
}

// Delete /api/cart/items/:productId
func (api *CartAPI) RemoveItem(c *gin.Context) {
	id, ok := pathInt64(c, "productId")
	if !ok {
		return
	}
	session := currentSession(c)
	api.carts.Remove(c.Request.Context(), &session.Cart, id)
	message := "Item removed from cart!"
	session.AddNotice(sessiondomain.NoticeSuccess, message)
	api.respondCart(c, message)
}

func (api *CartAPI) respondCart(c *gin.Context, message string) {
	summary, err := api.carts.Snapshot(c.Request.Context(), currentSession(c).Cart)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, CartResponse{Cart: cartmapper.FromSummary(summary), Message: message})
}
