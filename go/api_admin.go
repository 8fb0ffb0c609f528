package storefrontserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/henri-storefront/internal/domains/catalog/adapters/export"
	catalogmapper "github.com/Apurer/henri-storefront/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/Apurer/henri-storefront/internal/domains/catalog/ports"
	ordersmapper "github.com/Apurer/henri-storefront/internal/domains/orders/adapters/http/mapper"
	ordersports "github.com/Apurer/henri-storefront/internal/domains/orders/ports"
	ratingsmapper "github.com/Apurer/henri-storefront/internal/domains/ratings/adapters/http/mapper"
	ratingsports "github.com/Apurer/henri-storefront/internal/domains/ratings/ports"
	reportmapper "github.com/Apurer/henri-storefront/internal/domains/reporting/adapters/http/mapper"
	reportports "github.com/Apurer/henri-storefront/internal/domains/reporting/ports"
	sessiondomain "github.com/Apurer/henri-storefront/internal/domains/sessions/domain"
	userhttpmapper "github.com/Apurer/henri-storefront/internal/domains/users/adapters/http/mapper"
	userapp "github.com/Apurer/henri-storefront/internal/domains/users/application"
	userports "github.com/Apurer/henri-storefront/internal/domains/users/ports"
	apierrors "github.com/Apurer/henri-storefront/internal/shared/errors"
)

// ExportFilename is the attachment name used by the product export.
const ExportFilename = "henri-products.xlsx"

// AdminAPI serves the back office. Every route except login and logout sits behind RequireAdmin.
type AdminAPI struct {
	users     userports.Service
	orders    ordersports.Service
	catalog   catalogports.Service
	ratings   ratingsports.Service
	reporting reportports.Service
}

func NewAdminAPI(users userports.Service, orders ordersports.Service, catalog catalogports.Service, ratings ratingsports.Service, reporting reportports.Service) AdminAPI {
	return AdminAPI{users: users, orders: orders, catalog: catalog, ratings: ratings, reporting: reporting}
}

// Post /admin/login
func (api *AdminAPI) Login(c *gin.Context) {
	var payload userhttpmapper.Credentials
	if err := c.ShouldBind(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	session := currentSession(c)
	admin, err := api.users.AdminLogin(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, userapp.ErrAuthentication) {
			message := "Invalid admin credentials"
			session.AddNotice(sessiondomain.NoticeError, message)
			apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail(message))
			return
		}
		respondServiceError(c, err)
		return
	}
	renewSession(c)
	session.LoginAdmin(admin.ID, admin.Email)
	message := "Admin login successful!"
	session.AddNotice(sessiondomain.NoticeSuccess, message)
	c.JSON(http.StatusOK, gin.H{"admin": userhttpmapper.FromDomainUser(admin), "message": message})
}

// Post /admin/logout
func (api *AdminAPI) Logout(c *gin.Context) {
	session := currentSession(c)
	session.LogoutAdmin()
	message := "Logged out from admin!"
	session.AddNotice(sessiondomain.NoticeSuccess, message)
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// Get /admin/dashboard
func (api *AdminAPI) Dashboard(c *gin.Context) {
	dashboard, err := api.reporting.Dashboard(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reportmapper.FromDashboard(dashboard))
}

// Get /admin/stats
func (api *AdminAPI) Stats(c *gin.Context) {
	stats, err := api.reporting.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reportmapper.FromStats(stats))
}

// Get /admin/orders
func (api *AdminAPI) ListOrders(c *gin.Context) {
	status, ok := queryString(c, "status")
	if !ok {
		return
	}
	if status == "" {
		status = "all"
	}
	orders, err := api.orders.List(c.Request.Context(), status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": ordersmapper.FromDomainOrderList(orders), "status": status})
}

// Get /admin/orders/:orderId
func (api *AdminAPI) GetOrder(c *gin.Context) {
	id, ok := pathInt64(c, "orderId")
	if !ok {
		return
	}
	order, err := api.orders.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordersmapper.FromDomainOrder(order))
}

// Put /admin/orders/:orderId
func (api *AdminAPI) UpdateOrder(c *gin.Context) {
	id, ok := pathInt64(c, "orderId")
	if !ok {
		return
	}
	var payload ordersmapper.StatusPayload
	if err := c.ShouldBind(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := api.orders.UpdateStatus(c.Request.Context(), id, payload.Status, payload.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	message := "Order updated successfully!"
	currentSession(c).AddNotice(sessiondomain.NoticeSuccess, message)
	c.JSON(http.StatusOK, gin.H{"order": ordersmapper.FromDomainOrder(order), "message": message})
}

// Get /admin/products
func (api *AdminAPI) ListProducts(c *gin.Context) {
	products, err := api.catalog.ListAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": catalogmapper.FromDomainProductList(products)})
}

// Get /admin/products/export
func (api *AdminAPI) ExportProducts(c *gin.Context) {
	products, err := api.catalog.ListAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Content-Type", export.ContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ExportFilename))
	c.Status(http.StatusOK)
	if err := export.WriteProducts(c.Writer, products); err != nil {
		_ = c.Error(err)
	}
}

// Post /admin/products
func (api *AdminAPI) CreateProduct(c *gin.Context) {
	var payload catalogmapper.ProductPayload
	if err := c.ShouldBind(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := api.catalog.Create(c.Request.Context(), catalogmapper.ToProductInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	message := "Product created successfully!"
	currentSession(c).AddNotice(sessiondomain.NoticeSuccess, message)
	c.JSON(http.StatusCreated, gin.H{"product": catalogmapper.FromDomainProduct(product), "message": message})
}

// Put /admin/products/:productId
func (api *AdminAPI) UpdateProduct(c *gin.Context) {
	id, ok := pathInt64(c, "productId")
	if !ok {
		return
	}
	var payload catalogmapper.ProductPayload
	if err := c.ShouldBind(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := api.catalog.Update(c.Request.Context(), id, catalogmapper.ToProductInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	message := "Product updated successfully!"
	currentSession(c).AddNotice(sessiondomain.NoticeSuccess, message)
	c.JSON(http.StatusOK, gin.H{"product": catalogmapper.FromDomainProduct(product), "message": message})
}

// Delete /admin/products/:productId
// Ratings go first so no review outlives its product.
func (api *AdminAPI) DeleteProduct(c *gin.Context) {
	id, ok := pathInt64(c, "productId")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := api.catalog.GetByID(ctx, id); err != nil {
		respondServiceError(c, err)
		return
	}
	if err := api.ratings.DeleteForProduct(ctx, id); err != nil {
		respondServiceError(c, err)
		return
	}
	if err := api.catalog.Delete(ctx, id); err != nil {
		respondServiceError(c, err)
		return
	}
	message := "Product deleted successfully!"
	currentSession(c).AddNotice(sessiondomain.NoticeSuccess, message)
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// Get /admin/ratings
func (api *AdminAPI) ListRatings(c *gin.Context) {
	ratings, err := api.ratings.ListAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ratings": ratingsmapper.FromDomainRatingList(ratings)})
}

// Post /admin/ratings/:ratingId/approve
func (api *AdminAPI) ApproveRating(c *gin.Context) {
	id, ok := pathInt64(c, "ratingId")
	if !ok {
		return
	}
	rating, err := api.ratings.Approve(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	message := "Rating approved successfully!"
	currentSession(c).AddNotice(sessiondomain.NoticeSuccess, message)
	c.JSON(http.StatusOK, gin.H{"rating": ratingsmapper.FromDomainRating(rating), "message": message})
}

// Put /admin/ratings/:ratingId
func (api *AdminAPI) EditRating(c *gin.Context) {
	id, ok := pathInt64(c, "ratingId")
	if !ok {
		return
	}
	var payload ratingsmapper.EditPayload
	if err := c.ShouldBind(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	rating, err := api.ratings.Edit(c.Request.Context(), id, ratingsmapper.ToEditInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	message := "Rating updated successfully!"
	currentSession(c).AddNotice(sessiondomain.NoticeSuccess, message)
	c.JSON(http.StatusOK, gin.H{"rating": ratingsmapper.FromDomainRating(rating), "message": message})
}

// Delete /admin/ratings/:ratingId
func (api *AdminAPI) DeleteRating(c *gin.Context) {
	id, ok := pathInt64(c, "ratingId")
	if !ok {
		return
	}
	if err := api.ratings.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	message := "Rating deleted successfully!"
	currentSession(c).AddNotice(sessiondomain.NoticeSuccess, message)
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// Get /admin/customers
func (api *AdminAPI) ListCustomers(c *gin.Context) {
	customers, err := api.users.ListCustomers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": userhttpmapper.FromDomainUsers(customers)})
}
