package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogmapper "github.com/Apurer/henri-storefront/internal/domains/catalog/adapters/http/mapper"
	catalogdomain "github.com/Apurer/henri-storefront/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/henri-storefront/internal/domains/catalog/ports"
	ratingmapper "github.com/Apurer/henri-storefront/internal/domains/ratings/adapters/http/mapper"
	ratingsports "github.com/Apurer/henri-storefront/internal/domains/ratings/ports"
	sessiondomain "github.com/Apurer/henri-storefront/internal/domains/sessions/domain"
)

// RelatedProductsLimit caps the related list on a product page.
const RelatedProductsLimit = 4

// CatalogAPI serves the public catalog and shopper reviews.
type CatalogAPI struct {
	catalog catalogports.Service
	ratings ratingsports.Service
}

func NewCatalogAPI(catalog catalogports.Service, ratings ratingsports.Service) CatalogAPI {
	return CatalogAPI{catalog: catalog, ratings: ratings}
}

// ProductList is the storefront listing.
type ProductList struct {
	Products []catalogmapper.PublicProduct `json:"products"`
	Category string                        `json:"category,omitempty"`
	Query    string                        `json:"query,omitempty"`
}

// ProductDetail is the product page payload.
type ProductDetail struct {
	Product catalogmapper.PublicProduct   `json:"product"`
	Related []catalogmapper.PublicProduct `json:"related"`
	Ratings ratingmapper.ProductRatings   `json:"ratings"`
}

// Get /api/categories
func (api *CatalogAPI) ListCategories(c *gin.Context) {
	categories, err := api.catalog.Categories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// Get /api/products
// A search term takes precedence over the category filter.
func (api *CatalogAPI) ListProducts(c *gin.Context) {
	category, ok := queryString(c, "category")
	if !ok {
		return
	}
	term, ok := queryString(c, "q")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	var (
		products []*catalogdomain.Product
		err      error
	)
	switch {
	case term != "":
		products, err = api.catalog.Search(ctx, term)
	case category != "":
		products, err = api.catalog.ListByCategory(ctx, category)
	default:
		products, err = api.catalog.ListActive(ctx)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ProductList{
		Products: catalogmapper.ToPublicProductList(products),
		Category: category,
		Query:    term,
	})
}

// Get /api/products/:productId
func (api *CatalogAPI) GetProduct(c *gin.Context) {
	id, ok := pathInt64(c, "productId")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	product, err := api.catalog.GetByID(ctx, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	related, err := api.catalog.RelatedTo(ctx, product, RelatedProductsLimit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	ratings, err := api.ratings.ListApprovedFor(ctx, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ProductDetail{
		Product: catalogmapper.ToPublicProduct(product),
		Related: catalogmapper.ToPublicProductList(related),
		Ratings: ratingmapper.FromProductRatings(ratings),
	})
}

// Post /api/products/:productId/ratings
// New reviews stay hidden until an admin approves them.
func (api *CatalogAPI) SubmitRating(c *gin.Context) {
	id, ok := pathInt64(c, "productId")
	if !ok {
		return
	}
	var payload ratingmapper.SubmitPayload
	if err := c.ShouldBind(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	rating, err := api.ratings.Submit(c.Request.Context(), ratingmapper.ToSubmitInput(id, payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	message := "Thank you! Your rating has been submitted and is pending approval."
	currentSession(c).AddNotice(sessiondomain.NoticeSuccess, message)
	c.JSON(http.StatusCreated, gin.H{"rating": ratingmapper.FromDomainRating(rating), "message": message})
}
