package storefrontserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	advisorports "github.com/Apurer/henri-storefront/internal/domains/advisor/ports"
	cartapp "github.com/Apurer/henri-storefront/internal/domains/cart/application"
	catalogapp "github.com/Apurer/henri-storefront/internal/domains/catalog/application"
	catalogports "github.com/Apurer/henri-storefront/internal/domains/catalog/ports"
	ordersapp "github.com/Apurer/henri-storefront/internal/domains/orders/application"
	ordersports "github.com/Apurer/henri-storefront/internal/domains/orders/ports"
	ratingsapp "github.com/Apurer/henri-storefront/internal/domains/ratings/application"
	ratingsports "github.com/Apurer/henri-storefront/internal/domains/ratings/ports"
	userapp "github.com/Apurer/henri-storefront/internal/domains/users/application"
	apierrors "github.com/Apurer/henri-storefront/internal/shared/errors"
)

var responder = apierrors.NewChainedResponder("",
	mapCatalogError,
	mapCartError,
	mapOrderError,
	mapRatingError,
	mapUserError,
	mapAdvisorError,
)

// respondServiceError renders an application error as problem JSON.
func respondServiceError(c *gin.Context, err error) {
	responder.RespondError(c, err)
}

// respondError renders transport failures such as bind errors.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusUnauthorized:
		problem = apierrors.ErrUnauthorized.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	apierrors.Respond(c, problem)
}

func mapCatalogError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogports.ErrInsufficientStock):
		return apierrors.ErrInsufficientStock.WithDetail(err.Error()), true
	case errors.Is(err, catalogports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "product"), true
	case errors.Is(err, catalogapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapCartError(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, cartapp.ErrInvalidInput) {
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapOrderError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ordersapp.ErrEmptyCart):
		return apierrors.ErrEmptyCart, true
	case errors.Is(err, ordersports.ErrIdempotencyConflict):
		return apierrors.ErrIdempotencyConflict.WithDetail(err.Error()), true
	case errors.Is(err, ordersports.ErrDuplicateIdempotencyKey):
		return apierrors.ErrIdempotencyConflict.WithDetail(err.Error()), true
	case errors.Is(err, ordersports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "order"), true
	case errors.Is(err, ordersapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapRatingError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ratingsports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "rating"), true
	case errors.Is(err, ratingsapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapUserError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, userapp.ErrConflict):
		return apierrors.ErrConflict.WithDetail("Email already registered"), true
	case errors.Is(err, userapp.ErrAuthentication):
		return apierrors.ErrUnauthorized.WithDetail(err.Error()), true
	case errors.Is(err, userapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapAdvisorError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, advisorports.ErrNotConfigured), errors.Is(err, advisorports.ErrUpstream):
		return apierrors.ErrUpstream.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
