package mapper

import (
	"time"

	"github.com/Apurer/henri-storefront/internal/domains/ratings/domain"
	"github.com/Apurer/henri-storefront/internal/domains/ratings/ports"
)

// Rating is the HTTP representation of a review.
type Rating struct {
	ID           int64     `json:"id"`
	ProductID    int64     `json:"productId"`
	CustomerName string    `json:"customerName"`
	Rating       int       `json:"rating"`
	Review       string    `json:"review,omitempty"`
	IsApproved   bool      `json:"isApproved"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ProductRatings is the public summary shown on a product page.
type ProductRatings struct {
	Average float64  `json:"average"`
	Count   int      `json:"count"`
	Ratings []Rating `json:"ratings"`
}

// SubmitPayload is a shopper review body.
type SubmitPayload struct {
	CustomerName string `json:"customerName" form:"customer_name"`
	Rating       *int   `json:"rating" form:"rating"`
	Review       string `json:"review" form:"review"`
}

// EditPayload is the moderation body.
type EditPayload struct {
	CustomerName string `json:"customerName" form:"customer_name"`
	Rating       *int   `json:"rating" form:"rating"`
	Review       string `json:"review" form:"review"`
	IsApproved   bool   `json:"isApproved" form:"is_approved"`
}

func ToSubmitInput(productID int64, payload SubmitPayload) ports.SubmitInput {
	return ports.SubmitInput{
		ProductID:    productID,
		CustomerName: payload.CustomerName,
		Rating:       payload.Rating,
		Review:       payload.Review,
	}
}

func ToEditInput(payload EditPayload) ports.EditInput {
	return ports.EditInput{
		CustomerName: payload.CustomerName,
		Rating:       payload.Rating,
		Review:       payload.Review,
		IsApproved:   payload.IsApproved,
	}
}

func FromDomainRating(r *domain.Rating) Rating {
	if r == nil {
		return Rating{}
	}
	return Rating{
		ID:           r.ID,
		ProductID:    r.ProductID,
		CustomerName: r.CustomerName,
		Rating:       r.Rating,
		Review:       r.Review,
		IsApproved:   r.IsApproved,
		CreatedAt:    r.CreatedAt,
	}
}

func FromDomainRatingList(ratings []*domain.Rating) []Rating {
	out := make([]Rating, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, FromDomainRating(r))
	}
	return out
}

func FromProductRatings(pr *ports.ProductRatings) ProductRatings {
	if pr == nil {
		return ProductRatings{Ratings: []Rating{}}
	}
	return ProductRatings{
		Average: pr.Average,
		Count:   len(pr.Ratings),
		Ratings: FromDomainRatingList(pr.Ratings),
	}
}
