package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
	// DefaultRating applies when the form omits a value.
	DefaultRating = 5
	// AnonymousName replaces a blank reviewer name.
	AnonymousName = "Anonymous"
)

var ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")

// Rating is a customer review awaiting or past moderation.
type Rating struct {
	ID           int64
	ProductID    int64
	CustomerName string
	Rating       int
	Review       string
	IsApproved   bool
	CreatedAt    time.Time
}

// NewRating builds an unapproved rating.
func NewRating(productID int64, customerName string, rating int, review string) (*Rating, error) {
	r := &Rating{ProductID: productID, CustomerName: customerName, Rating: rating, Review: review}
	if err := r.Normalize(); err != nil {
		return nil, err
	}
	return r, nil
}

// Normalize applies the name default and enforces the 1..5 range.
func (r *Rating) Normalize() error {
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	if r.CustomerName == "" {
		r.CustomerName = AnonymousName
	}
	r.Review = strings.TrimSpace(r.Review)
	if r.Rating < MinRating || r.Rating > MaxRating {
		return ErrRatingOutOfRange
	}
	return nil
}

func (r *Rating) Approve() { r.IsApproved = true }

// Average is the arithmetic mean of the values, 0 for an empty slice.
func Average(ratings []*Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Rating
	}
	return float64(sum) / float64(len(ratings))
}
