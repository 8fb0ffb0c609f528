package ports

import (
	"context"
	"errors"
)

// ErrInsufficientStock signals a decrement that would take stock below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// StockChange removes Quantity units from one product.
type StockChange struct {
	ProductID int64
	Quantity  float64
}

// StockLedger applies stock decrements as a single all-or-nothing batch.
type StockLedger interface {
	// DecrementStock applies every change or none. Unless allowNegative is set,
	// a change larger than the remaining stock fails with ErrInsufficientStock.
	DecrementStock(ctx context.Context, changes []StockChange, allowNegative bool) error
}
