package postgres

import (
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/Apurer/henri-storefront/internal/domains/catalog/ports"
)

// DecrementStockTx applies a conditional decrement per product inside the
// caller's transaction. Products are touched in id order so concurrent
// checkouts lock rows in the same sequence.
func DecrementStockTx(tx *gorm.DB, changes []ports.StockChange, allowNegative bool) error {
	for _, change := range mergeChanges(changes) {
		query := tx.Model(&productRecord{}).Where("id = ?", change.ProductID)
		if !allowNegative {
			query = query.Where("current_stock >= ?", change.Quantity)
		}
		result := query.Update("current_stock", gorm.Expr("current_stock - ?", change.Quantity))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			continue
		}
		var count int64
		if err := tx.Model(&productRecord{}).Where("id = ?", change.ProductID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ports.ErrNotFound
		}
		return fmt.Errorf("%w: product %d", ports.ErrInsufficientStock, change.ProductID)
	}
	return nil
}

func mergeChanges(changes []ports.StockChange) []ports.StockChange {
	totals := map[int64]float64{}
	for _, change := range changes {
		totals[change.ProductID] += change.Quantity
	}
	merged := make([]ports.StockChange, 0, len(totals))
	for id, qty := range totals {
		merged = append(merged, ports.StockChange{ProductID: id, Quantity: qty})
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].ProductID < merged[j].ProductID })
	return merged
}
