package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rogerio-castellano/order-tracker/internal/models"
	"github.com/rogerio-castellano/order-tracker/internal/repo"
	"github.com/shopspring/decimal"
)

// Cause explains a stock change in the movement log.
type Cause struct {
	Reason  string
	OrderID *int
}

// ForOrderChange converts an order quantity change into a stock delta.
func ForOrderChange(oldQuantity, newQuantity int) int {
	return oldQuantity - newQuantity
}

// TotalPrice is price times quantity rounded to cents.
func TotalPrice(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// ApplyDelta adds delta to the product stock through tx and records the
// movement in the same transaction. A negative delta larger than the
// current stock fails with *InsufficientStockError and changes nothing. A
// zero delta is a no-op.
func ApplyDelta(ctx context.Context, tx repo.Repositories, product models.Product, delta int, cause Cause) (models.Product, error) {
	if delta == 0 {
		return product, nil
	}
	if delta < 0 && -delta > product.Stock {
		return models.Product{}, &InsufficientStockError{
			ProductID: product.ID,
			Requested: -delta,
			Available: product.Stock,
		}
	}

	updated, err := tx.Products().AdjustStock(ctx, product.ID, delta)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidQuantityChange) {
			return models.Product{}, &InsufficientStockError{
				ProductID: product.ID,
				Requested: -delta,
				Available: product.Stock,
			}
		}
		return models.Product{}, fmt.Errorf("failed to adjust stock: %w", err)
	}

	err = tx.Movements().Log(ctx, models.Movement{
		ProductID: product.ID,
		OrderID:   cause.OrderID,
		Delta:     delta,
		Reason:    cause.Reason,
	})
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to log stock movement: %w", err)
	}

	return updated, nil
}
