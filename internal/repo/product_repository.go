package repo

import (
	"context"

	"github.com/rogerio-castellano/order-tracker/internal/models"
)

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(ctx context.Context, product models.Product) (models.Product, error)
	GetByID(ctx context.Context, id int) (models.Product, error)
	// GetForUpdate reads the product and locks its row until the enclosing
	// transaction ends.
	GetForUpdate(ctx context.Context, id int) (models.Product, error)
	// AdjustStock adds delta to the stock. It fails with
	// ErrInvalidQuantityChange when the result would be negative.
	AdjustStock(ctx context.Context, id int, delta int) (models.Product, error)
}
