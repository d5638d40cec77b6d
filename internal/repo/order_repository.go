package repo

import (
	"context"
	"time"

	"github.com/rogerio-castellano/order-tracker/internal/models"
)

type OrderFilter struct {
	UserID         *int
	IncludeDeleted bool
	Limit          int
	Offset         int
}

type OrderRepository interface {
	Create(ctx context.Context, order models.Order) (models.Order, error)
	// GetByID returns a non-deleted order with its owning user loaded.
	GetByID(ctx context.Context, id int) (models.Order, error)
	// Update persists quantity and total price.
	Update(ctx context.Context, order models.Order) (models.Order, error)
	SoftDelete(ctx context.Context, id int, at time.Time) error
	// List returns one page of orders ordered by id, each with its owning user,
	// and the total number of orders matching the filter.
	List(ctx context.Context, f OrderFilter) ([]models.Order, int, error)
}
