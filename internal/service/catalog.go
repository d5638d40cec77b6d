package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/rogerio-castellano/order-tracker/internal/models"
	"github.com/rogerio-castellano/order-tracker/internal/pagination"
	"github.com/rogerio-castellano/order-tracker/internal/repo"
)

type Catalog struct {
	store  repo.Store
	logger *slog.Logger
}

func NewCatalog(store repo.Store, logger *slog.Logger) *Catalog {
	return &Catalog{store: store, logger: logger}
}

// Find resolves a product or fails with ErrProductNotFound.
func (c *Catalog) Find(ctx context.Context, productID int) (models.Product, error) {
	return c.store.Products().GetByID(ctx, productID)
}

// Restock adds quantity units to the product stock.
func (c *Catalog) Restock(ctx context.Context, productID, quantity int) (models.Product, error) {
	if quantity < 1 {
		return models.Product{}, ErrInvalidQuantity
	}

	var product models.Product
	err := c.store.WithinTx(ctx, func(tx repo.Repositories) error {
		locked, err := tx.Products().GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		product, err = ApplyDelta(ctx, tx, locked, quantity, Cause{Reason: models.MovementRestock})
		return err
	})
	if err != nil {
		return models.Product{}, err
	}

	c.logger.Info("product restocked", "product_id", productID, "quantity", quantity, "stock", product.Stock)
	return product, nil
}

// Movements lists the stock movements of an existing product, newest first,
// optionally bounded by since and until.
func (c *Catalog) Movements(ctx context.Context, productID int, since, until *time.Time, page pagination.Page) ([]models.Movement, int, error) {
	if _, err := c.Find(ctx, productID); err != nil {
		return nil, 0, err
	}

	limit, offset := page.Limit(), page.Offset()
	return c.store.Movements().GetByProductID(ctx, productID, repo.MovementFilter{
		Since:  since,
		Until:  until,
		Limit:  &limit,
		Offset: &offset,
	})
}
