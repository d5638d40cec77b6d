package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rogerio-castellano/order-tracker/internal/models"
	"github.com/rogerio-castellano/order-tracker/internal/pagination"
	"github.com/rogerio-castellano/order-tracker/internal/repo"
)

// OrderManager runs the order lifecycle. Every mutation runs in one store
// transaction together with its stock adjustment.
type OrderManager struct {
	store  repo.Store
	logger *slog.Logger
	now    func() time.Time
}

func NewOrderManager(store repo.Store, logger *slog.Logger) *OrderManager {
	return &OrderManager{store: store, logger: logger, now: time.Now}
}

func (m *OrderManager) Create(ctx context.Context, p Principal, productID, quantity int) (models.Order, error) {
	if quantity < 1 {
		return models.Order{}, ErrInvalidQuantity
	}

	var order models.Order
	err := m.store.WithinTx(ctx, func(tx repo.Repositories) error {
		product, err := tx.Products().GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product.Stock < quantity {
			return &InsufficientStockError{ProductID: product.ID, Requested: quantity, Available: product.Stock}
		}

		order, err = tx.Orders().Create(ctx, models.Order{
			UserID:     p.UserID,
			ProductID:  product.ID,
			Quantity:   quantity,
			TotalPrice: TotalPrice(product.Price, quantity),
			Status:     true,
		})
		if err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		_, err = ApplyDelta(ctx, tx, product, -quantity, Cause{Reason: models.MovementOrderCreated, OrderID: &order.ID})
		return err
	})
	if err != nil {
		m.logger.Warn("order creation failed",
			"user_id", p.UserID, "product_id", productID, "quantity", quantity, "error", err)
		return models.Order{}, err
	}

	m.logger.Info("order created",
		"order_id", order.ID, "user_id", p.UserID, "product_id", productID, "quantity", quantity)
	return order, nil
}

func (m *OrderManager) Update(ctx context.Context, p Principal, orderID, quantity int) (models.Order, error) {
	if quantity < 1 {
		return models.Order{}, ErrInvalidQuantity
	}

	var order models.Order
	err := m.store.WithinTx(ctx, func(tx repo.Repositories) error {
		current, product, err := m.lockOrder(ctx, tx, orderID, func(o models.Order) error {
			return AuthorizeOwner(p.UserID, o.UserID)
		})
		if err != nil {
			return err
		}

		delta := ForOrderChange(current.Quantity, quantity)
		product, err = ApplyDelta(ctx, tx, product, delta, Cause{Reason: models.MovementOrderUpdated, OrderID: &current.ID})
		if err != nil {
			return err
		}

		current.Quantity = quantity
		current.TotalPrice = TotalPrice(product.Price, quantity)
		order, err = tx.Orders().Update(ctx, current)
		if err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}
		return nil
	})
	if err != nil {
		m.logger.Warn("order update failed",
			"order_id", orderID, "user_id", p.UserID, "quantity", quantity, "error", err)
		return models.Order{}, err
	}

	m.logger.Info("order updated",
		"order_id", order.ID, "user_id", p.UserID, "product_id", order.ProductID, "quantity", quantity)
	return order, nil
}

// Delete soft-deletes the order and returns its quantity to stock when the
// product still exists. Owners and administrators may delete.
func (m *OrderManager) Delete(ctx context.Context, p Principal, orderID int) error {
	err := m.store.WithinTx(ctx, func(tx repo.Repositories) error {
		current, product, err := m.lockOrder(ctx, tx, orderID, func(o models.Order) error {
			return AuthorizeOwnerOrAdmin(p, o.UserID)
		})
		switch {
		case errors.Is(err, ErrProductNotFound):
		case err != nil:
			return err
		default:
			_, err = ApplyDelta(ctx, tx, product, current.Quantity, Cause{Reason: models.MovementOrderDeleted, OrderID: &current.ID})
			if err != nil {
				return err
			}
		}

		if err := tx.Orders().SoftDelete(ctx, orderID, m.now()); err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}
		return nil
	})
	if err != nil {
		m.logger.Warn("order deletion failed", "order_id", orderID, "user_id", p.UserID, "error", err)
		return err
	}

	m.logger.Info("order deleted", "order_id", orderID, "user_id", p.UserID)
	return nil
}

// lockOrder loads the order, authorizes the caller and locks the product
// row. The order is read again under the lock since every order mutation
// takes the product lock first. ErrProductNotFound is returned together
// with the order so callers can go on without a product.
func (m *OrderManager) lockOrder(ctx context.Context, tx repo.Repositories, orderID int, authorize func(models.Order) error) (models.Order, models.Product, error) {
	order, err := tx.Orders().GetByID(ctx, orderID)
	if err != nil {
		return models.Order{}, models.Product{}, err
	}
	if err := authorize(order); err != nil {
		return models.Order{}, models.Product{}, err
	}

	product, err := tx.Products().GetForUpdate(ctx, order.ProductID)
	if err != nil {
		return order, models.Product{}, err
	}

	order, err = tx.Orders().GetByID(ctx, orderID)
	if err != nil {
		return models.Order{}, models.Product{}, err
	}
	return order, product, nil
}

// List returns the caller's non-deleted orders.
func (m *OrderManager) List(ctx context.Context, userID int, page pagination.Page) ([]models.Order, int, error) {
	return m.store.Orders().List(ctx, repo.OrderFilter{
		UserID: &userID,
		Limit:  page.Limit(),
		Offset: page.Offset(),
	})
}

// ListAll returns every user's orders, optionally including soft-deleted ones.
func (m *OrderManager) ListAll(ctx context.Context, includeDeleted bool, page pagination.Page) ([]models.Order, int, error) {
	return m.store.Orders().List(ctx, repo.OrderFilter{
		IncludeDeleted: includeDeleted,
		Limit:          page.Limit(),
		Offset:         page.Offset(),
	})
}

// GetByID returns the order with its owning user.
func (m *OrderManager) GetByID(ctx context.Context, orderID int) (models.Order, error) {
	return m.store.Orders().GetByID(ctx, orderID)
}
