package service

import (
	"errors"
	"fmt"

	"github.com/rogerio-castellano/order-tracker/internal/repo"
)

var (
	ErrOrderNotFound   = repo.ErrOrderNotFound
	ErrProductNotFound = repo.ErrProductNotFound
	ErrUserNotFound    = repo.ErrUserNotFound

	// ErrUnauthorized is returned when the acting user does not own the order.
	ErrUnauthorized    = errors.New("user is not allowed to modify this order")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// InsufficientStockError reports a stock decrement larger than the
// available stock.
type InsufficientStockError struct {
	ProductID int
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}
