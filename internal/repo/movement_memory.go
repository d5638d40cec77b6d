package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/rogerio-castellano/order-tracker/internal/models"
)

type InMemoryMovementRepository struct {
	m memoryRepos
}

// Log inserts a new stock movement
func (r *InMemoryMovementRepository) Log(_ context.Context, m models.Movement) error {
	defer r.m.lock()()
	d := r.m.data()

	m.ID = d.nextMovementID
	d.nextMovementID++
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	d.movements = append(d.movements, m)
	return nil
}

// GetByProductID returns the movements of a product, newest first, optionally
// filtered by date range and paginated
func (r *InMemoryMovementRepository) GetByProductID(_ context.Context, productID int, mf MovementFilter) ([]models.Movement, int, error) {
	defer r.m.lock()()

	if mf.Offset != nil && *mf.Offset < 0 {
		return nil, 0, fmt.Errorf("offset must be non-negative")
	}

	movements := r.m.data().movements
	var filtered []models.Movement
	for i := len(movements) - 1; i >= 0; i-- {
		m := movements[i]
		if m.ProductID != productID {
			continue
		}
		if (mf.Since != nil && m.CreatedAt.Before(*mf.Since)) ||
			(mf.Until != nil && m.CreatedAt.After(*mf.Until)) {
			continue
		}
		filtered = append(filtered, m)
	}

	if mf.Limit != nil && *mf.Limit == 0 {
		return []models.Movement{}, len(filtered), nil
	}

	start := 0
	if mf.Offset != nil {
		start = clamp(*mf.Offset, 0, len(filtered))
	}

	limit := defaultLimit
	if mf.Limit != nil && *mf.Limit > 0 {
		limit = *mf.Limit
	}
	end := clamp(start+limit, start, len(filtered))

	return filtered[start:end], len(filtered), nil
}
