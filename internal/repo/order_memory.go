package repo

import (
	"context"
	"slices"
	"time"

	"github.com/rogerio-castellano/order-tracker/internal/models"
)

type InMemoryOrderRepository struct {
	m memoryRepos
}

func (r *InMemoryOrderRepository) Create(_ context.Context, o models.Order) (models.Order, error) {
	defer r.m.lock()()
	d := r.m.data()

	if _, ok := d.users[o.UserID]; !ok {
		return models.Order{}, ErrUserNotFound
	}
	if _, ok := d.products[o.ProductID]; !ok {
		return models.Order{}, ErrProductNotFound
	}

	now := time.Now().UTC()
	o.ID = d.nextOrderID
	o.CreatedAt, o.UpdatedAt = now, now
	d.nextOrderID++
	d.orders[o.ID] = o
	return o, nil
}

func (r *InMemoryOrderRepository) GetByID(_ context.Context, id int) (models.Order, error) {
	defer r.m.lock()()
	d := r.m.data()

	o, ok := d.orders[id]
	if !ok || o.IsDeleted() {
		return models.Order{}, ErrOrderNotFound
	}
	if u, ok := d.users[o.UserID]; ok {
		o.User = &u
	}
	return o, nil
}

func (r *InMemoryOrderRepository) Update(_ context.Context, o models.Order) (models.Order, error) {
	defer r.m.lock()()
	d := r.m.data()

	existing, ok := d.orders[o.ID]
	if !ok || existing.IsDeleted() {
		return models.Order{}, ErrOrderNotFound
	}
	existing.Quantity = o.Quantity
	existing.TotalPrice = o.TotalPrice
	existing.UpdatedAt = time.Now().UTC()
	d.orders[o.ID] = existing

	o.UpdatedAt = existing.UpdatedAt
	return o, nil
}

func (r *InMemoryOrderRepository) SoftDelete(_ context.Context, id int, at time.Time) error {
	defer r.m.lock()()
	d := r.m.data()

	o, ok := d.orders[id]
	if !ok || o.IsDeleted() {
		return ErrOrderNotFound
	}
	at = at.UTC()
	o.DeletedAt = &at
	o.UpdatedAt = at
	d.orders[id] = o
	return nil
}

func (r *InMemoryOrderRepository) List(_ context.Context, f OrderFilter) ([]models.Order, int, error) {
	defer r.m.lock()()
	d := r.m.data()

	var filtered []models.Order
	for _, o := range d.orders {
		if o.IsDeleted() && !f.IncludeDeleted {
			continue
		}
		if f.UserID != nil && o.UserID != *f.UserID {
			continue
		}
		if u, ok := d.users[o.UserID]; ok {
			o.User = &u
		}
		filtered = append(filtered, o)
	}
	slices.SortFunc(filtered, func(a, b models.Order) int { return a.ID - b.ID })

	start := clamp(f.Offset, 0, len(filtered))
	end := len(filtered)
	if f.Limit > 0 {
		end = clamp(start+f.Limit, start, len(filtered))
	}

	page := make([]models.Order, end-start)
	copy(page, filtered[start:end])
	return page, len(filtered), nil
}
