package repo

import (
	"context"
	"time"

	"github.com/rogerio-castellano/order-tracker/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	m memoryRepos
}

// Create adds a new product to the repository.
func (r *InMemoryProductRepository) Create(_ context.Context, product models.Product) (models.Product, error) {
	defer r.m.lock()()
	d := r.m.data()

	for _, p := range d.products {
		if p.Name == product.Name {
			return models.Product{}, ErrDuplicatedValueUnique
		}
	}

	now := time.Now().UTC()
	product.ID = d.nextProductID
	product.CreatedAt, product.UpdatedAt = now, now
	d.nextProductID++
	d.products[product.ID] = product
	return product, nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(_ context.Context, id int) (models.Product, error) {
	defer r.m.lock()()

	p, ok := r.m.data().products[id]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}

// GetForUpdate is GetByID; the store mutex already isolates transactions.
func (r *InMemoryProductRepository) GetForUpdate(ctx context.Context, id int) (models.Product, error) {
	return r.GetByID(ctx, id)
}

// AdjustStock implements ProductRepository.
func (r *InMemoryProductRepository) AdjustStock(_ context.Context, productID int, delta int) (models.Product, error) {
	defer r.m.lock()()
	d := r.m.data()

	product, ok := d.products[productID]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	if product.Stock+delta < 0 {
		return models.Product{}, ErrInvalidQuantityChange
	}

	product.Stock += delta
	product.UpdatedAt = time.Now().UTC()
	d.products[productID] = product
	return product, nil
}

// Delete removes a product and, like the foreign key cascade, its orders.
func (r *InMemoryProductRepository) Delete(id int) error {
	defer r.m.lock()()
	d := r.m.data()

	if _, ok := d.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(d.products, id)
	for oid, o := range d.orders {
		if o.ProductID == id {
			delete(d.orders, oid)
		}
	}
	return nil
}
