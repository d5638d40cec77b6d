package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rogerio-castellano/order-tracker/internal/models"
)

type PostgresProductRepository struct {
	db querier
}

func (r *PostgresProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	query := `INSERT INTO products (name, price, stock, created_at, updated_at) VALUES ($1, $2, $3, $4, $4) RETURNING id, created_at, updated_at`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, p.Name, p.Price, p.Stock, time.Now().UTC()).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if isUniqueViolation(err) {
		return models.Product{}, ErrDuplicatedValueUnique
	}
	return p, err
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, id int) (models.Product, error) {
	return r.get(ctx, `SELECT id, name, price, stock, created_at, updated_at FROM products WHERE id = $1`, id)
}

func (r *PostgresProductRepository) GetForUpdate(ctx context.Context, id int) (models.Product, error) {
	return r.get(ctx, `SELECT id, name, price, stock, created_at, updated_at FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *PostgresProductRepository) get(ctx context.Context, query string, id int) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var p models.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) AdjustStock(ctx context.Context, productID int, delta int) (models.Product, error) {
	query := `
		UPDATE products
		SET stock = stock + $1, updated_at = $2
		WHERE id = $3 AND stock + $1 >= 0
		RETURNING id, name, price, stock, created_at, updated_at
	`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var p models.Product
	err := r.db.QueryRowContext(ctx, query, delta, time.Now().UTC(), productID).
		Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		// Either the row is gone or the guard rejected the change.
		if _, getErr := r.GetByID(ctx, productID); errors.Is(getErr, ErrProductNotFound) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, ErrInvalidQuantityChange
	}
	return p, err
}
